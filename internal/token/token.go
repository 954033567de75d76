// Package token defines the ChessLang token vocabulary: keywords, literals,
// punctuation, and the synthesized structural tokens (INDENT/DEDENT/NEWLINE)
// the lexer emits for indentation-sensitive top-level sections.
package token

// Type enumerates every token kind the lexer can produce.
type Type int

const (
	ILLEGAL Type = iota
	EOF
	NEWLINE
	INDENT
	DEDENT

	// Literals and identifiers
	IDENTIFIER
	NUMBER
	STRING
	BOOLEAN
	NULL
	SQUARE // e.g. "e4", "aa12" — matched contextually, see lexer.

	// Punctuation / operators
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	LBRACE    // {
	RBRACE    // }
	COLON     // :
	COMMA     // ,
	DOT       // .
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	PIPE      // |
	ASSIGN    // =
	EQ        // ==
	STRICT_EQ // ===
	NEQ       // !=
	STRICT_NE // !==
	LT        // <
	LE        // <=
	GT        // >
	GE        // >=
	AND       // &&
	OR        // ||
	NOT       // !
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	ARROW    // ->
	FAT_ARROW // =>

	keywordBegin
	GAME
	EXTENDS
	BOARD
	PIECE
	EFFECT
	TRIGGER
	PATTERN
	MOVE
	CAPTURE
	TRAITS
	STATE
	ON
	WHEN
	DO
	SCRIPT
	SETUP
	VICTORY
	DRAW
	RULES
	ADD
	REMOVE
	REPLACE
	SIZE
	ZONES
	OPTIONAL
	DESCRIPTION
	BLOCKS
	VISUAL
	LET
	CONST
	VAR
	IF
	ELSE
	FOR
	WHILE
	RETURN
	OF
	IN
	STEP
	SLIDE
	LEAP
	HOP
	WHERE

	// Compass / compound directions
	NORTH
	SOUTH
	EAST
	WEST
	NORTHEAST
	NORTHWEST
	SOUTHEAST
	SOUTHWEST
	ORTHOGONAL
	DIAGONAL
	ANY
	FORWARD
	BACKWARD

	// Condition keywords
	EMPTY
	ENEMY
	FRIEND
	CLEAR
	CHECK
	FIRST_MOVE
	RANK
	FILE
	CAPTURED
	CHECKS
	OPPONENT

	// Action keywords
	SET
	CREATE
	TRANSFORM
	MARK
	WIN
	LOSE
	CANCEL
	APPLY

	// Logical keywords (also usable in identifier position per grammar)
	KW_AND
	KW_OR
	KW_NOT

	WHITE
	BLACK
	TRUE
	FALSE
	KW_NULL
	keywordEnd
)

var names = map[Type]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", NEWLINE: "NEWLINE", INDENT: "INDENT", DEDENT: "DEDENT",
	IDENTIFIER: "IDENTIFIER", NUMBER: "NUMBER", STRING: "STRING", BOOLEAN: "BOOLEAN", NULL: "NULL", SQUARE: "SQUARE",
	LPAREN: "(", RPAREN: ")", LBRACKET: "[", RBRACKET: "]", LBRACE: "{", RBRACE: "}",
	COLON: ":", COMMA: ",", DOT: ".", PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", PIPE: "|",
	ASSIGN: "=", EQ: "==", STRICT_EQ: "===", NEQ: "!=", STRICT_NE: "!==",
	LT: "<", LE: "<=", GT: ">", GE: ">=", AND: "&&", OR: "||", NOT: "!",
	PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=", SLASH_ASSIGN: "/=",
	ARROW: "->", FAT_ARROW: "=>",
}

// keywords maps lower-case source spelling to its Type. Multi-word compass
// and compound directions, condition/action keywords, and boolean/color
// literals all live here; the lexer looks up every identifier-shaped lexeme
// against this table before falling back to IDENTIFIER.
var keywords = map[string]Type{
	"game": GAME, "extends": EXTENDS, "board": BOARD, "piece": PIECE, "effect": EFFECT,
	"trigger": TRIGGER, "pattern": PATTERN, "move": MOVE, "capture": CAPTURE, "traits": TRAITS,
	"state": STATE, "on": ON, "when": WHEN, "do": DO, "script": SCRIPT, "setup": SETUP,
	"victory": VICTORY, "draw": DRAW, "rules": RULES, "add": ADD, "remove": REMOVE,
	"replace": REPLACE, "size": SIZE, "zones": ZONES, "optional": OPTIONAL,
	"description": DESCRIPTION, "blocks": BLOCKS, "visual": VISUAL,
	"let": LET, "const": CONST, "var": VAR, "if": IF, "else": ELSE, "for": FOR, "while": WHILE,
	"return": RETURN, "of": OF, "in": IN,
	"step": STEP, "slide": SLIDE, "leap": LEAP, "hop": HOP, "where": WHERE,

	"north": NORTH, "south": SOUTH, "east": EAST, "west": WEST,
	"northeast": NORTHEAST, "northwest": NORTHWEST, "southeast": SOUTHEAST, "southwest": SOUTHWEST,
	"orthogonal": ORTHOGONAL, "diagonal": DIAGONAL, "any": ANY, "forward": FORWARD, "backward": BACKWARD,

	"empty": EMPTY, "enemy": ENEMY, "friend": FRIEND, "clear": CLEAR, "check": CHECK,
	"first_move": FIRST_MOVE, "rank": RANK, "file": FILE, "captured": CAPTURED,
	"checks": CHECKS, "opponent": OPPONENT,

	"set": SET, "create": CREATE, "transform": TRANSFORM, "mark": MARK,
	"win": WIN, "lose": LOSE, "cancel": CANCEL, "apply": APPLY,

	"and": KW_AND, "or": KW_OR, "not": KW_NOT,

	"White": WHITE, "Black": BLACK, "true": TRUE, "false": FALSE, "null": KW_NULL,
}

// Lookup resolves an identifier-shaped lexeme to its keyword Type, or
// IDENTIFIER if it is not reserved.
func Lookup(lexeme string) Type {
	if t, ok := keywords[lexeme]; ok {
		return t
	}
	return IDENTIFIER
}

// IsKeyword reports whether t is one of the reserved keyword tokens (as
// opposed to punctuation, literals, or structural tokens). Several grammar
// positions (member access, identifier expressions) allow a keyword token to
// be reinterpreted as a plain name.
func IsKeyword(t Type) bool { return t > keywordBegin && t < keywordEnd }

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	for k, v := range keywords {
		if v == t {
			return k
		}
	}
	return "UNKNOWN"
}

// Token is a single lexical token with its full source span.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
	Offset  int
	Length  int
}
