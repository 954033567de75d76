// Package parser implements ChessLang's recursive-descent parser: the
// section dispatcher, the pattern/condition/expression sub-grammars (§4.2),
// and the verbatim script-block capture. Grounded on the teacher's
// internal/parser/parser.go (token-cursor recursive descent) and
// internal/cql/parser.go (current/peek two-token lookahead, precedence
// climbing for comparisons and logical connectives).
package parser

import (
	"github.com/chesslang/chesslang/internal/ast"
	cherrors "github.com/chesslang/chesslang/internal/errors"
	"github.com/chesslang/chesslang/internal/lexer"
	"github.com/chesslang/chesslang/internal/token"
)

// Parser walks a pre-lexed token stream and builds an ast.GameNode.
type Parser struct {
	toks []token.Token
	pos  int
}

// Parse lexes and parses src into a GameNode, or returns the first
// LexerError/ParserError encountered (§7: fail fast, no partial AST).
func Parse(src string) (*ast.GameNode, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseGame()
}

func (p *Parser) cur() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return p.toks[len(p.toks)-1] // EOF
}

func (p *Parser) at(offset int) token.Token {
	i := p.pos + offset
	if i < 0 || i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) loc() cherrors.Location {
	t := p.cur()
	return cherrors.Location{Line: t.Line, Column: t.Column, Offset: t.Offset, Length: t.Length}
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(t token.Type) (token.Token, error) {
	if !p.check(t) {
		return token.Token{}, cherrors.NewParserError(p.loc(), "expected %s, got %s %q", t, p.cur().Type, p.cur().Literal)
	}
	return p.advance(), nil
}

// skipNewlines consumes any run of NEWLINE tokens (blank statement
// separators between entries within a block).
func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

// expectEOL consumes the statement-terminating NEWLINE, if present; EOF and
// DEDENT also legally end a same-line statement.
func (p *Parser) expectEOL() error {
	if p.check(token.NEWLINE) {
		p.advance()
		return nil
	}
	if p.check(token.EOF) || p.check(token.DEDENT) {
		return nil
	}
	return cherrors.NewParserError(p.loc(), "expected end of line, got %s %q", p.cur().Type, p.cur().Literal)
}

// parseBlock expects NEWLINE INDENT, then calls item() repeatedly until
// DEDENT/EOF, then consumes the DEDENT.
func (p *Parser) parseBlock(item func() error) error {
	if err := p.expectEOL(); err != nil {
		return err
	}
	p.skipNewlines()
	if !p.check(token.INDENT) {
		return nil // empty block is tolerated (e.g. a section with no entries)
	}
	p.advance()
	for {
		p.skipNewlines()
		if p.check(token.DEDENT) || p.check(token.EOF) {
			break
		}
		if err := item(); err != nil {
			return err
		}
		p.skipNewlines()
	}
	if p.check(token.DEDENT) {
		p.advance()
	}
	return nil
}

// identLike accepts IDENTIFIER or any keyword token used in identifier
// position, returning its literal text (grammar allows reserved words as
// property/identifier names in several positions, §4.2).
func (p *Parser) identLike() (string, bool) {
	t := p.cur()
	if t.Type == token.IDENTIFIER || token.IsKeyword(t.Type) {
		p.advance()
		return t.Literal, true
	}
	return "", false
}
