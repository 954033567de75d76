package parser

import (
	"strconv"
	"strings"

	"github.com/chesslang/chesslang/internal/ast"
	cherrors "github.com/chesslang/chesslang/internal/errors"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/token"
)

func (p *Parser) parseGame() (*ast.GameNode, error) {
	game := &ast.GameNode{Loc: p.loc()}
	p.skipNewlines()

	if p.check(token.GAME) {
		p.advance()
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		s, err := p.expectString()
		if err != nil {
			return nil, err
		}
		game.Name = s
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
	}
	p.skipNewlines()
	if p.check(token.EXTENDS) {
		p.advance()
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		s, err := p.expectString()
		if err != nil {
			return nil, err
		}
		game.Extends = s
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
	}

	for {
		p.skipNewlines()
		if p.check(token.EOF) {
			break
		}
		if err := p.parseSection(game); err != nil {
			return nil, err
		}
	}
	return game, nil
}

func (p *Parser) expectString() (string, error) {
	t, err := p.expect(token.STRING)
	if err != nil {
		return "", err
	}
	return t.Literal, nil
}

func (p *Parser) parseSection(game *ast.GameNode) error {
	switch p.cur().Type {
	case token.BOARD:
		return p.parseBoardSection(game)
	case token.PIECE:
		return p.parsePieceSection(game)
	case token.EFFECT:
		return p.parseEffectSection(game)
	case token.TRIGGER:
		trig, err := p.parseTriggerDef()
		if err != nil {
			return err
		}
		game.Triggers = append(game.Triggers, trig)
		return nil
	case token.PATTERN:
		return p.parsePatternSection(game)
	case token.SETUP:
		return p.parseSetupSection(game)
	case token.VICTORY:
		entries, err := p.parseConditionListSection(token.VICTORY)
		if err != nil {
			return err
		}
		game.Victory = entries
		return nil
	case token.DRAW:
		entries, err := p.parseConditionListSection(token.DRAW)
		if err != nil {
			return err
		}
		game.Draw = entries
		return nil
	case token.RULES:
		return p.parseRulesSection(game)
	case token.SCRIPT:
		return p.parseScriptSection(game)
	default:
		return cherrors.NewParserError(p.loc(), "unexpected top-level token %s %q", p.cur().Type, p.cur().Literal)
	}
}

func (p *Parser) parseBoardSection(game *ast.GameNode) error {
	loc := p.loc()
	p.advance() // 'board'
	if _, err := p.expect(token.COLON); err != nil {
		return err
	}
	board := &ast.BoardNode{Width: 8, Height: 8, Zones: map[string][]position.Position{}, Loc: loc}
	err := p.parseBlock(func() error {
		switch p.cur().Type {
		case token.SIZE:
			p.advance()
			if _, err := p.expect(token.COLON); err != nil {
				return err
			}
			w, h, err := p.expectSize()
			if err != nil {
				return err
			}
			board.Width, board.Height = w, h
			return p.expectEOL()
		case token.ZONES:
			p.advance()
			if _, err := p.expect(token.COLON); err != nil {
				return err
			}
			return p.parseBlock(func() error {
				name, ok := p.identLike()
				if !ok {
					return cherrors.NewParserError(p.loc(), "expected zone name")
				}
				if _, err := p.expect(token.COLON); err != nil {
					return err
				}
				squares, err := p.parseSquareList()
				if err != nil {
					return err
				}
				board.Zones[name] = squares
				return p.expectEOL()
			})
		default:
			return cherrors.NewParserError(p.loc(), "unexpected token in board section: %s", p.cur().Type)
		}
	})
	if err != nil {
		return err
	}
	game.Board = board
	return nil
}

func (p *Parser) expectSize() (int, int, error) {
	t, err := p.expect(token.NUMBER)
	if err != nil {
		return 0, 0, err
	}
	parts := strings.SplitN(strings.ToLower(t.Literal), "x", 2)
	if len(parts) != 2 {
		return 0, 0, cherrors.NewParserError(p.loc(), "expected WxH size literal, got %q", t.Literal)
	}
	w, err1 := strconv.Atoi(parts[0])
	h, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, cherrors.NewParserError(p.loc(), "invalid size literal %q", t.Literal)
	}
	return w, h, nil
}

// parseSquareList parses "[a1, b2, c3]" or a single bare square.
func (p *Parser) parseSquareList() ([]position.Position, error) {
	var out []position.Position
	if p.check(token.LBRACKET) {
		p.advance()
		for !p.check(token.RBRACKET) {
			sq, err := p.expectSquare()
			if err != nil {
				return nil, err
			}
			out = append(out, sq)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return out, nil
	}
	sq, err := p.expectSquare()
	if err != nil {
		return nil, err
	}
	return []position.Position{sq}, nil
}

func (p *Parser) expectSquare() (position.Position, error) {
	t, err := p.expect(token.SQUARE)
	if err != nil {
		return position.Position{}, err
	}
	sq, perr := position.ParseSquare(t.Literal)
	if perr != nil {
		return position.Position{}, cherrors.NewParserError(p.loc(), "%v", perr)
	}
	return sq, nil
}

func (p *Parser) parseRulesSection(game *ast.GameNode) error {
	loc := p.loc()
	p.advance()
	if _, err := p.expect(token.COLON); err != nil {
		return err
	}
	rules := &ast.RulesNode{Settings: map[string]bool{}, Loc: loc}
	err := p.parseBlock(func() error {
		name, ok := p.identLike()
		if !ok {
			return cherrors.NewParserError(p.loc(), "expected rule name")
		}
		if _, err := p.expect(token.COLON); err != nil {
			return err
		}
		val, err := p.expectBool()
		if err != nil {
			return err
		}
		rules.Settings[name] = val
		return p.expectEOL()
	})
	if err != nil {
		return err
	}
	game.Rules = rules
	return nil
}

func (p *Parser) expectBool() (bool, error) {
	switch p.cur().Type {
	case token.TRUE:
		p.advance()
		return true, nil
	case token.FALSE:
		p.advance()
		return false, nil
	default:
		return false, cherrors.NewParserError(p.loc(), "expected true or false, got %s", p.cur().Type)
	}
}

// parseScriptSection captures everything between the matching braces
// verbatim, re-joining token literals with spaces (§4.2 "Script block").
func (p *Parser) parseScriptSection(game *ast.GameNode) error {
	loc := p.loc()
	p.advance() // 'script'
	p.match(token.COLON)
	p.skipNewlines()
	if _, err := p.expect(token.LBRACE); err != nil {
		return err
	}
	depth := 1
	var parts []string
	for depth > 0 {
		if p.check(token.EOF) {
			return cherrors.NewParserError(loc, "unterminated script block")
		}
		t := p.cur()
		switch t.Type {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
			if depth == 0 {
				p.advance()
				game.Scripts = append(game.Scripts, &ast.ScriptNode{Code: strings.Join(parts, " "), Loc: loc})
				return nil
			}
		}
		if t.Type != token.NEWLINE {
			parts = append(parts, t.Literal)
		}
		p.advance()
	}
	return nil
}
