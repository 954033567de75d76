package parser

import (
	"github.com/chesslang/chesslang/internal/ast"
	cherrors "github.com/chesslang/chesslang/internal/errors"
	"github.com/chesslang/chesslang/internal/token"
)

func (p *Parser) parsePieceSection(game *ast.GameNode) error {
	loc := p.loc()
	p.advance() // 'piece'
	name, ok := p.identLike()
	if !ok {
		return cherrors.NewParserError(p.loc(), "expected piece name")
	}
	node := &ast.PieceNode{Name: name, InitialState: map[string]ast.Expression{}, Loc: loc}
	if _, err := p.expect(token.COLON); err != nil {
		return err
	}
	err := p.parseBlock(func() error {
		switch p.cur().Type {
		case token.MOVE:
			p.advance()
			if _, err := p.expect(token.COLON); err != nil {
				return err
			}
			pat, err := p.parsePatternExpr()
			if err != nil {
				return err
			}
			node.Move = pat
			return p.expectEOL()
		case token.CAPTURE:
			p.advance()
			if _, err := p.expect(token.COLON); err != nil {
				return err
			}
			if name, ok := p.identLike(); ok && (name == "same" || name == "none") {
				node.HasCaptureMode = true
				if name == "same" {
					node.CaptureMode = ast.CaptureSame
				} else {
					node.CaptureMode = ast.CaptureNone
				}
				return p.expectEOL()
			}
			pat, err := p.parsePatternExpr()
			if err != nil {
				return err
			}
			node.Capture = pat
			return p.expectEOL()
		case token.TRAITS:
			p.advance()
			if _, err := p.expect(token.COLON); err != nil {
				return err
			}
			traits, err := p.parseIdentList()
			if err != nil {
				return err
			}
			node.Traits = traits
			return p.expectEOL()
		case token.STATE:
			p.advance()
			if _, err := p.expect(token.COLON); err != nil {
				return err
			}
			return p.parseBlock(func() error {
				key, ok := p.identLike()
				if !ok {
					return cherrors.NewParserError(p.loc(), "expected state field name")
				}
				if _, err := p.expect(token.COLON); err != nil {
					return err
				}
				val, err := p.parseExpression()
				if err != nil {
					return err
				}
				node.InitialState[key] = val
				return p.expectEOL()
			})
		case token.TRIGGER, token.ON:
			trig, err := p.parseTriggerDef()
			if err != nil {
				return err
			}
			node.Triggers = append(node.Triggers, trig)
			return nil
		default:
			return cherrors.NewParserError(p.loc(), "unexpected token in piece section: %s", p.cur().Type)
		}
	})
	if err != nil {
		return err
	}
	game.Pieces = append(game.Pieces, node)
	return nil
}

// parseIdentList parses "[a, b, c]" or a single bare identifier.
func (p *Parser) parseIdentList() ([]string, error) {
	var out []string
	if p.check(token.LBRACKET) {
		p.advance()
		for !p.check(token.RBRACKET) {
			name, ok := p.identLike()
			if !ok {
				return nil, cherrors.NewParserError(p.loc(), "expected identifier in list")
			}
			out = append(out, name)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return out, nil
	}
	name, ok := p.identLike()
	if !ok {
		return nil, cherrors.NewParserError(p.loc(), "expected identifier")
	}
	return []string{name}, nil
}

func (p *Parser) parseEffectSection(game *ast.GameNode) error {
	loc := p.loc()
	p.advance() // 'effect'
	name, ok := p.identLike()
	if !ok {
		return cherrors.NewParserError(p.loc(), "expected effect name")
	}
	node := &ast.EffectNode{Name: name, Loc: loc}
	if _, err := p.expect(token.COLON); err != nil {
		return err
	}
	err := p.parseBlock(func() error {
		switch p.cur().Type {
		case token.BLOCKS:
			p.advance()
			if _, err := p.expect(token.COLON); err != nil {
				return err
			}
			mode, ok := p.identLike()
			if !ok {
				return cherrors.NewParserError(p.loc(), "expected blocks mode")
			}
			switch mode {
			case "none":
				node.Blocks = ast.BlocksNone
			case "enemy":
				node.Blocks = ast.BlocksEnemy
			case "friend":
				node.Blocks = ast.BlocksFriend
			case "all":
				node.Blocks = ast.BlocksAll
			default:
				return cherrors.NewParserError(p.loc(), "unknown blocks mode %q", mode)
			}
			return p.expectEOL()
		case token.VISUAL:
			p.advance()
			if _, err := p.expect(token.COLON); err != nil {
				return err
			}
			s, err := p.expectString()
			if err != nil {
				return err
			}
			node.Visual = s
			return p.expectEOL()
		default:
			return cherrors.NewParserError(p.loc(), "unexpected token in effect section: %s", p.cur().Type)
		}
	})
	if err != nil {
		return err
	}
	game.Effects = append(game.Effects, node)
	return nil
}

func (p *Parser) parsePatternSection(game *ast.GameNode) error {
	loc := p.loc()
	p.advance() // 'pattern'
	name, ok := p.identLike()
	if !ok {
		return cherrors.NewParserError(p.loc(), "expected pattern name")
	}
	if _, err := p.expect(token.COLON); err != nil {
		return err
	}
	var pat ast.Pattern
	if p.check(token.NEWLINE) {
		p.advance()
		p.skipNewlines()
		if !p.check(token.INDENT) {
			return cherrors.NewParserError(p.loc(), "expected pattern body")
		}
		p.advance()
		var err error
		pat, err = p.parsePatternExpr()
		if err != nil {
			return err
		}
		p.skipNewlines()
		if p.check(token.DEDENT) {
			p.advance()
		}
	} else {
		var err error
		pat, err = p.parsePatternExpr()
		if err != nil {
			return err
		}
		if err := p.expectEOL(); err != nil {
			return err
		}
	}
	game.Patterns = append(game.Patterns, &ast.PatternDefNode{Name: name, Pattern: pat, Loc: loc})
	return nil
}
