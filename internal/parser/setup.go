package parser

import (
	"github.com/chesslang/chesslang/internal/ast"
	cherrors "github.com/chesslang/chesslang/internal/errors"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/token"
)

func (p *Parser) ownerOf(t token.Type) (position.Owner, bool) {
	switch t {
	case token.WHITE:
		return position.White, true
	case token.BLACK:
		return position.Black, true
	default:
		return 0, false
	}
}

func (p *Parser) parseSetupSection(game *ast.GameNode) error {
	loc := p.loc()
	p.advance() // 'setup'
	if _, err := p.expect(token.COLON); err != nil {
		return err
	}
	setup := &ast.SetupNode{Replace: map[string]string{}, Loc: loc}
	err := p.parseBlock(func() error {
		switch p.cur().Type {
		case token.ADD:
			p.advance()
			setup.Additive = true
			if _, err := p.expect(token.COLON); err != nil {
				return err
			}
			return p.parseBlock(func() error { return p.parseAddEntry(setup) })
		case token.REPLACE:
			p.advance()
			if _, err := p.expect(token.COLON); err != nil {
				return err
			}
			return p.parseBlock(func() error {
				oldType, ok := p.identLike()
				if !ok {
					return cherrors.NewParserError(p.loc(), "expected piece type name")
				}
				if _, err := p.expect(token.COLON); err != nil {
					return err
				}
				newType, ok := p.identLike()
				if !ok {
					return cherrors.NewParserError(p.loc(), "expected piece type name")
				}
				setup.Replace[oldType] = newType
				return p.expectEOL()
			})
		default:
			return cherrors.NewParserError(p.loc(), "unexpected token in setup section: %s", p.cur().Type)
		}
	})
	if err != nil {
		return err
	}
	game.Setup = setup
	return nil
}

func (p *Parser) parseAddEntry(setup *ast.SetupNode) error {
	owner, ok := p.ownerOf(p.cur().Type)
	if !ok {
		return cherrors.NewParserError(p.loc(), "expected White or Black")
	}
	p.advance()
	if p.check(token.COLON) {
		// Color: { square: PieceType, ... }
		p.advance()
		return p.parseBlock(func() error {
			sq, err := p.expectSquare()
			if err != nil {
				return err
			}
			if _, err := p.expect(token.COLON); err != nil {
				return err
			}
			typeName, ok := p.identLike()
			if !ok {
				return cherrors.NewParserError(p.loc(), "expected piece type name")
			}
			setup.Placements = append(setup.Placements, ast.PlacementNode{Owner: owner, PieceType: typeName, Squares: []position.Position{sq}})
			return p.expectEOL()
		})
	}
	// Color PieceType: [squares]
	typeName, ok := p.identLike()
	if !ok {
		return cherrors.NewParserError(p.loc(), "expected piece type name")
	}
	if _, err := p.expect(token.COLON); err != nil {
		return err
	}
	squares, err := p.parseSquareList()
	if err != nil {
		return err
	}
	setup.Placements = append(setup.Placements, ast.PlacementNode{Owner: owner, PieceType: typeName, Squares: squares})
	return p.expectEOL()
}

// parseConditionListSection handles both victory: and draw: sections,
// accepting either bare `name: condition` entries (implicit add) or
// add:/replace:/remove: sub-blocks (§4.2, merge semantics in §4.3 step 7).
func (p *Parser) parseConditionListSection(section token.Type) ([]*ast.ConditionEntry, error) {
	p.advance() // 'victory' or 'draw'
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	var entries []*ast.ConditionEntry
	err := p.parseBlock(func() error {
		switch p.cur().Type {
		case token.ADD, token.REPLACE, token.REMOVE:
			action := map[token.Type]ast.MergeAction{token.ADD: ast.MergeAdd, token.REPLACE: ast.MergeReplace, token.REMOVE: ast.MergeRemove}[p.cur().Type]
			p.advance()
			if _, err := p.expect(token.COLON); err != nil {
				return err
			}
			return p.parseBlock(func() error {
				e, err := p.parseConditionEntry(action)
				if err != nil {
					return err
				}
				entries = append(entries, e)
				return nil
			})
		default:
			e, err := p.parseConditionEntry(ast.MergeAdd)
			if err != nil {
				return err
			}
			entries = append(entries, e)
			return nil
		}
	})
	return entries, err
}

func (p *Parser) parseConditionEntry(action ast.MergeAction) (*ast.ConditionEntry, error) {
	loc := p.loc()
	name, ok := p.identLike()
	if !ok {
		return nil, cherrors.NewParserError(p.loc(), "expected condition name")
	}
	entry := &ast.ConditionEntry{Name: name, Action: action, Loc: loc}
	if action == ast.MergeRemove {
		p.match(token.COLON)
		return entry, p.expectEOL()
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	entry.Cond = cond
	return entry, p.expectEOL()
}
