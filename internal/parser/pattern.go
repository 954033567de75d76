package parser

import (
	"strconv"

	"github.com/chesslang/chesslang/internal/ast"
	cherrors "github.com/chesslang/chesslang/internal/errors"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/token"
)

// parsePatternExpr implements the precedence-climbing grammar of §4.2:
//
//	patternExpr := patternThen ('|' patternThen)*
//	patternThen := patternRepeat ('+' patternRepeat)*
//	patternRepeat := patternConditional ('*' NUMBER)?
//	patternConditional := patternPrimary ('where' condition)?
func (p *Parser) parsePatternExpr() (ast.Pattern, error) {
	return p.parsePatternOr()
}

func (p *Parser) parsePatternOr() (ast.Pattern, error) {
	first, err := p.parsePatternThen()
	if err != nil {
		return nil, err
	}
	children := []ast.Pattern{first}
	for p.check(token.PIPE) {
		p.advance()
		next, err := p.parsePatternThen()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return ast.CompositePattern{Op: ast.CompositeOr, Children: children}, nil
}

func (p *Parser) parsePatternThen() (ast.Pattern, error) {
	first, err := p.parsePatternRepeat()
	if err != nil {
		return nil, err
	}
	children := []ast.Pattern{first}
	for p.check(token.PLUS) {
		p.advance()
		next, err := p.parsePatternRepeat()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return ast.CompositePattern{Op: ast.CompositeThen, Children: children}, nil
}

func (p *Parser) parsePatternRepeat() (ast.Pattern, error) {
	inner, err := p.parsePatternConditional()
	if err != nil {
		return nil, err
	}
	if p.check(token.STAR) {
		p.advance()
		// Repetition count is accepted by the grammar but a bounded repeat of
		// a single pattern step has no distinct tagged form in the §3 data
		// model beyond slide; fold step*N into a distance-N step.
		n, nerr := p.expect(token.NUMBER)
		if nerr != nil {
			return nil, nerr
		}
		count, _ := strconv.Atoi(n.Literal)
		if step, ok := inner.(ast.StepPattern); ok {
			d := step.Distance
			if d == 0 {
				d = 1
			}
			return ast.StepPattern{Direction: step.Direction, Distance: d * count}, nil
		}
		return inner, nil
	}
	return inner, nil
}

func (p *Parser) parsePatternConditional() (ast.Pattern, error) {
	inner, err := p.parsePatternPrimary()
	if err != nil {
		return nil, err
	}
	if p.check(token.WHERE) {
		p.advance()
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		return ast.ConditionalPattern{Inner: inner, When: cond}, nil
	}
	return inner, nil
}

func (p *Parser) parsePatternPrimary() (ast.Pattern, error) {
	switch p.cur().Type {
	case token.STEP:
		p.advance()
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		dir, err := p.parseDirection()
		if err != nil {
			return nil, err
		}
		dist := 0
		if p.match(token.COMMA) {
			n, err := p.expect(token.NUMBER)
			if err != nil {
				return nil, err
			}
			dist, _ = strconv.Atoi(n.Literal)
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return ast.StepPattern{Direction: dir, Distance: dist}, nil
	case token.SLIDE:
		p.advance()
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		dir, err := p.parseDirection()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return ast.SlidePattern{Direction: dir}, nil
	case token.LEAP:
		p.advance()
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		dx, err := p.expect(token.NUMBER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
		dy, err := p.expect(token.NUMBER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		dxi, _ := strconv.Atoi(dx.Literal)
		dyi, _ := strconv.Atoi(dy.Literal)
		return ast.LeapPattern{Dx: dxi, Dy: dyi}, nil
	case token.HOP:
		p.advance()
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		dir, err := p.parseDirection()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return ast.HopPattern{Direction: dir}, nil
	case token.LPAREN:
		p.advance()
		inner, err := p.parsePatternExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		name, ok := p.identLike()
		if !ok {
			return nil, cherrors.NewParserError(p.loc(), "expected pattern primary, got %s", p.cur().Type)
		}
		return ast.ReferencePattern{Name: name}, nil
	}
}

var directionKeywords = map[token.Type]position.Direction{
	token.NORTH: position.North, token.SOUTH: position.South,
	token.EAST: position.East, token.WEST: position.West,
	token.NORTHEAST: position.Northeast, token.NORTHWEST: position.Northwest,
	token.SOUTHEAST: position.Southeast, token.SOUTHWEST: position.Southwest,
	token.ORTHOGONAL: position.Orthogonal, token.DIAGONAL: position.Diagonal,
	token.ANY: position.Any, token.FORWARD: position.Forward, token.BACKWARD: position.Backward,
}

func (p *Parser) parseDirection() (position.Direction, error) {
	if d, ok := directionKeywords[p.cur().Type]; ok {
		p.advance()
		return d, nil
	}
	return 0, cherrors.NewParserError(p.loc(), "expected direction, got %s %q", p.cur().Type, p.cur().Literal)
}
