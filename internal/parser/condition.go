package parser

import (
	"github.com/chesslang/chesslang/internal/ast"
	cherrors "github.com/chesslang/chesslang/internal/errors"
	"github.com/chesslang/chesslang/internal/token"
)

// parseCondition implements §4.2's condition grammar: or > and > not >
// comparisons > primary.
func (p *Parser) parseCondition() (ast.Condition, error) {
	return p.parseCondOr()
}

func (p *Parser) parseCondOr() (ast.Condition, error) {
	left, err := p.parseCondAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.KW_OR) || p.check(token.OR) {
		p.advance()
		right, err := p.parseCondAnd()
		if err != nil {
			return nil, err
		}
		left = ast.LogicalCondition{Op: ast.LogicalOr, L: left, R: right}
	}
	return left, nil
}

func (p *Parser) parseCondAnd() (ast.Condition, error) {
	left, err := p.parseCondNot()
	if err != nil {
		return nil, err
	}
	for p.check(token.KW_AND) || p.check(token.AND) {
		p.advance()
		right, err := p.parseCondNot()
		if err != nil {
			return nil, err
		}
		left = ast.LogicalCondition{Op: ast.LogicalAnd, L: left, R: right}
	}
	return left, nil
}

func (p *Parser) parseCondNot() (ast.Condition, error) {
	if p.check(token.KW_NOT) || p.check(token.NOT) {
		p.advance()
		inner, err := p.parseCondNot()
		if err != nil {
			return nil, err
		}
		return ast.NotCondition{Inner: inner}, nil
	}
	return p.parseCondComparison()
}

// parseCondComparison first tries the built-in condition primaries; failing
// that it parses `expr OP expr` or `expr in expr`, and a bare expression
// with neither becomes a truthiness test.
func (p *Parser) parseCondComparison() (ast.Condition, error) {
	checkpoint := p.pos
	if prim, err := p.tryConditionPrimary(); err == nil && prim != nil {
		return prim, nil
	}
	p.pos = checkpoint

	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if op, ok := compareOp(p.cur().Type); ok {
		p.advance()
		right, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.ComparisonCondition{Lhs: left, Op: op, Rhs: right}, nil
	}
	if p.check(token.IN) {
		p.advance()
		coll, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.InCondition{Needle: left, Collection: coll}, nil
	}
	return ast.TruthyCondition{Expr: left}, nil
}

func compareOp(t token.Type) (ast.CompareOp, bool) {
	switch t {
	case token.EQ, token.STRICT_EQ:
		return ast.CmpEq, true
	case token.NEQ, token.STRICT_NE:
		return ast.CmpNeq, true
	case token.LT:
		return ast.CmpLt, true
	case token.LE:
		return ast.CmpLte, true
	case token.GT:
		return ast.CmpGt, true
	case token.GE:
		return ast.CmpGte, true
	default:
		return 0, false
	}
}

// tryConditionPrimary recognizes the fixed built-in condition vocabulary.
// It returns (nil, nil) when the current token isn't one of these forms, so
// the caller falls through to the general expression-based primary.
func (p *Parser) tryConditionPrimary() (ast.Condition, error) {
	switch p.cur().Type {
	case token.EMPTY:
		p.advance()
		return ast.EmptyCondition{}, nil
	case token.ENEMY:
		p.advance()
		return ast.EnemyCondition{}, nil
	case token.FRIEND:
		p.advance()
		return ast.FriendCondition{}, nil
	case token.CLEAR:
		p.advance()
		return ast.ClearCondition{}, nil
	case token.CHECK:
		p.advance()
		return ast.CheckCondition{}, nil
	case token.FIRST_MOVE:
		p.advance()
		return ast.FirstMoveCondition{}, nil
	case token.LPAREN:
		p.advance()
		inner, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case token.IDENTIFIER:
		switch p.cur().Literal {
		case "in_zone":
			return p.parseZoneLikeCondition(func(zone string, pieceType string) ast.Condition {
				return ast.InZoneCondition{Zone: zone, PieceType: pieceType}
			})
		case "on_rank":
			return p.parseExprLikeCondition(func(e ast.Expression, pieceType string) ast.Condition {
				return ast.OnRankCondition{Rank: e, PieceType: pieceType}
			})
		case "on_file":
			return p.parseExprLikeCondition(func(e ast.Expression, pieceType string) ast.Condition {
				return ast.OnFileCondition{File: e, PieceType: pieceType}
			})
		case "piece_captured":
			p.advance()
			if _, err := p.expect(token.LPAREN); err != nil {
				return nil, err
			}
			name, ok := p.identLike()
			if !ok {
				return nil, cherrors.NewParserError(p.loc(), "expected piece type name")
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			return ast.PieceCapturedCondition{PieceType: name}, nil
		}
	}
	return nil, nil
}

func (p *Parser) parseZoneLikeCondition(build func(zone, pieceType string) ast.Condition) (ast.Condition, error) {
	p.advance()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	zone, ok := p.identLike()
	if !ok {
		return nil, cherrors.NewParserError(p.loc(), "expected zone name")
	}
	pieceType := ""
	if p.match(token.COMMA) {
		pieceType, ok = p.identLike()
		if !ok {
			return nil, cherrors.NewParserError(p.loc(), "expected piece type name")
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return build(zone, pieceType), nil
}

func (p *Parser) parseExprLikeCondition(build func(e ast.Expression, pieceType string) ast.Condition) (ast.Condition, error) {
	p.advance()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	pieceType := ""
	if p.match(token.COMMA) {
		var ok bool
		pieceType, ok = p.identLike()
		if !ok {
			return nil, cherrors.NewParserError(p.loc(), "expected piece type name")
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return build(e, pieceType), nil
}
