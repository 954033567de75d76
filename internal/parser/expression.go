package parser

import (
	"strconv"

	"github.com/chesslang/chesslang/internal/ast"
	cherrors "github.com/chesslang/chesslang/internal/errors"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/token"
)

// Pratt-style precedence levels, lowest to highest (§4.2 "Expression grammar").
const (
	precNone = iota
	precOr
	precAnd
	precEquality
	precComparison
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

func binPrec(t token.Type) int {
	switch t {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.EQ, token.NEQ, token.STRICT_EQ, token.STRICT_NE:
		return precEquality
	case token.LT, token.LE, token.GT, token.GE:
		return precComparison
	case token.PLUS, token.MINUS:
		return precAdditive
	case token.STAR, token.SLASH, token.PERCENT:
		return precMultiplicative
	default:
		return precNone
	}
}

// parseExpression parses a full expression, starting at the lowest
// precedence level.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseBinary(precOr)
}

func (p *Parser) parseBinary(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec := binPrec(p.cur().Type)
		if prec == precNone || prec < minPrec {
			return left, nil
		}
		opTok := p.advance()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: normalizeOp(opTok.Type, opTok.Literal), L: left, R: right}
	}
}

func normalizeOp(t token.Type, lit string) string {
	switch t {
	case token.STRICT_EQ:
		return "=="
	case token.STRICT_NE:
		return "!="
	default:
		return lit
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	switch p.cur().Type {
	case token.MINUS, token.NOT:
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.UnaryExpr{Op: op.Literal, Operand: operand}, nil
	case token.KW_NOT:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.UnaryExpr{Op: "!", Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case token.DOT:
			p.advance()
			name, ok := p.identLike()
			if !ok {
				return nil, cherrors.NewParserError(p.loc(), "expected property name after '.'")
			}
			expr = ast.MemberExpr{Object: expr, Property: name}
		case token.LPAREN:
			p.advance()
			var args []ast.Expression
			for !p.check(token.RPAREN) {
				a, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if !p.match(token.COMMA) {
					break
				}
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			expr = ast.CallExpr{Callee: expr, Args: args}
		case token.LBRACKET:
			p.advance()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			expr = ast.IndexExpr{Object: expr, Index: idx}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimaryExpr() (ast.Expression, error) {
	t := p.cur()
	switch t.Type {
	case token.NUMBER:
		p.advance()
		v, _ := strconv.ParseFloat(t.Literal, 64)
		return ast.LiteralExpr{Value: v}, nil
	case token.STRING:
		p.advance()
		return ast.LiteralExpr{Value: t.Literal}, nil
	case token.TRUE:
		p.advance()
		return ast.LiteralExpr{Value: true}, nil
	case token.FALSE:
		p.advance()
		return ast.LiteralExpr{Value: false}, nil
	case token.KW_NULL:
		p.advance()
		return ast.LiteralExpr{Value: nil}, nil
	case token.SQUARE:
		p.advance()
		sq, err := position.ParseSquare(t.Literal)
		if err != nil {
			return nil, cherrors.NewParserError(p.loc(), "%v", err)
		}
		return ast.SquareExpr{Square: sq}, nil
	case token.LPAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case token.LBRACKET:
		p.advance()
		var elems []ast.Expression
		for !p.check(token.RBRACKET) {
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return ast.ArrayExpr{Elements: elems}, nil
	case token.LBRACE:
		p.advance()
		var fields []ast.ObjectField
		for !p.check(token.RBRACE) {
			key, ok := p.identLike()
			if !ok {
				kt, err := p.expect(token.STRING)
				if err != nil {
					return nil, err
				}
				key = kt.Literal
			}
			if _, err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.ObjectField{Key: key, Value: val})
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RBRACE); err != nil {
			return nil, err
		}
		return ast.ObjectExpr{Fields: fields}, nil
	default:
		name, ok := p.identLike()
		if !ok {
			return nil, cherrors.NewParserError(p.loc(), "expected expression, got %s %q", t.Type, t.Literal)
		}
		return ast.IdentifierExpr{Name: name}, nil
	}
}
