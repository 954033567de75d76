package parser

import (
	"github.com/chesslang/chesslang/internal/ast"
	cherrors "github.com/chesslang/chesslang/internal/errors"
	"github.com/chesslang/chesslang/internal/token"
)

func (p *Parser) parseActionBlock() ([]ast.Action, error) {
	var actions []ast.Action
	err := p.parseBlock(func() error {
		a, err := p.parseActionStmt()
		if err != nil {
			return err
		}
		actions = append(actions, a)
		return nil
	})
	return actions, err
}

// parseActionStmt parses one action statement (§4.7 "Action semantics").
// The concrete keyword-led surface syntax here is this implementation's own
// choice — spec.md only fixes the action tags and their semantics, not
// their textual form.
func (p *Parser) parseActionStmt() (ast.Action, error) {
	switch p.cur().Type {
	case token.SET:
		p.advance()
		target, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		op := ast.AssignSet
		switch p.cur().Type {
		case token.ASSIGN:
			op = ast.AssignSet
		case token.PLUS_ASSIGN:
			op = ast.AssignAdd
		case token.MINUS_ASSIGN:
			op = ast.AssignSub
		default:
			return nil, cherrors.NewParserError(p.loc(), "expected assignment operator, got %s", p.cur().Type)
		}
		p.advance()
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
		return ast.SetAction{Target: target, Op: op, Value: val}, nil

	case token.CREATE:
		p.advance()
		typeName, ok := p.identLike()
		if !ok {
			return nil, cherrors.NewParserError(p.loc(), "expected piece type name")
		}
		if _, err := p.expectKeyword("at"); err != nil {
			return nil, err
		}
		pos, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		var owner ast.Expression
		if p.checkKeyword("owner") {
			p.advance()
			owner, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
		return ast.CreateAction{PieceType: typeName, Pos: pos, Owner: owner}, nil

	case token.REMOVE:
		p.advance()
		if p.checkKeyword("within") {
			p.advance()
			n, err := p.expect(token.NUMBER)
			if err != nil {
				return nil, err
			}
			radius := int(mustFloat(n.Literal))
			if _, err := p.expectKeyword("of"); err != nil {
				return nil, err
			}
			from, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			rng := &ast.RemoveRange{Radius: radius, From: from}
			if p.checkKeyword("include") {
				p.advance()
				list, err := p.parseIdentList()
				if err != nil {
					return nil, err
				}
				rng.Include = list
			}
			if p.checkKeyword("exclude") {
				p.advance()
				list, err := p.parseIdentList()
				if err != nil {
					return nil, err
				}
				rng.Exclude = list
			}
			if err := p.expectEOL(); err != nil {
				return nil, err
			}
			return ast.RemoveAction{Range: rng}, nil
		}
		target, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
		return ast.RemoveAction{Target: target}, nil

	case token.TRANSFORM:
		p.advance()
		target, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("to"); err != nil {
			return nil, err
		}
		newType, ok := p.identLike()
		if !ok {
			return nil, cherrors.NewParserError(p.loc(), "expected piece type name")
		}
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
		return ast.TransformAction{Target: target, NewType: newType}, nil

	case token.MARK:
		p.advance()
		pos, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("with"); err != nil {
			return nil, err
		}
		effectType, ok := p.identLike()
		if !ok {
			return nil, cherrors.NewParserError(p.loc(), "expected effect type name")
		}
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
		return ast.MarkAction{Pos: pos, EffectType: effectType}, nil

	case token.MOVE:
		p.advance()
		target, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("to"); err != nil {
			return nil, err
		}
		dest, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
		return ast.MoveAction{Target: target, Dest: dest}, nil

	case token.WIN:
		p.advance()
		color, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
		return ast.WinAction{Color: color}, nil

	case token.LOSE:
		p.advance()
		color, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
		return ast.LoseAction{Color: color}, nil

	case token.DRAW:
		p.advance()
		reason := ""
		if p.check(token.STRING) {
			reason = p.advance().Literal
		}
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
		return ast.DrawAction{Reason: reason}, nil

	case token.CANCEL:
		p.advance()
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
		return ast.CancelAction{}, nil

	case token.APPLY:
		p.advance()
		effectType, ok := p.identLike()
		if !ok {
			return nil, cherrors.NewParserError(p.loc(), "expected effect type name")
		}
		if _, err := p.expectKeyword("to"); err != nil {
			return nil, err
		}
		target, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
		return ast.ApplyAction{EffectType: effectType, Target: target}, nil

	case token.FOR:
		p.advance()
		varName, ok := p.identLike()
		if !ok {
			return nil, cherrors.NewParserError(p.loc(), "expected loop variable name")
		}
		if _, err := p.expect(token.IN); err != nil {
			return nil, err
		}
		iter, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		body, err := p.parseActionBlock()
		if err != nil {
			return nil, err
		}
		return ast.ForAction{Var: varName, Iterable: iter, Body: body}, nil

	case token.IF:
		p.advance()
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		thenBody, err := p.parseActionBlock()
		if err != nil {
			return nil, err
		}
		act := ast.IfAction{Cond: cond, Then: thenBody}
		p.skipNewlines()
		if p.check(token.ELSE) {
			p.advance()
			if _, err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			elseBody, err := p.parseActionBlock()
			if err != nil {
				return nil, err
			}
			act.Else = elseBody
		}
		return act, nil

	default:
		name, ok := p.identLike()
		if !ok {
			return nil, cherrors.NewParserError(p.loc(), "expected action, got %s %q", p.cur().Type, p.cur().Literal)
		}
		var args []ast.Expression
		if p.check(token.LPAREN) {
			p.advance()
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
		}
		if err := p.expectEOL(); err != nil {
			return nil, err
		}
		return ast.CustomAction{Name: name, Args: args}, nil
	}
}

// expectKeyword/checkKeyword treat contextual words ("at", "owner", "to",
// "with", "within", "of", "include", "exclude") as soft keywords recognized
// by literal text rather than reserved token types, so they stay available
// as ordinary identifiers elsewhere in the grammar.
func (p *Parser) checkKeyword(word string) bool {
	return p.cur().Literal == word
}

func (p *Parser) expectKeyword(word string) (string, error) {
	if p.cur().Literal != word {
		return "", cherrors.NewParserError(p.loc(), "expected %q, got %q", word, p.cur().Literal)
	}
	return p.advance().Literal, nil
}

func mustFloat(s string) float64 {
	var f float64
	var neg bool
	i := 0
	if i < len(s) && s[i] == '-' {
		neg = true
		i++
	}
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		f = f*10 + float64(s[i]-'0')
	}
	if neg {
		f = -f
	}
	return f
}
