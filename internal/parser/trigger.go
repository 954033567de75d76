package parser

import (
	"fmt"

	"github.com/chesslang/chesslang/internal/ast"
	cherrors "github.com/chesslang/chesslang/internal/errors"
	"github.com/chesslang/chesslang/internal/token"
)

var eventKeywords = map[string]ast.EventType{
	"move": ast.EventMove, "capture": ast.EventCapture, "captured": ast.EventCaptured,
	"turn_start": ast.EventTurnStart, "turn_end": ast.EventTurnEnd, "check": ast.EventCheck,
	"enter_zone": ast.EventEnterZone, "exit_zone": ast.EventExitZone,
	"game_start": ast.EventGameStart, "game_end": ast.EventGameEnd,
}

// parseTriggerDef parses either a top-level/nested `trigger Name: ...` block
// or the inline `on Event [when Cond]: do ...` shorthand used inside a piece
// body. Both forms produce the same TriggerNode shape (§3).
func (p *Parser) parseTriggerDef() (*ast.TriggerNode, error) {
	loc := p.loc()
	node := &ast.TriggerNode{Loc: loc}

	if p.check(token.TRIGGER) {
		p.advance()
		name, ok := p.identLike()
		if !ok {
			return nil, cherrors.NewParserError(p.loc(), "expected trigger name")
		}
		node.Name = name
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		if err := p.parseBlock(func() error { return p.parseTriggerBodyLine(node) }); err != nil {
			return nil, err
		}
		return node, nil
	}

	// Inline shorthand: `on Event [when Cond]:`
	if _, err := p.expect(token.ON); err != nil {
		return nil, err
	}
	evName, ok := p.identLike()
	if !ok {
		return nil, cherrors.NewParserError(p.loc(), "expected event name")
	}
	ev, ok := eventKeywords[evName]
	if !ok {
		return nil, cherrors.NewParserError(p.loc(), "unknown event type %q", evName)
	}
	node.On = ev
	node.Name = fmt.Sprintf("on_%s_%d", evName, loc.Offset)
	if p.check(token.WHEN) {
		p.advance()
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		node.When = cond
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if err := p.parseBlock(func() error { return p.parseTriggerBodyLine(node) }); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseTriggerBodyLine(node *ast.TriggerNode) error {
	switch p.cur().Type {
	case token.ON:
		p.advance()
		if _, err := p.expect(token.COLON); err != nil {
			return err
		}
		evName, ok := p.identLike()
		if !ok {
			return cherrors.NewParserError(p.loc(), "expected event name")
		}
		ev, ok := eventKeywords[evName]
		if !ok {
			return cherrors.NewParserError(p.loc(), "unknown event type %q", evName)
		}
		node.On = ev
		return p.expectEOL()
	case token.WHEN:
		p.advance()
		if _, err := p.expect(token.COLON); err != nil {
			return err
		}
		cond, err := p.parseCondition()
		if err != nil {
			return err
		}
		node.When = cond
		return p.expectEOL()
	case token.OPTIONAL:
		p.advance()
		if _, err := p.expect(token.COLON); err != nil {
			return err
		}
		v, err := p.expectBool()
		if err != nil {
			return err
		}
		node.Optional = v
		return p.expectEOL()
	case token.DESCRIPTION:
		p.advance()
		if _, err := p.expect(token.COLON); err != nil {
			return err
		}
		s, err := p.expectString()
		if err != nil {
			return err
		}
		node.Description = s
		return p.expectEOL()
	case token.DO:
		p.advance()
		p.match(token.COLON)
		actions, err := p.parseActionBlock()
		if err != nil {
			return err
		}
		node.Actions = append(node.Actions, actions...)
		return nil
	default:
		return cherrors.NewParserError(p.loc(), "unexpected token in trigger body: %s", p.cur().Type)
	}
}
