package engine

import (
	"errors"
	"fmt"

	"github.com/chesslang/chesslang/internal/ast"
	"github.com/chesslang/chesslang/internal/eval"
	"github.com/chesslang/chesslang/internal/ir"
	"github.com/chesslang/chesslang/internal/movegen"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

func eventName(ev ast.EventType) string {
	switch ev {
	case ast.EventMove:
		return "move"
	case ast.EventCapture:
		return "capture"
	case ast.EventCaptured:
		return "captured"
	case ast.EventTurnStart:
		return "turn_start"
	case ast.EventTurnEnd:
		return "turn_end"
	case ast.EventCheck:
		return "check"
	case ast.EventEnterZone:
		return "enter_zone"
	case ast.EventExitZone:
		return "exit_zone"
	case ast.EventGameStart:
		return "game_start"
	case ast.EventGameEnd:
		return "game_end"
	default:
		return "unknown"
	}
}

// buildEnv constructs the evaluation context for one move: piece, origin,
// destination, and the side-to-move the move belongs to.
func (e *Engine) buildEnv(piece *state.Piece, from, to position.Position) *eval.Env {
	side := e.gs.CurrentPlayer
	if piece != nil {
		side = piece.Owner
	}
	return &eval.Env{
		Game: e.game, State: e.gs, Board: e.gs.Board,
		Piece: piece, From: from, To: to, HasMove: true, Side: side,
		Vars:    map[string]any{},
		InCheck: func(s position.Owner) bool { return movegen.IsInCheck(e.gs.Board, s) },
	}
}

// orderedTriggers returns every trigger of the given event type, with the
// acting piece's own (inline-migrated) triggers checked before game-level
// ones, preserving declaration order within each group (§4.7 "iterate
// triggers in declaration order").
func (e *Engine) orderedTriggers(ev ast.EventType, piece *state.Piece) []*ir.TriggerDefinition {
	var out []*ir.TriggerDefinition
	if piece != nil {
		if def, ok := e.game.Pieces[piece.Type]; ok {
			for _, t := range def.Triggers {
				if t.On == ev {
					out = append(out, t)
				}
			}
		}
	}
	for _, t := range e.game.Triggers {
		if t.On == ev {
			out = append(out, t)
		}
	}
	return out
}

// fireTriggers runs every matching trigger for ev against env's move
// context. Returns true if a CancelAction fired (the caller must not mutate
// the board for that move, §4.7).
func (e *Engine) fireTriggers(ev ast.EventType, piece *state.Piece, mv state.Move, env *eval.Env) (cancelled bool, events []string) {
	for _, t := range e.orderedTriggers(ev, piece) {
		if t.When != nil {
			ok, err := env.Condition(t.When)
			if err != nil || !ok {
				continue
			}
		}
		if t.Optional {
			id := e.gs.EnqueueOptionalTrigger(t.Name, t.Description, mv)
			e.Emit("optional_trigger", map[string]any{"id": id, "trigger": t.Name})
			continue
		}
		err := env.Actions(t.Actions)
		events = append(events, fmt.Sprintf("trigger:%s:%s", eventName(ev), t.Name))
		var c eval.Cancelled
		if errors.As(err, &c) {
			return true, events
		}
	}
	return false, events
}

// ExecuteOptionalTrigger runs a previously queued trigger's actions,
// reconstructing the evaluation context from its recorded move (§4.7).
func (e *Engine) ExecuteOptionalTrigger(id int) bool {
	pending, ok := e.gs.PopPendingTrigger(id)
	if !ok {
		return false
	}
	var trig *ir.TriggerDefinition
	for _, t := range e.game.Triggers {
		if t.Name == pending.TriggerName {
			trig = t
			break
		}
	}
	if trig == nil {
		for _, def := range e.game.Pieces {
			for _, t := range def.Triggers {
				if t.Name == pending.TriggerName {
					trig = t
				}
			}
		}
	}
	if trig == nil {
		return false
	}
	piece := e.gs.Board.ByID(pending.Move.PieceID)
	env := e.buildEnv(piece, pending.Move.From, pending.Move.To)
	_ = env.Actions(trig.Actions)
	return true
}

// SkipOptionalTrigger discards a pending trigger without mutating state.
func (e *Engine) SkipOptionalTrigger(id int) bool {
	_, ok := e.gs.PopPendingTrigger(id)
	return ok
}
