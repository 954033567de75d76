// Package eval implements ChessLang's expression/condition evaluator and
// action executor (§4.5 "Condition evaluation" / "Expression evaluation",
// §4.7 "Action semantics"). It is the one place that walks ast.Expression,
// ast.Condition, and ast.Action — movegen uses it to filter conditional
// patterns, engine uses it to run trigger actions and custom victory/draw
// conditions. Grounded on the teacher's internal/cql evaluator, which
// likewise resolves a small identifier environment against typed context
// rather than a general-purpose interpreter.
package eval

import (
	"github.com/chesslang/chesslang/internal/ir"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

// Env is the evaluation context threaded through one expression/condition/
// action evaluation (§4.5 "small host environment").
type Env struct {
	Game  *ir.CompiledGame
	State *state.GameState
	Board *state.Board

	Piece *state.Piece        // the moving/subject piece, if any
	From  position.Position   // origin square of the move under evaluation
	To    position.Position   // destination square
	HasMove bool              // false when no from/to applies (e.g. victory check)

	Side position.Owner // the side the counts (`pieces`, `checks`) are relative to

	// InCheck reports whether side is in check *right now*, backing the
	// `check` condition (§4.5: "tests whether the mover's side is in check").
	// eval cannot compute this itself (attack detection lives in movegen,
	// which already imports eval), so the caller stamps a live closure onto
	// the env at construction. A nil InCheck is treated as false rather than
	// panicking.
	InCheck func(position.Owner) bool

	Vars map[string]any // for-loop bindings and similar local rebinding
}

// Child returns a copy of e with an additional (or overridden) loop
// variable binding, used by ForAction execution.
func (e *Env) Child() *Env {
	vars := make(map[string]any, len(e.Vars)+1)
	for k, v := range e.Vars {
		vars[k] = v
	}
	cp := *e
	cp.Vars = vars
	return &cp
}

func (e *Env) opponent() position.Owner {
	if e.Side == position.White {
		return position.Black
	}
	return position.White
}

func countPieces(b *state.Board, owner position.Owner, pieceType string) int {
	n := 0
	for _, p := range b.PiecesByOwner(owner) {
		if pieceType == "" || p.Type == pieceType {
			n++
		}
	}
	return n
}
