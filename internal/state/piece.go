// Package state implements the runtime board and game-state model that
// internal/engine mutates: Piece, Board, Effect, and GameState. Per spec §9
// ("Shared mutable piece identity"), pieces are keyed by a stable per-engine
// integer id rather than referenced by pointer from two places at once — the
// board grid stores ids, and the piece table is the sole owner of the
// values. Grounded on the teacher's internal/chess board/piece split, which
// keeps a square-indexed grid alongside a flat piece list.
package state

import (
	"github.com/chesslang/chesslang/internal/ast"
	"github.com/chesslang/chesslang/internal/position"
)

// Piece is one live piece instance.
type Piece struct {
	ID     int
	Type   string
	Owner  position.Owner
	Pos    position.Position
	Traits map[string]bool
	State  map[string]any
}

// HasTrait reports whether the piece carries the named trait.
func (p *Piece) HasTrait(name string) bool { return p.Traits != nil && p.Traits[name] }

// Clone returns a deep copy of p, used by Board.Clone for legality
// simulation and undo snapshots.
func (p *Piece) Clone() *Piece {
	traits := make(map[string]bool, len(p.Traits))
	for k, v := range p.Traits {
		traits[k] = v
	}
	st := make(map[string]any, len(p.State))
	for k, v := range p.State {
		st[k] = v
	}
	cp := *p
	cp.Traits = traits
	cp.State = st
	return &cp
}

// Effect is one active effect instance attached to a square (§3 "Effect").
// Owner is nil for an unowned effect (e.g. a neutral zone marker).
type Effect struct {
	ID     int
	Type   string
	Pos    position.Position
	Owner  *position.Owner
	Blocks ast.BlocksMode
	Visual string
}
