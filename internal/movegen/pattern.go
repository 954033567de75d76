// Package movegen implements the pattern dispatcher and attack-detection
// rules of §4.5: per-pattern-kind destination generation, standard-piece
// attack shapes, and legality filtering via clone-and-simulate. Grounded on
// the teacher's internal/chess move generator, which likewise dispatches on
// piece kind and then filters by a simulated check test.
package movegen

import (
	"sort"

	"github.com/chesslang/chesslang/internal/ast"
	"github.com/chesslang/chesslang/internal/eval"
	"github.com/chesslang/chesslang/internal/ir"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

// Candidate is one raw destination the pattern dispatcher produced, before
// legality filtering.
type Candidate struct {
	To      position.Position
	Capture bool
}

// Generate dispatches on pat's concrete type, producing raw candidates for
// piece moving within gs (§4.5). game supplies the named-pattern table for
// ReferencePattern resolution; gs is threaded through so ConditionalPattern
// can evaluate conditions that reference check counts and other state.
func Generate(game *ir.CompiledGame, gs *state.GameState, piece *state.Piece, pat ast.Pattern) []Candidate {
	if pat == nil {
		return nil
	}
	board := gs.Board
	phase := piece.HasTrait(ir.TraitPhase)
	switch v := pat.(type) {
	case ast.StepPattern:
		return genStep(board, piece, v)
	case ast.SlidePattern:
		return genSlide(board, piece, v, phase)
	case ast.LeapPattern:
		return genLeap(board, piece, v, phase)
	case ast.HopPattern:
		return genHop(board, piece, v)
	case ast.CompositePattern:
		return genComposite(game, gs, piece, v)
	case ast.ConditionalPattern:
		return genConditional(game, gs, piece, v)
	case ast.ReferencePattern:
		resolved := game.ResolvePattern(v)
		if resolved == nil {
			return nil
		}
		return Generate(game, gs, piece, resolved)
	default:
		return nil
	}
}

func genStep(board *state.Board, piece *state.Piece, p ast.StepPattern) []Candidate {
	dist := p.Distance
	if dist == 0 {
		dist = 1
	}
	var out []Candidate
	for _, v := range position.Vectors(p.Direction, piece.Owner) {
		to := piece.Pos.Add(v[0]*dist, v[1]*dist)
		if !to.InBounds(board.Width, board.Height) {
			continue
		}
		out = append(out, Candidate{To: to, Capture: board.HasEnemy(to, piece.Owner)})
	}
	return out
}

func genSlide(board *state.Board, piece *state.Piece, p ast.SlidePattern, phase bool) []Candidate {
	var out []Candidate
	for _, v := range position.Vectors(p.Direction, piece.Owner) {
		cur := piece.Pos.Add(v[0], v[1])
		for cur.InBounds(board.Width, board.Height) {
			occupant := board.At(cur)
			if phase {
				if occupant == nil {
					out = append(out, Candidate{To: cur})
				}
				cur = cur.Add(v[0], v[1])
				continue
			}
			if occupant == nil {
				out = append(out, Candidate{To: cur})
				cur = cur.Add(v[0], v[1])
				continue
			}
			if occupant.Owner != piece.Owner {
				out = append(out, Candidate{To: cur, Capture: true})
			}
			break
		}
	}
	return out
}

func genLeap(board *state.Board, piece *state.Piece, p ast.LeapPattern, phase bool) []Candidate {
	var out []Candidate
	for _, off := range position.LeapOffsets(p.Dx, p.Dy) {
		to := piece.Pos.Add(off[0], off[1])
		if !to.InBounds(board.Width, board.Height) {
			continue
		}
		occupant := board.At(to)
		switch {
		case occupant == nil:
			out = append(out, Candidate{To: to})
		case occupant.Owner == piece.Owner:
			// friendly-occupied; dropped by the global friendly filter too
		case phase:
			out = append(out, Candidate{To: to}) // lands on enemy without capturing
		default:
			out = append(out, Candidate{To: to, Capture: true})
		}
	}
	return out
}

func genHop(board *state.Board, piece *state.Piece, p ast.HopPattern) []Candidate {
	var out []Candidate
	for _, v := range position.Vectors(p.Direction, piece.Owner) {
		cur := piece.Pos.Add(v[0], v[1])
		hopped := false
		for cur.InBounds(board.Width, board.Height) {
			if !hopped {
				if board.At(cur) != nil {
					hopped = true
				}
				cur = cur.Add(v[0], v[1])
				continue
			}
			occupant := board.At(cur)
			switch {
			case occupant == nil:
				out = append(out, Candidate{To: cur})
			case occupant.Owner != piece.Owner:
				out = append(out, Candidate{To: cur, Capture: true})
			}
			break
		}
	}
	return out
}

func genComposite(game *ir.CompiledGame, gs *state.GameState, piece *state.Piece, p ast.CompositePattern) []Candidate {
	if len(p.Children) == 0 {
		return nil
	}
	if p.Op == ast.CompositeThen {
		// Documented open question (§9): only the first child contributes.
		return Generate(game, gs, piece, p.Children[0])
	}
	seen := map[position.Position]Candidate{}
	for _, child := range p.Children {
		for _, c := range Generate(game, gs, piece, child) {
			if existing, ok := seen[c.To]; !ok || (!existing.Capture && c.Capture) {
				seen[c.To] = c
			}
		}
	}
	out := make([]Candidate, 0, len(seen))
	for _, c := range seen {
		out = append(out, c)
	}
	// Deterministic ordering: map iteration order would otherwise leak into
	// getLegalMoves for composite-or pieces across runs.
	sort.Slice(out, func(i, j int) bool {
		if out[i].To.Rank != out[j].To.Rank {
			return out[i].To.Rank < out[j].To.Rank
		}
		return out[i].To.File < out[j].To.File
	})
	return out
}

func genConditional(game *ir.CompiledGame, gs *state.GameState, piece *state.Piece, p ast.ConditionalPattern) []Candidate {
	inner := Generate(game, gs, piece, p.Inner)
	var out []Candidate
	for _, c := range inner {
		env := &eval.Env{
			Game: game, State: gs, Board: gs.Board, Piece: piece, From: piece.Pos, To: c.To,
			Side: piece.Owner, HasMove: true, Vars: map[string]any{},
			InCheck: func(side position.Owner) bool { return IsInCheck(gs.Board, side) },
		}
		ok, err := env.Condition(p.When)
		if err == nil && ok {
			out = append(out, c)
		}
	}
	return out
}
