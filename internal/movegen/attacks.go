package movegen

import (
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

// standard piece attack shapes; custom piece types never attack (§4.5,
// §9 open question preserved: "Custom pieces do not participate in attack
// sets in this core").

var orthogonalVectors = [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var diagonalVectors = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// Attacks reports whether p attacks target, using the built-in shape for
// its type. Unknown (custom) types never attack.
func Attacks(board *state.Board, p *state.Piece, target position.Position) bool {
	switch p.Type {
	case "King":
		return position.Chebyshev(p.Pos, target) == 1
	case "Knight":
		for _, off := range position.LeapOffsets(1, 2) {
			if p.Pos.Add(off[0], off[1]) == target {
				return true
			}
		}
		return false
	case "Rook":
		return slideAttacks(board, p.Pos, target, orthogonalVectors)
	case "Bishop":
		return slideAttacks(board, p.Pos, target, diagonalVectors)
	case "Queen":
		return slideAttacks(board, p.Pos, target, orthogonalVectors) || slideAttacks(board, p.Pos, target, diagonalVectors)
	case "Pawn":
		dir := 1
		if p.Owner == position.Black {
			dir = -1
		}
		return target.Rank-p.Pos.Rank == dir && abs(target.File-p.Pos.File) == 1
	default:
		return false
	}
}

// IsSquareAttacked reports whether any piece owned by attacker attacks sq.
func IsSquareAttacked(board *state.Board, sq position.Position, attacker position.Owner) bool {
	for _, p := range board.PiecesByOwner(attacker) {
		if Attacks(board, p, sq) {
			return true
		}
	}
	return false
}

func slideAttacks(board *state.Board, from, target position.Position, vectors [][2]int) bool {
	for _, v := range vectors {
		if onVector(from, target, v) {
			return board.IsPathClear(from, target)
		}
	}
	return false
}

func onVector(from, target position.Position, v [2]int) bool {
	dx := target.File - from.File
	dy := target.Rank - from.Rank
	if dx == 0 && dy == 0 {
		return false
	}
	if sign(dx) != v[0] || sign(dy) != v[1] {
		return false
	}
	if v[0] != 0 && v[1] != 0 {
		return abs(dx) == abs(dy)
	}
	return true
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
