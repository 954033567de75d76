package movegen

import (
	"github.com/chesslang/chesslang/internal/ast"
	"github.com/chesslang/chesslang/internal/ir"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

var promotionTypes = []string{"Queen", "Rook", "Bishop", "Knight"}

func defaultPattern(pieceType string) ast.Pattern {
	switch pieceType {
	case "King":
		return ast.StepPattern{Direction: position.Any, Distance: 1}
	case "Queen":
		return ast.SlidePattern{Direction: position.Any}
	case "Rook":
		return ast.SlidePattern{Direction: position.Orthogonal}
	case "Bishop":
		return ast.SlidePattern{Direction: position.Diagonal}
	case "Knight":
		return ast.LeapPattern{Dx: 1, Dy: 2}
	default:
		return nil
	}
}

// PseudoLegalForPiece generates piece's raw (pre-legality, pre-cooldown)
// candidate moves (§4.5, §4.6 "use its PieceDefinition moves or default
// pattern").
func PseudoLegalForPiece(game *ir.CompiledGame, gs *state.GameState, piece *state.Piece) []state.Move {
	if piece.Type == "Pawn" {
		return pawnMoves(game, gs, piece)
	}

	def := game.Pieces[piece.Type]
	var movePat, capturePat ast.Pattern
	separateCapture := false
	if def != nil {
		movePat = def.Move
		if def.HasCaptureMode {
			separateCapture = true
			if def.CaptureMode == ast.CaptureSame {
				capturePat = movePat
			}
		} else if def.Capture != nil {
			separateCapture = true
			capturePat = def.Capture
		}
	}
	if movePat == nil {
		movePat = defaultPattern(piece.Type)
	}

	var cands []Candidate
	if separateCapture {
		for _, c := range Generate(game, gs, piece, movePat) {
			if !c.Capture {
				cands = append(cands, c)
			}
		}
		if capturePat != nil {
			for _, c := range Generate(game, gs, piece, capturePat) {
				if gs.Board.HasEnemy(c.To, piece.Owner) {
					c.Capture = true
					cands = append(cands, c)
				}
			}
		}
	} else {
		cands = Generate(game, gs, piece, movePat)
	}

	var moves []state.Move
	for _, c := range cands {
		if gs.Board.HasFriend(c.To, piece.Owner) {
			continue
		}
		moves = append(moves, state.Move{PieceID: piece.ID, From: piece.Pos, To: c.To, Captured: c.Capture})
	}
	return moves
}

func pawnMoves(game *ir.CompiledGame, gs *state.GameState, piece *state.Piece) []state.Move {
	board := gs.Board
	dir := 1
	startRank := 1
	lastRank := board.Height - 1
	if piece.Owner == position.Black {
		dir = -1
		startRank = board.Height - 2
		lastRank = 0
	}
	var moves []state.Move
	one := piece.Pos.Add(0, dir)
	if one.InBounds(board.Width, board.Height) && board.IsEmpty(one) {
		moves = append(moves, pawnDestinations(piece, one, false, one.Rank == lastRank)...)
		if piece.Pos.Rank == startRank {
			two := piece.Pos.Add(0, 2*dir)
			if board.IsEmpty(two) {
				moves = append(moves, state.Move{PieceID: piece.ID, From: piece.Pos, To: two})
			}
		}
	}
	for _, dx := range []int{-1, 1} {
		sq := piece.Pos.Add(dx, dir)
		if !sq.InBounds(board.Width, board.Height) {
			continue
		}
		if board.HasEnemy(sq, piece.Owner) {
			moves = append(moves, pawnDestinations(piece, sq, true, sq.Rank == lastRank)...)
		}
	}
	if game.Rules.EnPassant {
		if ep, ok := EnPassantCandidate(gs, piece); ok {
			moves = append(moves, ep)
		}
	}
	return moves
}

func pawnDestinations(piece *state.Piece, to position.Position, capture, promotes bool) []state.Move {
	if !promotes {
		return []state.Move{{PieceID: piece.ID, From: piece.Pos, To: to, Captured: capture}}
	}
	out := make([]state.Move, 0, len(promotionTypes))
	for _, pt := range promotionTypes {
		out = append(out, state.Move{PieceID: piece.ID, From: piece.Pos, To: to, Captured: capture, Promotion: pt})
	}
	return out
}

// EnPassantCandidate reports the en passant capture available to piece, if
// the previous move was a double pawn push ending adjacent to it (§4.6).
func EnPassantCandidate(gs *state.GameState, piece *state.Piece) (state.Move, bool) {
	if len(gs.MoveHistory) == 0 {
		return state.Move{}, false
	}
	last := gs.MoveHistory[len(gs.MoveHistory)-1]
	lastPiece := gs.Board.ByID(last.PieceID)
	if lastPiece == nil || lastPiece.Type != "Pawn" || lastPiece.Owner == piece.Owner {
		return state.Move{}, false
	}
	if abs(last.To.Rank-last.From.Rank) != 2 {
		return state.Move{}, false
	}
	if last.To.Rank != piece.Pos.Rank || abs(last.To.File-piece.Pos.File) != 1 {
		return state.Move{}, false
	}
	dir := 1
	if piece.Owner == position.Black {
		dir = -1
	}
	dest := piece.Pos.Add(last.To.File-piece.Pos.File, dir)
	return state.Move{
		PieceID: piece.ID, From: piece.Pos, To: dest, Captured: true,
		EnPassant: true, EnPassantCapPos: last.To,
	}, true
}

// GenerateCastling appends castling candidates for side when rules.Castling
// is enabled, the king hasn't moved, the chosen rook hasn't moved, the
// squares between are empty, and neither the king's current, transit, nor
// destination square is attacked (§4.6).
func GenerateCastling(game *ir.CompiledGame, gs *state.GameState, side position.Owner) []state.Move {
	if !game.Rules.Castling {
		return nil
	}
	king := gs.Board.FindKing(side)
	if king == nil || king.Type != "King" {
		return nil
	}
	if moved, _ := king.State["moved"].(bool); moved {
		return nil
	}
	opp := position.White
	if side == position.White {
		opp = position.Black
	}
	if IsSquareAttacked(gs.Board, king.Pos, opp) {
		return nil
	}
	var out []state.Move
	tryRook := func(rookFile, kingToFile int, sideKind state.CastleSide) {
		rook := gs.Board.At(position.Position{File: rookFile, Rank: king.Pos.Rank})
		if rook == nil || rook.Type != "Rook" || rook.Owner != side {
			return
		}
		if moved, _ := rook.State["moved"].(bool); moved {
			return
		}
		lo, hi := rookFile, king.Pos.File
		if hi < lo {
			lo, hi = hi, lo
		}
		for f := lo + 1; f < hi; f++ {
			if !gs.Board.IsEmpty(position.Position{File: f, Rank: king.Pos.Rank}) {
				return
			}
		}
		kingTo := position.Position{File: kingToFile, Rank: king.Pos.Rank}
		step := 1
		if kingToFile < king.Pos.File {
			step = -1
		}
		for f := king.Pos.File; f != kingToFile+step; f += step {
			sq := position.Position{File: f, Rank: king.Pos.Rank}
			if IsSquareAttacked(gs.Board, sq, opp) {
				return
			}
		}
		out = append(out, state.Move{PieceID: king.ID, From: king.Pos, To: kingTo, Castle: sideKind})
	}
	tryRook(gs.Board.Width-1, king.Pos.File+2, state.CastleKingside)
	tryRook(0, king.Pos.File-2, state.CastleQueenside)
	return out
}

// LegalMoves returns every legal move for side (§4.6 "Legal move generation
// for a side"): cooldown gate, pattern dispatch with built-in defaults,
// castling/en passant, then legality filtering.
func LegalMoves(game *ir.CompiledGame, gs *state.GameState, side position.Owner) []state.Move {
	var all []state.Move
	for _, p := range gs.Board.PiecesByOwner(side) {
		if cd, ok := p.State["cooldown"].(float64); ok && cd > 0 {
			continue
		}
		all = append(all, PseudoLegalForPiece(game, gs, p)...)
	}
	all = append(all, GenerateCastling(game, gs, side)...)
	if !game.Rules.CheckDetection {
		return all
	}
	var legal []state.Move
	for _, mv := range all {
		if IsLegal(game, gs, mv, side) {
			legal = append(legal, mv)
		}
	}
	return legal
}

// IsLegal reports that applying mv to a clone of gs does not leave side's
// royal piece attacked (§4.5 "legality filtering").
func IsLegal(game *ir.CompiledGame, gs *state.GameState, mv state.Move, side position.Owner) bool {
	clone := gs.Board.Clone()
	clone.Move(mv.From, mv.To)
	if mv.EnPassant {
		clone.RemoveAt(mv.EnPassantCapPos)
	}
	king := clone.FindKing(side)
	if king == nil {
		return true // no royal piece: check detection has nothing to enforce
	}
	opp := position.White
	if side == position.White {
		opp = position.Black
	}
	return !IsSquareAttacked(clone, king.Pos, opp)
}

// IsInCheck reports whether side's royal piece is currently attacked.
func IsInCheck(board *state.Board, side position.Owner) bool {
	king := board.FindKing(side)
	if king == nil {
		return false
	}
	opp := position.White
	if side == position.White {
		opp = position.Black
	}
	return IsSquareAttacked(board, king.Pos, opp)
}
