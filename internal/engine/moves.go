package engine

import (
	"github.com/chesslang/chesslang/internal/ast"
	"github.com/chesslang/chesslang/internal/movegen"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

func (e *Engine) pushSnapshot() {
	cs := make(map[string]any, len(e.gs.CustomState))
	for k, v := range e.gs.CustomState {
		cs[k] = v
	}
	cc := make(map[position.Owner]int, len(e.gs.CheckCount))
	for k, v := range e.gs.CheckCount {
		cc[k] = v
	}
	e.snapshots = append(e.snapshots, &snapshot{
		board: e.gs.Board.Clone(), currentPlayer: e.gs.CurrentPlayer,
		moveHistory: append([]state.Move{}, e.gs.MoveHistory...),
		halfMoveClock: e.gs.HalfMoveClock, fullMoveNumber: e.gs.FullMoveNumber,
		positionHistory: append([]string{}, e.gs.PositionHistory...),
		customState: cs, checkCount: cc, result: e.gs.Result,
	})
}

// UndoMove restores the most recently pushed snapshot (§4.6 "Undo").
func (e *Engine) UndoMove() bool {
	if len(e.snapshots) == 0 {
		return false
	}
	snap := e.snapshots[len(e.snapshots)-1]
	e.snapshots = e.snapshots[:len(e.snapshots)-1]
	e.restoreSnapshot(snap)
	return true
}

func (e *Engine) restoreSnapshot(snap *snapshot) {
	e.gs.Board = snap.board
	e.gs.CurrentPlayer = snap.currentPlayer
	e.gs.MoveHistory = snap.moveHistory
	e.gs.HalfMoveClock = snap.halfMoveClock
	e.gs.FullMoveNumber = snap.fullMoveNumber
	e.gs.PositionHistory = snap.positionHistory
	e.gs.CustomState = snap.customState
	e.gs.CheckCount = snap.checkCount
	e.gs.Result = snap.result
}

func sameMove(a, b state.Move) bool {
	return a.PieceID == b.PieceID && a.From == b.From && a.To == b.To && a.Promotion == b.Promotion && a.Castle == b.Castle
}

// MakeMove executes mv if it is in the current legal set, per the nine-step
// procedure of §4.6.
func (e *Engine) MakeMove(mv state.Move) MoveResult {
	var matched *state.Move
	for _, legal := range e.GetLegalMoves() {
		if sameMove(legal, mv) {
			matched = &legal
			break
		}
	}
	if matched == nil {
		return MoveResult{Success: false, Error: "Illegal move"}
	}
	mv = *matched

	piece := e.gs.Board.ByID(mv.PieceID)
	env := e.buildEnv(piece, mv.From, mv.To)

	// Snapshot before any mutation — including the move/capture triggers
	// fired below, which can themselves mutate piece state, create/remove
	// pieces, or touch game.customState (§4.7 actions). Undo must revert the
	// whole move, triggers included, per §8 invariant 3 ("pieces ... match
	// the pre-move values").
	e.pushSnapshot()

	// Steps 1 (and, ahead of schedule, the capture-trigger half of step 5):
	// both are evaluated before the board mutation so that a `cancel` action
	// can genuinely refuse it, matching §4.7's description of cancel rather
	// than the strict step ordering of §4.6. Any
	// trigger-action mutation that already ran before the cancel is rolled
	// back along with everything else by restoring this same snapshot.
	cancelled, events := e.fireTriggers(ast.EventMove, piece, mv, env)
	if !cancelled && mv.Captured {
		var capEvents []string
		cancelled, capEvents = e.fireTriggers(ast.EventCapture, piece, mv, env)
		events = append(events, capEvents...)
	}
	if cancelled {
		snap := e.snapshots[len(e.snapshots)-1]
		e.snapshots = e.snapshots[:len(e.snapshots)-1]
		e.restoreSnapshot(snap)
		return MoveResult{Success: false, Error: "Illegal move", Events: events}
	}

	board := e.gs.Board

	captured := board.Move(mv.From, mv.To)
	switch mv.Castle {
	case state.CastleKingside:
		rook := board.At(position.Position{File: board.Width - 1, Rank: mv.From.Rank})
		if rook != nil {
			board.Move(rook.Pos, position.Position{File: mv.To.File - 1, Rank: mv.From.Rank})
			rook.State["moved"] = true
		}
	case state.CastleQueenside:
		rook := board.At(position.Position{File: 0, Rank: mv.From.Rank})
		if rook != nil {
			board.Move(rook.Pos, position.Position{File: mv.To.File + 1, Rank: mv.From.Rank})
			rook.State["moved"] = true
		}
	}
	if mv.EnPassant {
		captured = board.RemoveAt(mv.EnPassantCapPos)
	}
	if mv.Promotion != "" {
		piece.Type = mv.Promotion
		def, ok := e.game.Pieces[mv.Promotion]
		traits := map[string]bool{}
		st := map[string]any{}
		if ok {
			for k, v := range def.Traits {
				traits[k] = v
			}
			for k, v := range def.InitialState {
				st[k] = v
			}
		}
		piece.Traits = traits
		piece.State = st
	}

	piece.State["moved"] = true
	isDoublePush := piece.Type == "Pawn" && abs(mv.To.Rank-mv.From.Rank) == 2
	for _, p := range board.AllPieces() {
		if p.Type == "Pawn" {
			if p.ID == piece.ID && isDoublePush {
				p.State["justDoublePushed"] = true
			} else {
				delete(p.State, "justDoublePushed")
			}
		}
	}

	e.gs.MoveHistory = append(e.gs.MoveHistory, mv)
	if piece.Type == "Pawn" || captured != nil {
		e.gs.HalfMoveClock = 0
	} else {
		e.gs.HalfMoveClock++
	}
	movedSide := piece.Owner
	if movedSide == position.Black {
		e.gs.FullMoveNumber++
	}
	fen := state.EncodeFEN(board)
	e.gs.PositionHistory = append(e.gs.PositionHistory, fen)

	events = append(events, "move")
	e.Emit("move", map[string]any{"from": mv.From, "to": mv.To})
	if captured != nil {
		events = append(events, "capture")
		e.Emit("capture", map[string]any{"at": mv.To})
	}
	if color, ok := e.script.GetWinner(); ok {
		e.gs.Result = &state.GameResult{HasWin: true, Winner: position.Owner(color)}
		return MoveResult{Success: true, Captured: captured, Events: events}
	}

	if e.script.ControlsTurnFlow() {
		if e.script.IsTurnEnded() {
			e.switchSide()
			e.script.ResetTurnEnded()
		}
	} else {
		e.switchSide()
	}

	e.fireTurnEnd(piece, mv)
	e.checkGameEnd(movedSide)

	if movegen.IsInCheck(e.gs.Board, e.gs.CurrentPlayer) {
		checkEnv := e.buildEnv(nil, position.Position{}, position.Position{})
		e.gs.CheckCount[e.gs.CurrentPlayer]++
		e.fireTriggers(ast.EventCheck, nil, mv, checkEnv)
	}

	return MoveResult{Success: true, Captured: captured, Events: events}
}

func (e *Engine) switchSide() {
	if e.gs.CurrentPlayer == position.White {
		e.gs.CurrentPlayer = position.Black
	} else {
		e.gs.CurrentPlayer = position.White
	}
}

func (e *Engine) fireTurnEnd(piece *state.Piece, mv state.Move) {
	env := e.buildEnv(piece, mv.From, mv.To)
	e.fireTriggers(ast.EventTurnEnd, piece, mv, env)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
