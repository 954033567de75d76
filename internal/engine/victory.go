package engine

import (
	"github.com/chesslang/chesslang/internal/eval"
	"github.com/chesslang/chesslang/internal/movegen"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

func (e *Engine) isCheckmate(side position.Owner) bool {
	if !movegen.IsInCheck(e.gs.Board, side) {
		return false
	}
	return len(movegen.LegalMoves(e.game, e.gs, side)) == 0
}

func (e *Engine) isStalemate(side position.Owner) bool {
	if movegen.IsInCheck(e.gs.Board, side) {
		return false
	}
	return len(movegen.LegalMoves(e.game, e.gs, side)) == 0
}

// checkGameEnd runs the post-move checks of §4.6 step 8: custom victory/draw
// conditions, checkmate/stalemate, fifty-move, and threefold repetition. The
// first satisfied condition wins; it does not re-check once e.gs.Result is
// already set.
//
// movedSide is the side that just completed the move. Victory/draw
// conditions are evaluated from movedSide's perspective (§4.8's worked King
// of the Hill example reports the mover as winner the instant their own
// king reaches the zone, even though the turn has already passed to the
// opponent); checkmate/stalemate are evaluated against the new side to move,
// per §4.6 step 8's literal wording.
func (e *Engine) checkGameEnd(movedSide position.Owner) {
	if e.gs.Result != nil {
		return
	}
	newSide := e.gs.CurrentPlayer
	env := &eval.Env{
		Game: e.game, State: e.gs, Board: e.gs.Board, Side: movedSide, Vars: map[string]any{},
		InCheck: func(side position.Owner) bool { return movegen.IsInCheck(e.gs.Board, side) },
	}

	for _, v := range e.game.Victory {
		ok, err := env.Condition(v.Cond)
		if err == nil && ok {
			e.gs.Result = &state.GameResult{HasWin: true, Winner: movedSide, Reason: v.Name}
			return
		}
	}
	for _, d := range e.game.Draw {
		ok, err := env.Condition(d.Cond)
		if err == nil && ok {
			e.gs.Result = &state.GameResult{IsDraw: true, Reason: d.Name}
			return
		}
	}

	if e.isCheckmate(newSide) {
		e.gs.Result = &state.GameResult{HasWin: true, Winner: movedSide, Reason: "checkmate"}
		return
	}
	if e.isStalemate(newSide) {
		e.gs.Result = &state.GameResult{IsDraw: true, Reason: "stalemate"}
		return
	}
	if e.game.Rules.FiftyMoveRule && e.gs.HalfMoveClock >= 100 {
		e.gs.Result = &state.GameResult{IsDraw: true, Reason: "fifty_move_rule"}
		return
	}
	if e.game.Rules.ThreefoldRepetition && len(e.gs.PositionHistory) > 0 {
		last := e.gs.PositionHistory[len(e.gs.PositionHistory)-1]
		count := 0
		for _, fen := range e.gs.PositionHistory {
			if fen == last {
				count++
			}
		}
		if count >= 3 {
			e.gs.Result = &state.GameResult{IsDraw: true, Reason: "threefold_repetition"}
		}
	}
}
