package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

func sq(s string) position.Position {
	p, err := position.ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return p
}

func TestStateToJSONOrdersPiecesAndEffectsByID(t *testing.T) {
	b := state.NewBoard(8, 8, nil)
	b.Place("Rook", position.Black, sq("a8"), nil, nil)
	b.Place("King", position.White, sq("e1"), map[string]bool{"royal": true}, nil)
	owner := position.White
	b.AddEffect(&state.Effect{Type: "fire", Pos: sq("d4"), Owner: &owner, Visual: "flame"})
	b.AddEffect(&state.Effect{Type: "smoke", Pos: sq("e4")})

	gs := state.NewGameState(b)
	js := StateToJSON(gs)

	if len(js.Pieces) != 2 || js.Pieces[0].ID >= js.Pieces[1].ID {
		t.Fatalf("Pieces = %+v, want ascending id order", js.Pieces)
	}
	if js.Pieces[1].Owner != "white" || js.Pieces[1].Square != "e1" {
		t.Errorf("second piece = %+v, want White King at e1", js.Pieces[1])
	}
	if len(js.Pieces[1].Traits) != 1 || js.Pieces[1].Traits[0] != "royal" {
		t.Errorf("King traits = %v, want [royal]", js.Pieces[1].Traits)
	}

	if len(js.Effects) != 2 || js.Effects[0].ID >= js.Effects[1].ID {
		t.Fatalf("Effects = %+v, want ascending id order", js.Effects)
	}
	if js.Effects[0].Owner != "white" || js.Effects[0].Visual != "flame" {
		t.Errorf("owned effect = %+v, want Owner=white Visual=flame", js.Effects[0])
	}
	if js.Effects[1].Owner != "" {
		t.Errorf("unowned effect Owner = %q, want empty", js.Effects[1].Owner)
	}
}

func TestStateToJSONMoveHistoryAndCastle(t *testing.T) {
	b := state.NewBoard(8, 8, nil)
	gs := state.NewGameState(b)
	gs.MoveHistory = append(gs.MoveHistory, state.Move{
		PieceID: 1, From: sq("e1"), To: sq("g1"), Castle: state.CastleKingside,
	})
	js := StateToJSON(gs)
	if len(js.MoveHistory) != 1 {
		t.Fatalf("MoveHistory = %+v, want one entry", js.MoveHistory)
	}
	mv := js.MoveHistory[0]
	if mv.From != "e1" || mv.To != "g1" || mv.Castle != "kingside" {
		t.Errorf("move = %+v, want e1->g1 castle=kingside", mv)
	}
}

func TestStateToJSONResultNilUntilGameOver(t *testing.T) {
	gs := state.NewGameState(state.NewBoard(8, 8, nil))
	if js := StateToJSON(gs); js.Result != nil {
		t.Errorf("Result = %+v, want nil while the game is live", js.Result)
	}
	gs.Result = &state.GameResult{HasWin: true, Winner: position.Black, Reason: "checkmate"}
	js := StateToJSON(gs)
	if js.Result == nil || js.Result.Winner != "black" || js.Result.Reason != "checkmate" {
		t.Errorf("Result = %+v, want Winner=black Reason=checkmate", js.Result)
	}
}

func TestStateToJSONPendingOptionalTriggers(t *testing.T) {
	gs := state.NewGameState(state.NewBoard(8, 8, nil))
	gs.EnqueueOptionalTrigger("Loot", "loot the captured pawn", state.Move{})
	js := StateToJSON(gs)
	if len(js.PendingTriggers) != 1 || js.PendingTriggers[0].Trigger != "Loot" {
		t.Errorf("PendingTriggers = %+v, want one Loot entry", js.PendingTriggers)
	}
}

func TestWriteStateEmitsIndentedJSON(t *testing.T) {
	gs := state.NewGameState(state.NewBoard(8, 8, nil))
	gs.Board.Place("King", position.White, sq("e1"), map[string]bool{"royal": true}, nil)

	var buf bytes.Buffer
	if err := WriteState(&buf, gs); err != nil {
		t.Fatalf("WriteState: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\"currentPlayer\": \"white\"") {
		t.Errorf("WriteState output missing expected field: %s", out)
	}
	if !strings.Contains(out, "\n  ") {
		t.Error("WriteState output does not look indented")
	}
}
