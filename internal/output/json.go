// Package output converts a live GameState into a host-facing snapshot
// (§6.1 "get state"). Grounded on the teacher's internal/output/json.go,
// which likewise walks an in-memory game value into a plain JSON-tagged
// struct tree for an external consumer (there: a PGN reader; here: the
// rendering/UI layer, which spec.md §1 treats as an external collaborator).
package output

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

// JSONPiece is one piece in a state snapshot.
type JSONPiece struct {
	ID     int            `json:"id"`
	Type   string         `json:"type"`
	Owner  string         `json:"owner"`
	Square string         `json:"square"`
	Traits []string       `json:"traits,omitempty"`
	State  map[string]any `json:"state,omitempty"`
}

// JSONEffect is one active effect instance in a state snapshot.
type JSONEffect struct {
	ID     int    `json:"id"`
	Type   string `json:"type"`
	Square string `json:"square"`
	Owner  string `json:"owner,omitempty"`
	Visual string `json:"visual,omitempty"`
}

// JSONMove is one executed move in move history.
type JSONMove struct {
	PieceID   int    `json:"pieceId"`
	From      string `json:"from"`
	To        string `json:"to"`
	Captured  bool   `json:"captured,omitempty"`
	Promotion string `json:"promotion,omitempty"`
	Castle    string `json:"castle,omitempty"`
	EnPassant bool   `json:"enPassant,omitempty"`
}

// JSONResult mirrors state.GameResult, or nil while the game is live.
type JSONResult struct {
	Winner string `json:"winner,omitempty"`
	IsDraw bool   `json:"isDraw,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// JSONPendingTrigger mirrors one queued optional trigger.
type JSONPendingTrigger struct {
	ID          int    `json:"id"`
	Trigger     string `json:"trigger"`
	Description string `json:"description,omitempty"`
}

// JSONState is the full GameState snapshot sent to a host/UI consumer.
type JSONState struct {
	Width           int                  `json:"width"`
	Height          int                  `json:"height"`
	Pieces          []JSONPiece          `json:"pieces"`
	Effects         []JSONEffect         `json:"effects,omitempty"`
	CurrentPlayer   string               `json:"currentPlayer"`
	HalfMoveClock   int                  `json:"halfMoveClock"`
	FullMoveNumber  int                  `json:"fullMoveNumber"`
	MoveHistory     []JSONMove           `json:"moveHistory"`
	Result          *JSONResult          `json:"result,omitempty"`
	CheckCount      map[string]int       `json:"checkCount"`
	PendingTriggers []JSONPendingTrigger `json:"pendingOptionalTriggers,omitempty"`
}

func ownerName(o position.Owner) string {
	if o == position.Black {
		return "black"
	}
	return "white"
}

func castleName(c state.CastleSide) string {
	switch c {
	case state.CastleKingside:
		return "kingside"
	case state.CastleQueenside:
		return "queenside"
	default:
		return ""
	}
}

// StateToJSON converts a live GameState into a JSONState snapshot (§6.1,
// §6.2). Piece and effect order is sorted by id for deterministic encoding.
func StateToJSON(gs *state.GameState) *JSONState {
	js := &JSONState{
		Width: gs.Board.Width, Height: gs.Board.Height,
		CurrentPlayer: ownerName(gs.CurrentPlayer),
		HalfMoveClock: gs.HalfMoveClock, FullMoveNumber: gs.FullMoveNumber,
		CheckCount: map[string]int{
			"white": gs.CheckCount[position.White],
			"black": gs.CheckCount[position.Black],
		},
	}

	pieces := gs.Board.AllPieces()
	sort.Slice(pieces, func(i, j int) bool { return pieces[i].ID < pieces[j].ID })
	for _, p := range pieces {
		var traits []string
		for name, on := range p.Traits {
			if on {
				traits = append(traits, name)
			}
		}
		sort.Strings(traits)
		js.Pieces = append(js.Pieces, JSONPiece{
			ID: p.ID, Type: p.Type, Owner: ownerName(p.Owner),
			Square: position.ToSquare(p.Pos), Traits: traits, State: p.State,
		})
	}

	effects := gs.Board.AllEffects()
	sort.Slice(effects, func(i, j int) bool { return effects[i].ID < effects[j].ID })
	for _, e := range effects {
		je := JSONEffect{ID: e.ID, Type: e.Type, Square: position.ToSquare(e.Pos), Visual: e.Visual}
		if e.Owner != nil {
			je.Owner = ownerName(*e.Owner)
		}
		js.Effects = append(js.Effects, je)
	}

	for _, mv := range gs.MoveHistory {
		js.MoveHistory = append(js.MoveHistory, JSONMove{
			PieceID: mv.PieceID, From: position.ToSquare(mv.From), To: position.ToSquare(mv.To),
			Captured: mv.Captured, Promotion: mv.Promotion,
			Castle: castleName(mv.Castle), EnPassant: mv.EnPassant,
		})
	}

	if gs.Result != nil {
		jr := &JSONResult{IsDraw: gs.Result.IsDraw, Reason: gs.Result.Reason}
		if gs.Result.HasWin {
			jr.Winner = ownerName(gs.Result.Winner)
		}
		js.Result = jr
	}

	for _, t := range gs.PendingOptionalTriggers {
		js.PendingTriggers = append(js.PendingTriggers, JSONPendingTrigger{
			ID: t.ID, Trigger: t.TriggerName, Description: t.Description,
		})
	}

	return js
}

// WriteState encodes a GameState snapshot as indented JSON to w (§6.1 "get
// state"), the shape a rendering/UI consumer or the CLI's --state flag reads.
func WriteState(w io.Writer, gs *state.GameState) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(StateToJSON(gs))
}
