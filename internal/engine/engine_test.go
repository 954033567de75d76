package engine

import (
	"testing"

	"github.com/chesslang/chesslang/internal/compiler"
	"github.com/chesslang/chesslang/internal/ir"
	"github.com/chesslang/chesslang/internal/parser"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

func mustCompile(t *testing.T, src string) *ir.CompiledGame {
	t.Helper()
	g, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cg, err := compiler.Compile(g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return cg
}

func sq(s string) position.Position {
	p, err := position.ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return p
}

// S1 — default standard chess opening has exactly 20 legal moves (16 pawn +
// 4 knight), and making e2->e4 switches the side to move and records one
// move of history (§8 "S1 Standard opening").
func TestS1StandardOpening(t *testing.T) {
	cg := mustCompile(t, "board:\n  size: 8x8\nsetup:\n")
	e := New(cg, nil)

	moves := e.GetLegalMoves()
	if len(moves) != 20 {
		t.Fatalf("GetLegalMoves() = %d moves, want 20", len(moves))
	}

	e2, e4 := sq("e2"), sq("e4")
	var mv *state.Move
	for _, m := range moves {
		if m.From == e2 && m.To == e4 {
			cp := m
			mv = &cp
		}
	}
	if mv == nil {
		t.Fatalf("e2->e4 not found among legal moves")
	}
	res := e.MakeMove(*mv)
	if !res.Success {
		t.Fatalf("MakeMove(e2e4) failed: %s", res.Error)
	}
	if e.gs.CurrentPlayer != position.Black {
		t.Errorf("CurrentPlayer = %v, want Black", e.gs.CurrentPlayer)
	}
	if len(e.gs.MoveHistory) != 1 {
		t.Errorf("MoveHistory length = %d, want 1", len(e.gs.MoveHistory))
	}
}

// S2 — a White rook delivering back-rank mate against a cornered Black king
// leaves Black with zero legal moves and IsCheckmate true.
func TestS2BackRankMate(t *testing.T) {
	cg := mustCompile(t, "board:\n  size: 8x8\nsetup:\n")
	e := New(cg, nil)
	board := e.gs.Board
	for _, p := range board.AllPieces() {
		board.Remove(p)
	}
	board.Place("King", position.White, sq("a1"), map[string]bool{"royal": true}, nil)
	board.Place("Rook", position.White, sq("a8"), nil, nil)
	board.Place("Rook", position.White, sq("b7"), nil, nil)
	board.Place("King", position.Black, sq("h8"), map[string]bool{"royal": true}, nil)
	e.gs.CurrentPlayer = position.Black

	if !e.isCheckmate(position.Black) {
		t.Error("isCheckmate(Black) = false, want true")
	}
	if moves := e.GetLegalMoves(); len(moves) != 0 {
		t.Errorf("GetLegalMoves() = %d, want 0", len(moves))
	}
}

// S3 — castling kingside is excluded when the king's transit square is
// attacked, even though no piece sits between king and rook.
func TestS3CastlingBlockedThroughAttack(t *testing.T) {
	cg := mustCompile(t, "board:\n  size: 8x8\nsetup:\n")
	e := New(cg, nil)
	board := e.gs.Board
	for _, p := range board.AllPieces() {
		board.Remove(p)
	}
	board.Place("King", position.White, sq("e1"), map[string]bool{"royal": true}, nil)
	board.Place("Rook", position.White, sq("h1"), nil, nil)
	board.Place("King", position.Black, sq("e8"), map[string]bool{"royal": true}, nil)
	board.Place("Rook", position.Black, sq("f8"), nil, nil)

	for _, mv := range e.GetLegalMoves() {
		if mv.Castle == state.CastleKingside {
			t.Fatalf("castle_kingside present in legal moves, want excluded (f1 is attacked): %+v", mv)
		}
	}
}

// S4 — King of the Hill: moving the White king onto a hill-zone square ends
// the game with White as winner and reason "hill".
func TestS4KingOfTheHill(t *testing.T) {
	src := "board:\n  size: 8x8\n  zones:\n    hill: [d4, d5, e4, e5]\nsetup:\nvictory:\n  hill: in_zone(hill, King)\n"
	cg := mustCompile(t, src)
	e := New(cg, nil)
	board := e.gs.Board
	for _, p := range board.AllPieces() {
		board.Remove(p)
	}
	board.Place("King", position.White, sq("e1"), map[string]bool{"royal": true}, nil)
	board.Place("King", position.Black, sq("e8"), map[string]bool{"royal": true}, nil)

	king := e.gs.Board.FindKing(position.White)
	if king == nil {
		t.Fatal("no White king placed")
	}
	// Walk the king toward d4 manually; legality filtering stays enabled
	// but the path is clear and undisputed by the lone Black king.
	for _, dest := range []string{"e2", "e3", "d4"} {
		moves := e.GetLegalMoves()
		to := sq(dest)
		var found *state.Move
		for _, mv := range moves {
			if mv.PieceID == king.ID && mv.To == to {
				cp := mv
				found = &cp
			}
		}
		if found == nil {
			t.Fatalf("no legal king move to %s from %s", dest, king.Pos)
		}
		res := e.MakeMove(*found)
		if !res.Success {
			t.Fatalf("MakeMove to %s failed: %s", dest, res.Error)
		}
		if dest != "d4" {
			// Let Black shuffle its king back and forth so White keeps the move.
			blackMoves := e.GetLegalMoves()
			if len(blackMoves) == 0 {
				t.Fatalf("Black has no legal moves after White's %s", dest)
			}
			e.MakeMove(blackMoves[0])
		}
	}

	result := e.GetResult()
	if result == nil || !result.HasWin || result.Winner != position.White || result.Reason != "hill" {
		t.Fatalf("GetResult() = %+v, want White win by reason 'hill'", result)
	}
}

// S5 — a piece on cooldown contributes no legal moves until the cooldown
// clears; a move-trigger setting cooldown gates the very next turn.
func TestS5CooldownGate(t *testing.T) {
	src := "board:\n  size: 8x8\npiece CooldownPiece:\n  move: step(north)\n  state:\n    cooldown: 0\n  trigger Arm:\n    on: move\n    do:\n      set piece.state.cooldown = 2\nsetup:\n"
	cg := mustCompile(t, src)
	e := New(cg, nil)
	board := e.gs.Board
	for _, p := range board.AllPieces() {
		board.Remove(p)
	}
	def := cg.Pieces["CooldownPiece"]
	piece := board.Place("CooldownPiece", position.White, sq("d4"), def.Traits, def.InitialState)
	board.Place("King", position.White, sq("a1"), map[string]bool{"royal": true}, nil)
	board.Place("King", position.Black, sq("h8"), map[string]bool{"royal": true}, nil)

	before := e.GetLegalMovesForPiece(piece)
	if len(before) == 0 {
		t.Fatal("CooldownPiece should have legal moves before cooldown is set")
	}
	mv := before[0]
	res := e.MakeMove(mv)
	if !res.Success {
		t.Fatalf("MakeMove failed: %s", res.Error)
	}
	if cd, _ := piece.State["cooldown"].(float64); cd != 2 {
		t.Fatalf("cooldown after move = %v, want 2", piece.State["cooldown"])
	}
	if got := e.GetLegalMovesForPiece(piece); len(got) != 0 {
		t.Errorf("GetLegalMovesForPiece while on cooldown = %+v, want none", got)
	}
}

// Undo must revert trigger-induced mutations too, not just the move itself
// (§8 invariant 3): the S5 cooldown trigger sets piece.state.cooldown as a
// side effect of MakeMove, so UndoMove must clear it back to its pre-move
// value along with the piece's position.
func TestUndoRevertsTriggerMutation(t *testing.T) {
	src := "board:\n  size: 8x8\npiece CooldownPiece:\n  move: step(north)\n  state:\n    cooldown: 0\n  trigger Arm:\n    on: move\n    do:\n      set piece.state.cooldown = 2\nsetup:\n"
	cg := mustCompile(t, src)
	e := New(cg, nil)
	board := e.gs.Board
	for _, p := range board.AllPieces() {
		board.Remove(p)
	}
	def := cg.Pieces["CooldownPiece"]
	piece := board.Place("CooldownPiece", position.White, sq("d4"), def.Traits, def.InitialState)
	board.Place("King", position.White, sq("a1"), map[string]bool{"royal": true}, nil)
	board.Place("King", position.Black, sq("h8"), map[string]bool{"royal": true}, nil)

	moves := e.GetLegalMovesForPiece(piece)
	if len(moves) == 0 {
		t.Fatal("CooldownPiece should have legal moves before cooldown is set")
	}
	res := e.MakeMove(moves[0])
	if !res.Success {
		t.Fatalf("MakeMove failed: %s", res.Error)
	}
	if cd, _ := piece.State["cooldown"].(float64); cd != 2 {
		t.Fatalf("cooldown after move = %v, want 2", piece.State["cooldown"])
	}
	if ok := e.UndoMove(); !ok {
		t.Fatal("UndoMove returned false")
	}
	restored := e.gs.Board.ByID(piece.ID)
	if restored.Pos != sq("d4") {
		t.Errorf("piece position after undo = %v, want d4", restored.Pos)
	}
	if cd, _ := restored.State["cooldown"].(float64); cd != 0 {
		t.Errorf("cooldown after undo = %v, want 0 (trigger mutation must be reverted)", restored.State["cooldown"])
	}
}

// S6 — an optional capture trigger is queued rather than applied; skipping
// it discards the queue entry without mutating state, and executing it
// applies the recorded action.
func TestS6OptionalTrigger(t *testing.T) {
	src := "board:\n  size: 8x8\npiece Looter:\n  move: step(north)\n  trigger Loot:\n    on: capture\n    optional: true\n    do:\n      set game.customState.loot += 1\nsetup:\n"
	cg := mustCompile(t, src)
	e := New(cg, nil)
	board := e.gs.Board
	for _, p := range board.AllPieces() {
		board.Remove(p)
	}
	def := cg.Pieces["Looter"]
	looter := board.Place("Looter", position.White, sq("d4"), def.Traits, def.InitialState)
	board.Place("Pawn", position.Black, sq("d5"), nil, nil)
	board.Place("King", position.White, sq("a1"), map[string]bool{"royal": true}, nil)
	board.Place("King", position.Black, sq("h8"), map[string]bool{"royal": true}, nil)
	e.gs.CustomState["loot"] = float64(0)

	moves := e.GetLegalMovesForPiece(looter)
	var capture *state.Move
	for _, mv := range moves {
		if mv.Captured {
			cp := mv
			capture = &cp
		}
	}
	if capture == nil {
		t.Fatalf("expected a capture move for Looter, got %+v", moves)
	}
	res := e.MakeMove(*capture)
	if !res.Success {
		t.Fatalf("MakeMove failed: %s", res.Error)
	}
	pending := e.gs.PendingOptionalTriggers
	if len(pending) != 1 {
		t.Fatalf("PendingOptionalTriggers = %+v, want exactly one", pending)
	}
	id := pending[0].ID

	if ok := e.SkipOptionalTrigger(id); !ok {
		t.Fatal("SkipOptionalTrigger returned false")
	}
	if len(e.gs.PendingOptionalTriggers) != 0 {
		t.Error("PendingOptionalTriggers not emptied by skip")
	}
	if loot, _ := e.gs.CustomState["loot"].(float64); loot != 0 {
		t.Errorf("customState.loot = %v after skip, want unchanged 0", e.gs.CustomState["loot"])
	}

	// Redo the capture scenario fresh and this time execute instead of skip.
	e2 := New(cg, nil)
	board2 := e2.gs.Board
	for _, p := range board2.AllPieces() {
		board2.Remove(p)
	}
	looter2 := board2.Place("Looter", position.White, sq("d4"), def.Traits, def.InitialState)
	board2.Place("Pawn", position.Black, sq("d5"), nil, nil)
	board2.Place("King", position.White, sq("a1"), map[string]bool{"royal": true}, nil)
	board2.Place("King", position.Black, sq("h8"), map[string]bool{"royal": true}, nil)
	e2.gs.CustomState["loot"] = float64(0)
	var capture2 *state.Move
	for _, mv := range e2.GetLegalMovesForPiece(looter2) {
		if mv.Captured {
			cp := mv
			capture2 = &cp
		}
	}
	e2.MakeMove(*capture2)
	pending2 := e2.gs.PendingOptionalTriggers
	if len(pending2) != 1 {
		t.Fatalf("second run PendingOptionalTriggers = %+v, want one", pending2)
	}
	if ok := e2.ExecuteOptionalTrigger(pending2[0].ID); !ok {
		t.Fatal("ExecuteOptionalTrigger returned false")
	}
	if loot, _ := e2.gs.CustomState["loot"].(float64); loot != 1 {
		t.Errorf("customState.loot = %v after execute, want 1", e2.gs.CustomState["loot"])
	}
}

// Undo symmetry (§8 property test): making a legal move then undoing it
// restores pieces, clocks, side to move, history, and FEN exactly.
func TestUndoSymmetry(t *testing.T) {
	cg := mustCompile(t, "board:\n  size: 8x8\nsetup:\n")
	e := New(cg, nil)

	beforeFEN := state.EncodeFEN(e.gs.Board)
	beforeSide := e.gs.CurrentPlayer
	beforeHalf := e.gs.HalfMoveClock
	beforeFull := e.gs.FullMoveNumber
	beforeHistLen := len(e.gs.MoveHistory)

	moves := e.GetLegalMoves()
	if len(moves) == 0 {
		t.Fatal("no legal moves from the starting position")
	}
	res := e.MakeMove(moves[0])
	if !res.Success {
		t.Fatalf("MakeMove failed: %s", res.Error)
	}
	if ok := e.UndoMove(); !ok {
		t.Fatal("UndoMove returned false")
	}

	if got := state.EncodeFEN(e.gs.Board); got != beforeFEN {
		t.Errorf("FEN after undo = %q, want %q", got, beforeFEN)
	}
	if e.gs.CurrentPlayer != beforeSide {
		t.Errorf("CurrentPlayer after undo = %v, want %v", e.gs.CurrentPlayer, beforeSide)
	}
	if e.gs.HalfMoveClock != beforeHalf {
		t.Errorf("HalfMoveClock after undo = %d, want %d", e.gs.HalfMoveClock, beforeHalf)
	}
	if e.gs.FullMoveNumber != beforeFull {
		t.Errorf("FullMoveNumber after undo = %d, want %d", e.gs.FullMoveNumber, beforeFull)
	}
	if len(e.gs.MoveHistory) != beforeHistLen {
		t.Errorf("MoveHistory length after undo = %d, want %d", len(e.gs.MoveHistory), beforeHistLen)
	}
}

// Determinism (§8 property test): replaying the same move sequence against
// two freshly constructed engines from the same CompiledGame produces
// identical board/FEN state.
func TestDeterminism(t *testing.T) {
	cg := mustCompile(t, "board:\n  size: 8x8\nsetup:\n")
	e1 := New(cg, nil)
	e2 := New(cg, nil)

	seq := [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"g1", "f3"}}
	for _, pair := range seq {
		from, to := sq(pair[0]), sq(pair[1])
		for _, e := range []*Engine{e1, e2} {
			var mv *state.Move
			for _, m := range e.GetLegalMoves() {
				if m.From == from && m.To == to {
					cp := m
					mv = &cp
				}
			}
			if mv == nil {
				t.Fatalf("move %s->%s not legal", pair[0], pair[1])
			}
			if res := e.MakeMove(*mv); !res.Success {
				t.Fatalf("MakeMove %s->%s failed: %s", pair[0], pair[1], res.Error)
			}
		}
	}
	fen1 := state.EncodeFEN(e1.gs.Board)
	fen2 := state.EncodeFEN(e2.gs.Board)
	if fen1 != fen2 {
		t.Errorf("FEN mismatch between two identically-played engines: %q vs %q", fen1, fen2)
	}
	if e1.gs.CurrentPlayer != e2.gs.CurrentPlayer {
		t.Error("CurrentPlayer mismatch between identically-played engines")
	}
}

// MakeMove on an illegal move returns a structured failure and leaves state
// unchanged (§7 "engine operations return a structured result").
func TestMakeMoveIllegalIsStructuredFailure(t *testing.T) {
	cg := mustCompile(t, "board:\n  size: 8x8\nsetup:\n")
	e := New(cg, nil)
	before := state.EncodeFEN(e.gs.Board)

	bogus := state.Move{PieceID: 1, From: sq("a1"), To: sq("a8")}
	res := e.MakeMove(bogus)
	if res.Success {
		t.Fatal("MakeMove on an illegal move reported success")
	}
	if res.Error != "Illegal move" {
		t.Errorf("Error = %q, want %q", res.Error, "Illegal move")
	}
	if got := state.EncodeFEN(e.gs.Board); got != before {
		t.Errorf("board mutated by a rejected move: %q vs %q", got, before)
	}
}

// Reset rebuilds the initial state after moves have been made.
func TestReset(t *testing.T) {
	cg := mustCompile(t, "board:\n  size: 8x8\nsetup:\n")
	e := New(cg, nil)
	initialFEN := state.EncodeFEN(e.gs.Board)

	moves := e.GetLegalMoves()
	e.MakeMove(moves[0])
	if state.EncodeFEN(e.gs.Board) == initialFEN {
		t.Fatal("expected board to change after a move")
	}
	e.Reset()
	if got := state.EncodeFEN(e.gs.Board); got != initialFEN {
		t.Errorf("FEN after Reset = %q, want %q", got, initialFEN)
	}
	if len(e.gs.MoveHistory) != 0 {
		t.Errorf("MoveHistory after Reset = %d entries, want 0", len(e.gs.MoveHistory))
	}
	if e.gs.CurrentPlayer != position.White {
		t.Errorf("CurrentPlayer after Reset = %v, want White", e.gs.CurrentPlayer)
	}
}

// Observer registration delivers events emitted during play, including the
// wildcard "" subscription.
func TestObserverEmit(t *testing.T) {
	cg := mustCompile(t, "board:\n  size: 8x8\nsetup:\n")
	e := New(cg, nil)
	var kinds []string
	e.On("move", func(kind string, _ map[string]any) { kinds = append(kinds, "specific:"+kind) })
	e.On("", func(kind string, _ map[string]any) { kinds = append(kinds, "wild:"+kind) })

	moves := e.GetLegalMoves()
	e.MakeMove(moves[0])

	wantSpecific, wantWild := false, false
	for _, k := range kinds {
		if k == "specific:move" {
			wantSpecific = true
		}
		if k == "wild:move" {
			wantWild = true
		}
	}
	if !wantSpecific || !wantWild {
		t.Errorf("kinds = %v, want both a specific and wildcard 'move' delivery", kinds)
	}
}
