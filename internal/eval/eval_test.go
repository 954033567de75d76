package eval

import (
	"testing"

	"github.com/chesslang/chesslang/internal/ast"
	"github.com/chesslang/chesslang/internal/ir"
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

func num(v float64) ast.LiteralExpr { return ast.LiteralExpr{Value: v} }

// newEnv builds a minimal Env around a fresh board and game state, mirroring
// how engine/movegen construct one per move (§4.5).
func newEnv(t *testing.T, game *ir.CompiledGame) (*Env, *state.Board) {
	t.Helper()
	if game == nil {
		game = &ir.CompiledGame{Pieces: map[string]*ir.PieceDefinition{}, Effects: map[string]*ir.EffectDefinition{}}
	}
	board := state.NewBoard(8, 8, position.Zones{"hill": position.NewZoneSet(sq("d4"), sq("d5"), sq("e4"), sq("e5"))})
	gs := state.NewGameState(board)
	return &Env{Game: game, State: gs, Board: board, Side: position.White, Vars: map[string]any{}}, board
}

func TestConditionEmptyAndOccupied(t *testing.T) {
	e, board := newEnv(t, nil)
	board.Place("Pawn", position.Black, sq("d5"), nil, nil)
	e.To = sq("d5")
	if got, _ := e.Condition(ast.EmptyCondition{}); got {
		t.Error("EmptyCondition on an occupied square = true")
	}
	if got, _ := e.Condition(ast.EnemyCondition{}); !got {
		t.Error("EnemyCondition = false, want true (Black piece vs White side)")
	}
	if got, _ := e.Condition(ast.FriendCondition{}); got {
		t.Error("FriendCondition = true, want false")
	}
	e.To = sq("d6")
	if got, _ := e.Condition(ast.EmptyCondition{}); !got {
		t.Error("EmptyCondition on an empty square = false")
	}
}

func TestConditionClearRespectsBlockers(t *testing.T) {
	e, board := newEnv(t, nil)
	e.From, e.To = sq("a1"), sq("a8")
	if got, _ := e.Condition(ast.ClearCondition{}); !got {
		t.Error("ClearCondition on an empty file = false, want true")
	}
	board.Place("Pawn", position.White, sq("a4"), nil, nil)
	if got, _ := e.Condition(ast.ClearCondition{}); got {
		t.Error("ClearCondition with a blocker on the path = true, want false")
	}
}

func TestConditionCheckReadsLiveInCheck(t *testing.T) {
	e, _ := newEnv(t, nil)
	if got, _ := e.Condition(ast.CheckCondition{}); got {
		t.Error("CheckCondition with no InCheck stamped = true")
	}
	// CheckCount is a cumulative counter (the `checks` identifier), not the
	// `check` condition's backing store: a stale nonzero count must not make
	// `check` true on its own.
	e.State.CheckCount[position.White] = 1
	if got, _ := e.Condition(ast.CheckCondition{}); got {
		t.Error("CheckCondition with only CheckCount>0 (no live InCheck) = true")
	}
	e.InCheck = func(side position.Owner) bool { return side == position.White }
	if got, _ := e.Condition(ast.CheckCondition{}); !got {
		t.Error("CheckCondition with InCheck(side)=true = false")
	}
	e.InCheck = func(side position.Owner) bool { return false }
	if got, _ := e.Condition(ast.CheckCondition{}); got {
		t.Error("CheckCondition with InCheck(side)=false = true")
	}
}

func TestConditionFirstMove(t *testing.T) {
	e, board := newEnv(t, nil)
	p := board.Place("Rook", position.White, sq("a1"), nil, nil)
	e.Piece = p
	if got, _ := e.Condition(ast.FirstMoveCondition{}); !got {
		t.Error("FirstMoveCondition on a fresh piece = false, want true")
	}
	p.State["moved"] = true
	if got, _ := e.Condition(ast.FirstMoveCondition{}); got {
		t.Error("FirstMoveCondition after moved=true = true, want false")
	}
}

func TestConditionInZoneAsMoveDestination(t *testing.T) {
	e, _ := newEnv(t, nil)
	e.To = sq("e4")
	if got, _ := e.Condition(ast.InZoneCondition{Zone: "hill"}); !got {
		t.Error("InZoneCondition(hill) at e4 = false, want true")
	}
	e.To = sq("a1")
	if got, _ := e.Condition(ast.InZoneCondition{Zone: "hill"}); got {
		t.Error("InZoneCondition(hill) at a1 = true, want false")
	}
}

func TestConditionInZoneLocatesNamedPieceType(t *testing.T) {
	e, board := newEnv(t, nil)
	board.Place("King", position.White, sq("d4"), map[string]bool{"royal": true}, nil)
	if got, _ := e.Condition(ast.InZoneCondition{Zone: "hill", PieceType: "King"}); !got {
		t.Error("InZoneCondition(hill, King) = false, want true")
	}
	if got, _ := e.Condition(ast.InZoneCondition{Zone: "hill", PieceType: "Rook"}); got {
		t.Error("InZoneCondition(hill, Rook) with no Rook on board = true")
	}
}

func TestConditionOnRankOnFile(t *testing.T) {
	e, _ := newEnv(t, nil)
	e.To = sq("e4")
	if got, _ := e.Condition(ast.OnRankCondition{Rank: num(3)}); !got {
		t.Error("OnRankCondition(3) at e4 (rank index 3) = false")
	}
	if got, _ := e.Condition(ast.OnFileCondition{File: num(4)}); !got {
		t.Error("OnFileCondition(4) at e4 (file index 4) = false")
	}
	if got, _ := e.Condition(ast.OnRankCondition{Rank: num(0)}); got {
		t.Error("OnRankCondition(0) at e4 = true, want false")
	}
}

func TestConditionPieceCaptured(t *testing.T) {
	e, board := newEnv(t, nil)
	if got, _ := e.Condition(ast.PieceCapturedCondition{PieceType: "Queen"}); !got {
		t.Error("PieceCapturedCondition with no Queens on board = false")
	}
	board.Place("Queen", position.Black, sq("d8"), nil, nil)
	if got, _ := e.Condition(ast.PieceCapturedCondition{PieceType: "Queen"}); got {
		t.Error("PieceCapturedCondition with an opponent Queen present = true")
	}
}

func TestConditionComparisonOperators(t *testing.T) {
	e, _ := newEnv(t, nil)
	cases := []struct {
		op   ast.CompareOp
		l, r float64
		want bool
	}{
		{ast.CmpEq, 3, 3, true},
		{ast.CmpEq, 3, 4, false},
		{ast.CmpNeq, 3, 4, true},
		{ast.CmpLt, 3, 4, true},
		{ast.CmpLte, 4, 4, true},
		{ast.CmpGt, 5, 4, true},
		{ast.CmpGte, 4, 4, true},
	}
	for _, c := range cases {
		got, err := e.Condition(ast.ComparisonCondition{Lhs: num(c.l), Op: c.op, Rhs: num(c.r)})
		if err != nil {
			t.Fatalf("Condition: %v", err)
		}
		if got != c.want {
			t.Errorf("%v %v %v = %v, want %v", c.l, c.op, c.r, got, c.want)
		}
	}
}

func TestConditionLogicalShortCircuits(t *testing.T) {
	e, _ := newEnv(t, nil)
	e.To = sq("d6")
	// OR: left true should short-circuit without evaluating an invalid right.
	and := ast.LogicalCondition{Op: ast.LogicalOr, L: ast.TruthyCondition{Expr: num(1)}, R: ast.ComparisonCondition{Lhs: num(1), Op: ast.CmpLt, Rhs: ast.IdentifierExpr{Name: "piece"}}}
	got, err := e.Condition(and)
	if err != nil {
		t.Fatalf("Condition: %v", err)
	}
	if !got {
		t.Error("LogicalOr with a true left operand = false")
	}
	falseAnd := ast.LogicalCondition{Op: ast.LogicalAnd, L: ast.TruthyCondition{Expr: num(0)}, R: ast.ComparisonCondition{Lhs: num(1), Op: ast.CmpLt, Rhs: ast.IdentifierExpr{Name: "piece"}}}
	got, err = e.Condition(falseAnd)
	if err != nil {
		t.Fatalf("Condition: %v", err)
	}
	if got {
		t.Error("LogicalAnd with a false left operand = true")
	}
}

func TestConditionNot(t *testing.T) {
	e, _ := newEnv(t, nil)
	got, _ := e.Condition(ast.NotCondition{Inner: ast.TruthyCondition{Expr: num(0)}})
	if !got {
		t.Error("NotCondition(falsy) = false, want true")
	}
}

func TestConditionIn(t *testing.T) {
	e, _ := newEnv(t, nil)
	list := ast.ArrayExpr{Elements: []ast.Expression{num(1), num(2), num(3)}}
	got, _ := e.Condition(ast.InCondition{Needle: num(2), Collection: list})
	if !got {
		t.Error("InCondition(2, [1,2,3]) = false, want true")
	}
	got, _ = e.Condition(ast.InCondition{Needle: num(9), Collection: list})
	if got {
		t.Error("InCondition(9, [1,2,3]) = true, want false")
	}
}

func TestConditionCustomIsAlwaysFalse(t *testing.T) {
	e, _ := newEnv(t, nil)
	got, err := e.Condition(ast.CustomCondition{Name: "whatever"})
	if err != nil {
		t.Fatalf("Condition: %v", err)
	}
	if got {
		t.Error("CustomCondition = true, want false (no built-in semantics)")
	}
}

func TestExpressionIdentifiersAndMembers(t *testing.T) {
	e, board := newEnv(t, nil)
	p := board.Place("Knight", position.White, sq("b1"), nil, map[string]any{"charges": float64(2)})
	e.Piece = p
	e.From, e.To = sq("b1"), sq("c3")

	if v, _ := e.Expression(ast.IdentifierExpr{Name: "piece"}); v != p {
		t.Errorf("identifier piece = %v, want the placed piece", v)
	}
	if v, _ := e.Expression(ast.IdentifierExpr{Name: "from"}); v != sq("b1") {
		t.Errorf("identifier from = %v", v)
	}
	if v, _ := e.Expression(ast.IdentifierExpr{Name: "to"}); v != sq("c3") {
		t.Errorf("identifier to = %v", v)
	}
	typeExpr := ast.MemberExpr{Object: ast.IdentifierExpr{Name: "piece"}, Property: "type"}
	if v, _ := e.Expression(typeExpr); v != "Knight" {
		t.Errorf("piece.type = %v, want Knight", v)
	}
	stateExpr := ast.MemberExpr{
		Object:   ast.MemberExpr{Object: ast.IdentifierExpr{Name: "piece"}, Property: "state"},
		Property: "charges",
	}
	if v, _ := e.Expression(stateExpr); v != float64(2) {
		t.Errorf("piece.state.charges = %v, want 2", v)
	}
}

func TestExpressionChecksAndPieceCounts(t *testing.T) {
	e, board := newEnv(t, nil)
	board.Place("Pawn", position.White, sq("a2"), nil, nil)
	board.Place("Pawn", position.White, sq("b2"), nil, nil)
	board.Place("Pawn", position.Black, sq("a7"), nil, nil)
	e.State.CheckCount[position.White] = 1

	checksWhite := ast.MemberExpr{Object: ast.IdentifierExpr{Name: "checks"}, Property: "White"}
	if v, _ := e.Expression(checksWhite); v != float64(1) {
		t.Errorf("checks.White = %v, want 1", v)
	}
	if v, _ := e.Expression(ast.IdentifierExpr{Name: "pieces"}); v != float64(2) {
		t.Errorf("pieces (Side=White) = %v, want 2", v)
	}
	oppPieces := ast.MemberExpr{Object: ast.IdentifierExpr{Name: "opponent"}, Property: "pieces"}
	if v, _ := e.Expression(oppPieces); v != float64(1) {
		t.Errorf("opponent.pieces = %v, want 1", v)
	}
	oppPawns := ast.MemberExpr{Object: ast.IdentifierExpr{Name: "opponent"}, Property: "Pawn"}
	if v, _ := e.Expression(oppPawns); v != float64(1) {
		t.Errorf("opponent.Pawn = %v, want 1", v)
	}
}

func TestExpressionBinaryArithmeticAndStringConcat(t *testing.T) {
	e, _ := newEnv(t, nil)
	sum := ast.BinaryExpr{Op: "+", L: num(2), R: num(3)}
	if v, _ := e.Expression(sum); v != float64(5) {
		t.Errorf("2+3 = %v, want 5", v)
	}
	diff := ast.BinaryExpr{Op: "-", L: num(5), R: num(2)}
	if v, _ := e.Expression(diff); v != float64(3) {
		t.Errorf("5-2 = %v, want 3", v)
	}
	prod := ast.BinaryExpr{Op: "*", L: num(4), R: num(2)}
	if v, _ := e.Expression(prod); v != float64(8) {
		t.Errorf("4*2 = %v, want 8", v)
	}
	quot := ast.BinaryExpr{Op: "/", L: num(9), R: num(3)}
	if v, _ := e.Expression(quot); v != float64(3) {
		t.Errorf("9/3 = %v, want 3", v)
	}
	concat := ast.BinaryExpr{Op: "+", L: ast.LiteralExpr{Value: "a"}, R: ast.LiteralExpr{Value: "b"}}
	if v, _ := e.Expression(concat); v != "ab" {
		t.Errorf(`"a"+"b" = %v, want "ab"`, v)
	}
	if _, err := e.Expression(ast.BinaryExpr{Op: "/", L: num(1), R: num(0)}); err == nil {
		t.Error("division by zero returned no error")
	}
}

func TestExpressionUnary(t *testing.T) {
	e, _ := newEnv(t, nil)
	if v, _ := e.Expression(ast.UnaryExpr{Op: "-", Operand: num(4)}); v != float64(-4) {
		t.Errorf("-4 = %v", v)
	}
	if v, _ := e.Expression(ast.UnaryExpr{Op: "!", Operand: num(0)}); v != true {
		t.Errorf("!0 = %v, want true", v)
	}
}

func TestTruthyCoercion(t *testing.T) {
	cases := []struct {
		v    any
		want bool
	}{
		{nil, false}, {false, false}, {true, true},
		{float64(0), false}, {float64(1), true},
		{"", false}, {"x", true},
		{position.Position{}, true},
	}
	for _, c := range cases {
		if got := truthy(c.v); got != c.want {
			t.Errorf("truthy(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestActionSetAssignOps(t *testing.T) {
	e, board := newEnv(t, nil)
	p := board.Place("Pawn", position.White, sq("a2"), nil, map[string]any{"n": float64(3)})
	e.Piece = p
	target := ast.MemberExpr{Object: ast.MemberExpr{Object: ast.IdentifierExpr{Name: "piece"}, Property: "state"}, Property: "n"}

	if err := e.Action(ast.SetAction{Target: target, Op: ast.AssignAdd, Value: num(2)}); err != nil {
		t.Fatalf("Action(+=): %v", err)
	}
	if p.State["n"] != float64(5) {
		t.Errorf("n after += 2 = %v, want 5", p.State["n"])
	}
	if err := e.Action(ast.SetAction{Target: target, Op: ast.AssignSub, Value: num(1)}); err != nil {
		t.Fatalf("Action(-=): %v", err)
	}
	if p.State["n"] != float64(4) {
		t.Errorf("n after -= 1 = %v, want 4", p.State["n"])
	}
	if err := e.Action(ast.SetAction{Target: target, Op: ast.AssignSet, Value: num(9)}); err != nil {
		t.Fatalf("Action(=): %v", err)
	}
	if p.State["n"] != float64(9) {
		t.Errorf("n after = 9 = %v, want 9", p.State["n"])
	}
}

func TestActionSetGameCustomState(t *testing.T) {
	e, _ := newEnv(t, nil)
	target := ast.MemberExpr{Object: ast.MemberExpr{Object: ast.IdentifierExpr{Name: "game"}, Property: "customState"}, Property: "loot"}
	if err := e.Action(ast.SetAction{Target: target, Op: ast.AssignAdd, Value: num(1)}); err != nil {
		t.Fatalf("Action: %v", err)
	}
	if e.State.CustomState["loot"] != float64(1) {
		t.Errorf("customState.loot = %v, want 1", e.State.CustomState["loot"])
	}
	if err := e.Action(ast.SetAction{Target: target, Op: ast.AssignAdd, Value: num(4)}); err != nil {
		t.Fatalf("Action: %v", err)
	}
	if e.State.CustomState["loot"] != float64(5) {
		t.Errorf("customState.loot = %v, want 5", e.State.CustomState["loot"])
	}
}

func TestActionCreatePlacesPieceFromDefinition(t *testing.T) {
	game := &ir.CompiledGame{Pieces: map[string]*ir.PieceDefinition{
		"Token": {Name: "Token", Traits: map[string]bool{"phase": true}, InitialState: map[string]any{"charges": float64(1)}},
	}, Effects: map[string]*ir.EffectDefinition{}}
	e, board := newEnv(t, game)
	e.Side = position.Black

	act := ast.CreateAction{PieceType: "Token", Pos: ast.SquareExpr{Square: sq("d5")}}
	if err := e.Action(act); err != nil {
		t.Fatalf("Action(create): %v", err)
	}
	p := board.At(sq("d5"))
	if p == nil || p.Type != "Token" || p.Owner != position.Black {
		t.Fatalf("created piece = %+v, want Token/Black at d5", p)
	}
	if !p.HasTrait("phase") || p.State["charges"] != float64(1) {
		t.Errorf("created piece traits/state = %+v/%+v", p.Traits, p.State)
	}
}

func TestActionCreateWithExplicitOwner(t *testing.T) {
	e, board := newEnv(t, nil)
	e.Side = position.White
	act := ast.CreateAction{PieceType: "Pawn", Pos: ast.SquareExpr{Square: sq("e5")}, Owner: ast.IdentifierExpr{Name: "Black"}}
	if err := e.Action(act); err != nil {
		t.Fatalf("Action(create): %v", err)
	}
	p := board.At(sq("e5"))
	if p == nil || p.Owner != position.Black {
		t.Fatalf("created piece owner = %+v, want Black", p)
	}
}

func TestActionRemoveByTarget(t *testing.T) {
	e, board := newEnv(t, nil)
	board.Place("Pawn", position.Black, sq("d5"), nil, nil)
	act := ast.RemoveAction{Target: ast.SquareExpr{Square: sq("d5")}}
	if err := e.Action(act); err != nil {
		t.Fatalf("Action(remove): %v", err)
	}
	if board.At(sq("d5")) != nil {
		t.Error("piece still present after remove")
	}
}

func TestActionRemoveRangeIncludeExclude(t *testing.T) {
	e, board := newEnv(t, nil)
	board.Place("Pawn", position.Black, sq("d4"), nil, nil)
	board.Place("Pawn", position.Black, sq("d5"), nil, nil)
	board.Place("King", position.Black, sq("e4"), map[string]bool{"royal": true}, nil)
	board.Place("Pawn", position.Black, sq("a1"), nil, nil) // out of radius

	act := ast.RemoveAction{Range: &ast.RemoveRange{
		Radius: 1, From: ast.SquareExpr{Square: sq("d4")},
		Include: []string{"Pawn"},
	}}
	if err := e.Action(act); err != nil {
		t.Fatalf("Action(remove range): %v", err)
	}
	if board.At(sq("d4")) != nil || board.At(sq("d5")) != nil {
		t.Error("in-range Pawns should have been removed")
	}
	if board.At(sq("e4")) == nil {
		t.Error("King should survive an Include:[Pawn] filter")
	}
	if board.At(sq("a1")) == nil {
		t.Error("out-of-radius Pawn should survive")
	}
}

func TestActionRemoveRangeExclude(t *testing.T) {
	e, board := newEnv(t, nil)
	board.Place("Pawn", position.Black, sq("d4"), nil, nil)
	board.Place("King", position.Black, sq("d5"), map[string]bool{"royal": true}, nil)
	act := ast.RemoveAction{Range: &ast.RemoveRange{
		Radius: 2, From: ast.SquareExpr{Square: sq("d4")},
		Exclude: []string{"King"},
	}}
	if err := e.Action(act); err != nil {
		t.Fatalf("Action(remove range): %v", err)
	}
	if board.At(sq("d4")) != nil {
		t.Error("Pawn should have been removed")
	}
	if board.At(sq("d5")) == nil {
		t.Error("King should survive an Exclude:[King] filter")
	}
}

func TestActionTransformInheritsNewDefinition(t *testing.T) {
	game := &ir.CompiledGame{Pieces: map[string]*ir.PieceDefinition{
		"Queen": {Name: "Queen", Traits: map[string]bool{"royal": false}, InitialState: map[string]any{"promoted": true}},
	}, Effects: map[string]*ir.EffectDefinition{}}
	e, board := newEnv(t, game)
	p := board.Place("Pawn", position.White, sq("e8"), nil, map[string]any{"moved": true})
	if err := e.Action(ast.TransformAction{Target: ast.SquareExpr{Square: sq("e8")}, NewType: "Queen"}); err != nil {
		t.Fatalf("Action(transform): %v", err)
	}
	if p.Type != "Queen" {
		t.Errorf("Type after transform = %q, want Queen", p.Type)
	}
	if p.State["promoted"] != true {
		t.Errorf("State after transform = %+v, want the Queen definition's InitialState", p.State)
	}
	if _, stillMoved := p.State["moved"]; stillMoved {
		t.Error("transform should replace state wholesale, not merge it")
	}
}

func TestActionMarkAttachesEffect(t *testing.T) {
	game := &ir.CompiledGame{Pieces: map[string]*ir.PieceDefinition{}, Effects: map[string]*ir.EffectDefinition{
		"fire": {Name: "fire", Blocks: ast.BlocksAll, Visual: "flame"},
	}}
	e, board := newEnv(t, game)
	if err := e.Action(ast.MarkAction{Pos: ast.SquareExpr{Square: sq("d4")}, EffectType: "fire"}); err != nil {
		t.Fatalf("Action(mark): %v", err)
	}
	effects := board.Effects(sq("d4"))
	if len(effects) != 1 || effects[0].Type != "fire" || effects[0].Visual != "flame" {
		t.Fatalf("effects at d4 = %+v", effects)
	}
}

func TestActionMoveRelocatesPiece(t *testing.T) {
	e, board := newEnv(t, nil)
	board.Place("Rook", position.White, sq("a1"), nil, nil)
	act := ast.MoveAction{Target: ast.SquareExpr{Square: sq("a1")}, Dest: ast.SquareExpr{Square: sq("a8")}}
	if err := e.Action(act); err != nil {
		t.Fatalf("Action(move): %v", err)
	}
	if board.At(sq("a1")) != nil {
		t.Error("origin square still occupied after move action")
	}
	if board.At(sq("a8")) == nil {
		t.Error("destination square not occupied after move action")
	}
}

func TestActionWinLoseDraw(t *testing.T) {
	e, _ := newEnv(t, nil)
	if err := e.Action(ast.WinAction{Color: ast.IdentifierExpr{Name: "White"}}); err != nil {
		t.Fatalf("Action(win): %v", err)
	}
	if !e.State.Result.HasWin || e.State.Result.Winner != position.White {
		t.Errorf("Result after win(White) = %+v", e.State.Result)
	}

	e2, _ := newEnv(t, nil)
	if err := e2.Action(ast.LoseAction{Color: ast.IdentifierExpr{Name: "White"}}); err != nil {
		t.Fatalf("Action(lose): %v", err)
	}
	if !e2.State.Result.HasWin || e2.State.Result.Winner != position.Black {
		t.Errorf("Result after lose(White) = %+v, want Black win", e2.State.Result)
	}

	e3, _ := newEnv(t, nil)
	if err := e3.Action(ast.DrawAction{Reason: "stalemate"}); err != nil {
		t.Fatalf("Action(draw): %v", err)
	}
	if !e3.State.Result.IsDraw || e3.State.Result.Reason != "stalemate" {
		t.Errorf("Result after draw = %+v", e3.State.Result)
	}
}

func TestActionCancelReturnsCancelledSentinel(t *testing.T) {
	e, _ := newEnv(t, nil)
	err := e.Action(ast.CancelAction{})
	if _, ok := err.(Cancelled); !ok {
		t.Errorf("Action(cancel) error = %v (%T), want Cancelled", err, err)
	}
}

func TestActionsStopsAtCancel(t *testing.T) {
	e, _ := newEnv(t, nil)
	target := ast.MemberExpr{Object: ast.MemberExpr{Object: ast.IdentifierExpr{Name: "game"}, Property: "customState"}, Property: "x"}
	actions := []ast.Action{
		ast.SetAction{Target: target, Op: ast.AssignSet, Value: num(1)},
		ast.CancelAction{},
		ast.SetAction{Target: target, Op: ast.AssignSet, Value: num(2)},
	}
	err := e.Actions(actions)
	if _, ok := err.(Cancelled); !ok {
		t.Fatalf("Actions error = %v, want Cancelled", err)
	}
	if e.State.CustomState["x"] != float64(1) {
		t.Errorf("customState.x = %v, want 1 (action after cancel must not run)", e.State.CustomState["x"])
	}
}

func TestActionCustomIsIgnored(t *testing.T) {
	e, _ := newEnv(t, nil)
	if err := e.Action(ast.CustomAction{Name: "fanfare"}); err != nil {
		t.Errorf("Action(custom) = %v, want nil (silently ignored)", err)
	}
}

func TestActionForRebindsVariable(t *testing.T) {
	e, board := newEnv(t, nil)
	board.Place("Pawn", position.Black, sq("a7"), nil, map[string]any{"n": float64(0)})
	board.Place("Pawn", position.Black, sq("b7"), nil, map[string]any{"n": float64(0)})

	items := ast.ArrayExpr{Elements: []ast.Expression{
		ast.IdentifierExpr{Name: "pa"}, ast.IdentifierExpr{Name: "pb"},
	}}
	e.Vars["pa"] = board.At(sq("a7"))
	e.Vars["pb"] = board.At(sq("b7"))
	target := ast.MemberExpr{Object: ast.MemberExpr{Object: ast.IdentifierExpr{Name: "p"}, Property: "state"}, Property: "n"}
	body := []ast.Action{ast.SetAction{Target: target, Op: ast.AssignSet, Value: num(9)}}
	if err := e.Action(ast.ForAction{Var: "p", Iterable: items, Body: body}); err != nil {
		t.Fatalf("Action(for): %v", err)
	}
	if board.At(sq("a7")).State["n"] != float64(9) || board.At(sq("b7")).State["n"] != float64(9) {
		t.Errorf("for-loop did not set n on every bound item: %+v / %+v", board.At(sq("a7")).State, board.At(sq("b7")).State)
	}
	if _, ok := e.Vars["p"]; ok {
		t.Error("for-loop leaked its binding into the parent Env")
	}
}

func TestActionIfElse(t *testing.T) {
	e, _ := newEnv(t, nil)
	target := ast.MemberExpr{Object: ast.MemberExpr{Object: ast.IdentifierExpr{Name: "game"}, Property: "customState"}, Property: "branch"}
	thenBody := []ast.Action{ast.SetAction{Target: target, Op: ast.AssignSet, Value: ast.LiteralExpr{Value: "then"}}}
	elseBody := []ast.Action{ast.SetAction{Target: target, Op: ast.AssignSet, Value: ast.LiteralExpr{Value: "else"}}}

	if err := e.Action(ast.IfAction{Cond: ast.TruthyCondition{Expr: num(1)}, Then: thenBody, Else: elseBody}); err != nil {
		t.Fatalf("Action(if): %v", err)
	}
	if e.State.CustomState["branch"] != "then" {
		t.Errorf("branch = %v, want then", e.State.CustomState["branch"])
	}
	if err := e.Action(ast.IfAction{Cond: ast.TruthyCondition{Expr: num(0)}, Then: thenBody, Else: elseBody}); err != nil {
		t.Fatalf("Action(if): %v", err)
	}
	if e.State.CustomState["branch"] != "else" {
		t.Errorf("branch = %v, want else", e.State.CustomState["branch"])
	}
}
