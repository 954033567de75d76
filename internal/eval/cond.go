package eval

import (
	"fmt"

	"github.com/chesslang/chesslang/internal/ast"
	"github.com/chesslang/chesslang/internal/position"
)

// Condition evaluates c against env (§4.5 "Condition evaluation", §4.8 for
// the victory/draw-specific variants). Side-effect free.
func (e *Env) Condition(c ast.Condition) (bool, error) {
	switch v := c.(type) {
	case ast.EmptyCondition:
		return e.Board.IsEmpty(e.To), nil
	case ast.EnemyCondition:
		return e.Board.HasEnemy(e.To, e.Side), nil
	case ast.FriendCondition:
		return e.Board.HasFriend(e.To, e.Side), nil
	case ast.ClearCondition:
		return e.Board.IsPathClear(e.From, e.To), nil
	case ast.CheckCondition:
		if e.InCheck == nil {
			return false, nil
		}
		return e.InCheck(e.Side), nil
	case ast.FirstMoveCondition:
		if e.Piece == nil {
			return false, nil
		}
		moved, _ := e.Piece.State["moved"].(bool)
		return !moved, nil
	case ast.InZoneCondition:
		return e.inZone(v)
	case ast.OnRankCondition:
		return e.onRank(v)
	case ast.OnFileCondition:
		return e.onFile(v)
	case ast.PieceCapturedCondition:
		return countPieces(e.Board, e.opponent(), v.PieceType) == 0, nil
	case ast.ComparisonCondition:
		return e.comparison(v)
	case ast.LogicalCondition:
		l, err := e.Condition(v.L)
		if err != nil {
			return false, err
		}
		if v.Op == ast.LogicalAnd && !l {
			return false, nil
		}
		if v.Op == ast.LogicalOr && l {
			return true, nil
		}
		return e.Condition(v.R)
	case ast.NotCondition:
		inner, err := e.Condition(v.Inner)
		if err != nil {
			return false, err
		}
		return !inner, nil
	case ast.TruthyCondition:
		val, err := e.Expression(v.Expr)
		if err != nil {
			return false, err
		}
		return truthy(val), nil
	case ast.InCondition:
		return e.in(v)
	case ast.CustomCondition:
		// No built-in semantics: the core has none (§4.5 parity with
		// CustomAction's forward-compatible no-op handling).
		return false, nil
	default:
		return false, fmt.Errorf("eval: unsupported condition %T", c)
	}
}

// locatePiece finds the named piece type owned by subj on the board — used
// by in_zone/on_rank/on_file when PieceType is set (a victory/draw query)
// rather than referring to the move's own destination (§4.8).
func (e *Env) locatePiece(pieceType string, owner position.Owner) (position.Position, bool) {
	for _, p := range e.Board.PiecesByOwner(owner) {
		if p.Type == pieceType {
			return p.Pos, true
		}
	}
	return position.Position{}, false
}

func (e *Env) inZone(v ast.InZoneCondition) (bool, error) {
	if v.PieceType == "" {
		return e.Board.ZoneContains(v.Zone, e.To), nil
	}
	pos, ok := e.locatePiece(v.PieceType, e.Side)
	return ok && e.Board.ZoneContains(v.Zone, pos), nil
}

func (e *Env) onRank(v ast.OnRankCondition) (bool, error) {
	want, err := e.Expression(v.Rank)
	if err != nil {
		return false, err
	}
	wf, ok := want.(float64)
	if !ok {
		return false, nil
	}
	if v.PieceType == "" {
		return float64(e.To.Rank) == wf, nil
	}
	pos, ok := e.locatePiece(v.PieceType, e.Side)
	return ok && float64(pos.Rank) == wf, nil
}

func (e *Env) onFile(v ast.OnFileCondition) (bool, error) {
	want, err := e.Expression(v.File)
	if err != nil {
		return false, err
	}
	wf, ok := want.(float64)
	if !ok {
		return false, nil
	}
	if v.PieceType == "" {
		return float64(e.To.File) == wf, nil
	}
	pos, ok := e.locatePiece(v.PieceType, e.Side)
	return ok && float64(pos.File) == wf, nil
}

func (e *Env) comparison(v ast.ComparisonCondition) (bool, error) {
	l, err := e.Expression(v.Lhs)
	if err != nil {
		return false, err
	}
	r, err := e.Expression(v.Rhs)
	if err != nil {
		return false, err
	}
	switch v.Op {
	case ast.CmpEq:
		return equal(l, r), nil
	case ast.CmpNeq:
		return !equal(l, r), nil
	}
	lf, lok := l.(float64)
	rf, rok := r.(float64)
	if !lok || !rok {
		return false, fmt.Errorf("eval: ordered comparison on non-numeric operands")
	}
	switch v.Op {
	case ast.CmpLt:
		return lf < rf, nil
	case ast.CmpLte:
		return lf <= rf, nil
	case ast.CmpGt:
		return lf > rf, nil
	case ast.CmpGte:
		return lf >= rf, nil
	default:
		return false, fmt.Errorf("eval: unknown comparison operator")
	}
}

func (e *Env) in(v ast.InCondition) (bool, error) {
	needle, err := e.Expression(v.Needle)
	if err != nil {
		return false, err
	}
	coll, err := e.Expression(v.Collection)
	if err != nil {
		return false, err
	}
	switch c := coll.(type) {
	case []any:
		for _, item := range c {
			if equal(item, needle) {
				return true, nil
			}
		}
		return false, nil
	case map[string]any:
		key, ok := needle.(string)
		if !ok {
			return false, nil
		}
		_, ok = c[key]
		return ok, nil
	default:
		return false, nil
	}
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a.(type) {
	case []any, map[string]any:
		return false // non-comparable values never compare equal
	}
	switch b.(type) {
	case []any, map[string]any:
		return false
	}
	return a == b
}
