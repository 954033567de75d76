package eval

import (
	"fmt"

	"github.com/chesslang/chesslang/internal/ast"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

// checksRef and opponentRef are intermediate marker values produced by
// evaluating the bare "checks"/"opponent" identifiers; MemberExpr resolves
// their properties against Env rather than against a real struct, since
// neither has a stable Go-side representation of its own (§4.5).
type checksRef struct{}
type opponentRef struct{}

// Expression evaluates e against env, resolving the small host environment
// described in §4.5: piece/from/origin/to/destination/board, color names,
// checks, pieces, opponent.pieces and opponent.<PieceName>.
func (e *Env) Expression(expr ast.Expression) (any, error) {
	switch v := expr.(type) {
	case ast.LiteralExpr:
		return v.Value, nil

	case ast.IdentifierExpr:
		return e.identifier(v.Name)

	case ast.SquareExpr:
		return v.Square, nil

	case ast.MemberExpr:
		obj, err := e.Expression(v.Object)
		if err != nil {
			return nil, err
		}
		return e.member(obj, v.Property)

	case ast.IndexExpr:
		obj, err := e.Expression(v.Object)
		if err != nil {
			return nil, err
		}
		idx, err := e.Expression(v.Index)
		if err != nil {
			return nil, err
		}
		return indexInto(obj, idx)

	case ast.ArrayExpr:
		out := make([]any, len(v.Elements))
		for i, el := range v.Elements {
			val, err := e.Expression(el)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil

	case ast.ObjectExpr:
		out := map[string]any{}
		for _, f := range v.Fields {
			val, err := e.Expression(f.Value)
			if err != nil {
				return nil, err
			}
			out[f.Key] = val
		}
		return out, nil

	case ast.UnaryExpr:
		return e.unary(v)

	case ast.BinaryExpr:
		return e.binary(v)

	case ast.CallExpr:
		// No built-in callable surface is defined by §4.5; custom
		// conditions/actions evaluate their own Args directly instead of
		// routing through a CallExpr.
		for _, a := range v.Args {
			if _, err := e.Expression(a); err != nil {
				return nil, err
			}
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("eval: unsupported expression %T", expr)
	}
}

func (e *Env) identifier(name string) (any, error) {
	switch name {
	case "piece":
		return e.Piece, nil
	case "from", "origin":
		return e.From, nil
	case "to", "destination":
		return e.To, nil
	case "board":
		return e.Board, nil
	case "White":
		return position.White, nil
	case "Black":
		return position.Black, nil
	case "checks":
		return checksRef{}, nil
	case "pieces":
		return float64(countPieces(e.Board, e.Side, "")), nil
	case "opponent":
		return opponentRef{}, nil
	default:
		if v, ok := e.Vars[name]; ok {
			return v, nil
		}
		return nil, nil
	}
}

func (e *Env) member(obj any, prop string) (any, error) {
	switch v := obj.(type) {
	case nil:
		return nil, nil
	case *state.Piece:
		if v == nil {
			return nil, nil
		}
		switch prop {
		case "pos":
			return v.Pos, nil
		case "file":
			return float64(v.Pos.File), nil
		case "rank":
			return float64(v.Pos.Rank), nil
		case "type":
			return v.Type, nil
		case "owner":
			return v.Owner, nil
		case "state":
			return v.State, nil
		default:
			return nil, nil
		}
	case position.Position:
		switch prop {
		case "file":
			return float64(v.File), nil
		case "rank":
			return float64(v.Rank), nil
		}
		return nil, nil
	case map[string]any:
		return v[prop], nil
	case checksRef:
		owner, ok := colorOf(prop)
		if !ok {
			return nil, nil
		}
		return float64(e.State.CheckCount[owner]), nil
	case opponentRef:
		opp := e.opponent()
		if prop == "pieces" {
			return float64(countPieces(e.Board, opp, "")), nil
		}
		return float64(countPieces(e.Board, opp, prop)), nil
	default:
		return nil, nil
	}
}

func colorOf(name string) (position.Owner, bool) {
	switch name {
	case "White":
		return position.White, true
	case "Black":
		return position.Black, true
	default:
		return 0, false
	}
}

func indexInto(obj, idx any) (any, error) {
	switch o := obj.(type) {
	case []any:
		i, ok := idx.(float64)
		if !ok || int(i) < 0 || int(i) >= len(o) {
			return nil, nil
		}
		return o[int(i)], nil
	case map[string]any:
		key, _ := idx.(string)
		return o[key], nil
	default:
		return nil, nil
	}
}

func (e *Env) unary(v ast.UnaryExpr) (any, error) {
	operand, err := e.Expression(v.Operand)
	if err != nil {
		return nil, err
	}
	switch v.Op {
	case "-":
		if f, ok := operand.(float64); ok {
			return -f, nil
		}
		return nil, fmt.Errorf("eval: '-' on non-numeric operand")
	case "!", "not":
		return !truthy(operand), nil
	default:
		return nil, fmt.Errorf("eval: unknown unary operator %q", v.Op)
	}
}

func (e *Env) binary(v ast.BinaryExpr) (any, error) {
	l, err := e.Expression(v.L)
	if err != nil {
		return nil, err
	}
	r, err := e.Expression(v.R)
	if err != nil {
		return nil, err
	}
	lf, lok := l.(float64)
	rf, rok := r.(float64)
	switch v.Op {
	case "+":
		if ls, ok := l.(string); ok {
			if rs, ok := r.(string); ok {
				return ls + rs, nil
			}
		}
		if lok && rok {
			return lf + rf, nil
		}
		return nil, fmt.Errorf("eval: '+' requires matching numeric or string operands")
	case "-":
		if lok && rok {
			return lf - rf, nil
		}
	case "*":
		if lok && rok {
			return lf * rf, nil
		}
	case "/":
		if lok && rok {
			if rf == 0 {
				return nil, fmt.Errorf("eval: division by zero")
			}
			return lf / rf, nil
		}
	}
	return nil, fmt.Errorf("eval: unsupported binary operator %q for operand types", v.Op)
}

// truthy mirrors the language's coercion for TruthyCondition and logical
// short-circuiting over expression results.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
