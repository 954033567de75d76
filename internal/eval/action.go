package eval

import (
	"fmt"

	"github.com/chesslang/chesslang/internal/ast"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

// Cancelled is returned by Action/Actions to signal a CancelAction fired;
// callers (engine) must abort the surrounding event without applying
// further mutation for that move (§4.7 "cancel").
type Cancelled struct{}

func (Cancelled) Error() string { return "action sequence cancelled" }

// Actions runs a sequence in order, stopping (and returning Cancelled) the
// moment a CancelAction executes.
func (e *Env) Actions(actions []ast.Action) error {
	for _, a := range actions {
		if err := e.Action(a); err != nil {
			return err
		}
	}
	return nil
}

// Action executes one action (§4.7 "Action semantics").
func (e *Env) Action(a ast.Action) error {
	switch v := a.(type) {
	case ast.SetAction:
		return e.doSet(v)
	case ast.CreateAction:
		return e.doCreate(v)
	case ast.RemoveAction:
		return e.doRemove(v)
	case ast.TransformAction:
		return e.doTransform(v)
	case ast.MarkAction:
		return e.doMark(v)
	case ast.MoveAction:
		return e.doMove(v)
	case ast.WinAction:
		color, err := e.Expression(v.Color)
		if err != nil {
			return err
		}
		owner, _ := color.(position.Owner)
		e.State.Result = &state.GameResult{HasWin: true, Winner: owner}
		return nil
	case ast.LoseAction:
		color, err := e.Expression(v.Color)
		if err != nil {
			return err
		}
		owner, _ := color.(position.Owner)
		e.State.Result = &state.GameResult{HasWin: true, Winner: e.otherOf(owner)}
		return nil
	case ast.DrawAction:
		e.State.Result = &state.GameResult{IsDraw: true, Reason: v.Reason}
		return nil
	case ast.CancelAction:
		return Cancelled{}
	case ast.ApplyAction:
		return e.applyEffect(v.EffectType, v.Target)
	case ast.ForAction:
		return e.doFor(v)
	case ast.IfAction:
		return e.doIf(v)
	case ast.CustomAction:
		// Unknown actions are ignored silently (§7 forward compatibility).
		return nil
	default:
		return fmt.Errorf("eval: unsupported action %T", a)
	}
}

func (e *Env) otherOf(owner position.Owner) position.Owner {
	if owner == position.White {
		return position.Black
	}
	return position.White
}

func (e *Env) doSet(v ast.SetAction) error {
	val, err := e.Expression(v.Value)
	if err != nil {
		return err
	}
	m, key, err := e.resolveAssignable(v.Target)
	if err != nil {
		return err
	}
	switch v.Op {
	case ast.AssignAdd:
		if cur, ok := m[key].(float64); ok {
			if nv, ok := val.(float64); ok {
				val = cur + nv
			}
		}
	case ast.AssignSub:
		if cur, ok := m[key].(float64); ok {
			if nv, ok := val.(float64); ok {
				val = cur - nv
			}
		}
	}
	m[key] = val
	return nil
}

// resolveAssignable evaluates a SetAction target expression down to the
// mutable map and key it denotes — `piece.state.X` or `game.customState.X`
// per §4.7.
func (e *Env) resolveAssignable(target ast.Expression) (map[string]any, string, error) {
	member, ok := target.(ast.MemberExpr)
	if !ok {
		return nil, "", fmt.Errorf("eval: set target must be a member expression")
	}
	objVal, err := e.Expression(member.Object)
	if err != nil {
		return nil, "", err
	}
	m, ok := objVal.(map[string]any)
	if !ok {
		// The target is itself the map, e.g. "piece.state" -> need the
		// grandparent: support one more level up for game.customState.X.
		if inner, ok := member.Object.(ast.MemberExpr); ok && inner.Property == "customState" {
			if ident, ok := inner.Object.(ast.IdentifierExpr); ok && ident.Name == "game" {
				return e.State.CustomState, member.Property, nil
			}
		}
		return nil, "", fmt.Errorf("eval: set target %q does not resolve to a mutable state map", member.Property)
	}
	return m, member.Property, nil
}

func (e *Env) doCreate(v ast.CreateAction) error {
	posVal, err := e.Expression(v.Pos)
	if err != nil {
		return err
	}
	pos, ok := posVal.(position.Position)
	if !ok {
		return fmt.Errorf("eval: create position did not resolve to a square")
	}
	owner := e.Side
	if v.Owner != nil {
		ownerVal, err := e.Expression(v.Owner)
		if err != nil {
			return err
		}
		if o, ok := ownerVal.(position.Owner); ok {
			owner = o
		}
	}
	def, ok := e.Game.Pieces[v.PieceType]
	var traits map[string]bool
	var initState map[string]any
	if ok {
		traits, initState = def.Traits, def.InitialState
	}
	e.Board.Place(v.PieceType, owner, pos, traits, initState)
	return nil
}

func (e *Env) doRemove(v ast.RemoveAction) error {
	if v.Range != nil {
		return e.doRemoveRange(v.Range)
	}
	p, err := e.resolvePiece(v.Target)
	if err != nil {
		return err
	}
	if p != nil {
		e.Board.Remove(p)
	}
	return nil
}

func (e *Env) doRemoveRange(r *ast.RemoveRange) error {
	fromVal, err := e.Expression(r.From)
	if err != nil {
		return err
	}
	center, ok := fromVal.(position.Position)
	if !ok {
		return fmt.Errorf("eval: remove range 'from' did not resolve to a square")
	}
	include := toSet(r.Include)
	exclude := toSet(r.Exclude)
	for _, p := range e.Board.AllPieces() {
		if position.Chebyshev(center, p.Pos) > r.Radius {
			continue
		}
		if len(include) > 0 && !include[p.Type] {
			continue
		}
		if exclude[p.Type] {
			continue
		}
		e.Board.Remove(p)
	}
	return nil
}

func toSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func (e *Env) doTransform(v ast.TransformAction) error {
	p, err := e.resolvePiece(v.Target)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	p.Type = v.NewType
	if def, ok := e.Game.Pieces[v.NewType]; ok {
		traits := make(map[string]bool, len(def.Traits))
		for k, val := range def.Traits {
			traits[k] = val
		}
		st := make(map[string]any, len(def.InitialState))
		for k, val := range def.InitialState {
			st[k] = val
		}
		p.Traits, p.State = traits, st
	}
	return nil
}

func (e *Env) doMark(v ast.MarkAction) error {
	return e.applyEffect(v.EffectType, v.Pos)
}

func (e *Env) applyEffect(effectType string, target ast.Expression) error {
	val, err := e.Expression(target)
	if err != nil {
		return err
	}
	var pos position.Position
	switch t := val.(type) {
	case position.Position:
		pos = t
	case *state.Piece:
		if t == nil {
			return nil
		}
		pos = t.Pos
	default:
		return fmt.Errorf("eval: effect target did not resolve to a square or piece")
	}
	blocks := ast.BlocksNone
	visual := ""
	if def, ok := e.Game.Effects[effectType]; ok {
		blocks = def.Blocks
		visual = def.Visual
	}
	owner := e.Side
	e.Board.AddEffect(&state.Effect{Type: effectType, Pos: pos, Owner: &owner, Blocks: blocks, Visual: visual})
	return nil
}

func (e *Env) doMove(v ast.MoveAction) error {
	p, err := e.resolvePiece(v.Target)
	if err != nil || p == nil {
		return err
	}
	destVal, err := e.Expression(v.Dest)
	if err != nil {
		return err
	}
	dest, ok := destVal.(position.Position)
	if !ok {
		return fmt.Errorf("eval: move destination did not resolve to a square")
	}
	e.Board.Move(p.Pos, dest)
	return nil
}

func (e *Env) doFor(v ast.ForAction) error {
	iterVal, err := e.Expression(v.Iterable)
	if err != nil {
		return err
	}
	items, ok := iterVal.([]any)
	if !ok {
		if ps, ok := iterVal.([]*state.Piece); ok {
			for _, p := range ps {
				items = append(items, p)
			}
		} else {
			return nil
		}
	}
	for _, item := range items {
		child := e.Child()
		child.Vars[v.Var] = item
		if err := child.Actions(v.Body); err != nil {
			return err
		}
	}
	return nil
}

func (e *Env) doIf(v ast.IfAction) error {
	cond, err := e.Condition(v.Cond)
	if err != nil {
		return err
	}
	if cond {
		return e.Actions(v.Then)
	}
	return e.Actions(v.Else)
}

// resolvePiece evaluates target to a *state.Piece, accepting either a piece
// value directly or a square that the board currently occupies.
func (e *Env) resolvePiece(target ast.Expression) (*state.Piece, error) {
	val, err := e.Expression(target)
	if err != nil {
		return nil, err
	}
	switch t := val.(type) {
	case *state.Piece:
		return t, nil
	case position.Position:
		return e.Board.At(t), nil
	default:
		return nil, nil
	}
}
