package ast

// Action is the trigger side-effect tagged union (§3 "Action").
type Action interface{ isAction() }

// AssignOp is the operator in a SetAction.
type AssignOp int

const (
	AssignSet AssignOp = iota
	AssignAdd
	AssignSub
)

// SetAction assigns Target Op Value (Target is a member-expression such as
// piece.state.cooldown or game.customState.flag).
type SetAction struct {
	Target Expression
	Op     AssignOp
	Value  Expression
}

// CreateAction instantiates a new piece of PieceType at Pos. Owner is nil
// when the action defers to the current player (§4.7 "create").
type CreateAction struct {
	PieceType string
	Pos       Expression
	Owner     Expression
}

// RemoveRange is the optional radius-based target selector for RemoveAction.
type RemoveRange struct {
	Radius  int
	From    Expression
	Include []string
	Exclude []string
}

// RemoveAction removes a piece (Target) or every piece within Range.
type RemoveAction struct {
	Target Expression
	Range  *RemoveRange
}

// TransformAction replaces Target's piece type with NewType, inheriting the
// new definition's traits/state.
type TransformAction struct {
	Target  Expression
	NewType string
}

// MarkAction attaches effect EffectType to Pos.
type MarkAction struct {
	Pos        Expression
	EffectType string
}

// MoveAction relocates Target to Dest outside of the triggering move itself
// (e.g. a trigger that teleports a piece).
type MoveAction struct {
	Target Expression
	Dest   Expression
}

// WinAction sets the result in favor of Color.
type WinAction struct {
	Color Expression
}

// LoseAction sets the result against Color.
type LoseAction struct {
	Color Expression
}

// DrawAction ends the game in a draw, optionally naming Reason.
type DrawAction struct {
	Reason string
}

// CancelAction aborts the event the trigger fired on (e.g. reject a capture).
type CancelAction struct{}

// ApplyAction attaches EffectType at Target's resolved position — equivalent
// to MarkAction but phrased as "apply effect to target" in the grammar.
type ApplyAction struct {
	EffectType string
	Target     Expression
}

// ForAction iterates Iterable, rebinding Var in the environment for each
// element, and runs Body.
type ForAction struct {
	Var      string
	Iterable Expression
	Body     []Action
}

// IfAction is a conditional branch; Else may be nil.
type IfAction struct {
	Cond Condition
	Then []Action
	Else []Action
}

// CustomAction names a host-provided action with evaluated arguments.
// Unknown actions are ignored silently by the engine (§7, forward
// compatibility) rather than failing the trigger.
type CustomAction struct {
	Name string
	Args []Expression
}

func (SetAction) isAction()       {}
func (CreateAction) isAction()    {}
func (RemoveAction) isAction()    {}
func (TransformAction) isAction() {}
func (MarkAction) isAction()      {}
func (MoveAction) isAction()      {}
func (WinAction) isAction()       {}
func (LoseAction) isAction()      {}
func (DrawAction) isAction()      {}
func (CancelAction) isAction()    {}
func (ApplyAction) isAction()     {}
func (ForAction) isAction()       {}
func (IfAction) isAction()        {}
func (CustomAction) isAction()    {}
