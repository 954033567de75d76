package ast

// Condition is the predicate tagged union (§3 "Condition").
type Condition interface{ isCondition() }

// EmptyCondition tests whether the move's destination square is empty.
type EmptyCondition struct{}

// EnemyCondition tests whether the destination holds an enemy piece.
type EnemyCondition struct{}

// FriendCondition tests whether the destination holds a friendly piece.
type FriendCondition struct{}

// ClearCondition tests that the path from the move's origin to destination
// is unobstructed (see position.Between / IsPathClear's linearity quirk).
type ClearCondition struct{}

// CheckCondition tests whether the mover's side is currently in check.
type CheckCondition struct{}

// FirstMoveCondition tests the moving piece's state.moved flag.
type FirstMoveCondition struct{}

// InZoneCondition tests zone membership. PieceType is empty when the
// subject is the moving piece's destination (movegen usage); non-empty when
// used as a victory/draw condition locating a named piece type (§4.8).
type InZoneCondition struct {
	Zone      string
	PieceType string
}

// OnRankCondition tests that a piece's rank equals Rank. PieceType empty
// means the moving piece's destination rank.
type OnRankCondition struct {
	Rank      Expression
	PieceType string
}

// OnFileCondition is OnRankCondition's file-axis counterpart.
type OnFileCondition struct {
	File      Expression
	PieceType string
}

// PieceCapturedCondition is satisfied when the opponent has zero pieces of
// the named type remaining.
type PieceCapturedCondition struct {
	PieceType string
}

// CompareOp enumerates comparison operators. === and !== are accepted by
// the grammar and coincide semantically with == and !=.
type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNeq
	CmpLt
	CmpLte
	CmpGt
	CmpGte
)

// ComparisonCondition evaluates Lhs Op Rhs.
type ComparisonCondition struct {
	Lhs Expression
	Op  CompareOp
	Rhs Expression
}

// LogicalOp is and/or.
type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

// LogicalCondition short-circuits L Op R.
type LogicalCondition struct {
	Op   LogicalOp
	L, R Condition
}

// NotCondition negates Inner.
type NotCondition struct {
	Inner Condition
}

// CustomCondition names a host-provided predicate with evaluated arguments.
// The core has no built-in implementation; it is preserved for forward
// compatibility the way unknown trigger actions are (spec §7).
type CustomCondition struct {
	Name string
	Args []Expression
}

// TruthyCondition wraps an arbitrary expression used as a boolean test
// ("a primary serving as a truthy check" per the condition grammar, §4.2).
type TruthyCondition struct {
	Expr Expression
}

// InCondition is the 'expr in expr' membership test from the condition
// grammar's primary production.
type InCondition struct {
	Needle     Expression
	Collection Expression
}

func (EmptyCondition) isCondition()         {}
func (EnemyCondition) isCondition()         {}
func (FriendCondition) isCondition()        {}
func (ClearCondition) isCondition()         {}
func (CheckCondition) isCondition()         {}
func (FirstMoveCondition) isCondition()     {}
func (InZoneCondition) isCondition()        {}
func (OnRankCondition) isCondition()        {}
func (OnFileCondition) isCondition()        {}
func (PieceCapturedCondition) isCondition() {}
func (ComparisonCondition) isCondition()    {}
func (LogicalCondition) isCondition()       {}
func (NotCondition) isCondition()           {}
func (CustomCondition) isCondition()        {}
func (TruthyCondition) isCondition()        {}
func (InCondition) isCondition()            {}
