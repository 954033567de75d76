package ast

import (
	cherrors "github.com/chesslang/chesslang/internal/errors"
	"github.com/chesslang/chesslang/internal/position"
)

// GameNode is the parser's single output: one game definition with an
// optional header, optional sections, and zero or more definitions (§4.2).
type GameNode struct {
	Name     string
	Extends  string
	Board    *BoardNode
	Pieces   []*PieceNode
	Effects  []*EffectNode
	Triggers []*TriggerNode
	Patterns []*PatternDefNode
	Setup    *SetupNode
	Victory  []*ConditionEntry
	Draw     []*ConditionEntry
	Rules    *RulesNode
	Scripts  []*ScriptNode
	Loc      cherrors.Location
}

// BoardNode is the `board:` section: dimensions and named zones.
type BoardNode struct {
	Width, Height int
	Zones         map[string][]position.Position
	Loc           cherrors.Location
}

// PieceNode is a `piece Name:` definition.
type PieceNode struct {
	Name         string
	Move         Pattern
	Capture      Pattern         // nil when CaptureMode is set
	CaptureMode  CaptureSentinel // only meaningful when Capture == nil
	HasCaptureMode bool
	Traits       []string
	InitialState map[string]Expression
	Triggers     []*TriggerNode // inline triggers, migrated onto the piece
	Loc          cherrors.Location
}

// BlocksMode is an Effect's blocking semantics.
type BlocksMode int

const (
	BlocksNone BlocksMode = iota
	BlocksEnemy
	BlocksFriend
	BlocksAll
)

// EffectNode is an `effect Name:` definition template.
type EffectNode struct {
	Name   string
	Blocks BlocksMode
	Visual string
	Loc    cherrors.Location
}

// EventType enumerates the trigger event kinds (§3 "TriggerDefinition").
type EventType int

const (
	EventMove EventType = iota
	EventCapture
	EventCaptured
	EventTurnStart
	EventTurnEnd
	EventCheck
	EventEnterZone
	EventExitZone
	EventGameStart
	EventGameEnd
)

// TriggerNode is a `trigger Name:` definition, or one attached inline to a
// piece (migrated into PieceNode.Triggers by the compiler, §4.3 step 4).
type TriggerNode struct {
	Name        string
	On          EventType
	When        Condition // nil if absent
	Actions     []Action
	Optional    bool
	Description string
	Loc         cherrors.Location
}

// PatternDefNode is a top-level `pattern Name: ...` definition.
type PatternDefNode struct {
	Name    string
	Pattern Pattern
	Loc     cherrors.Location
}

// PlacementNode places one piece type, for one owner, on a set of squares.
type PlacementNode struct {
	Owner     position.Owner
	PieceType string
	Squares   []position.Position
}

// SetupNode is the `setup:` section (§4.2 "three placement forms").
type SetupNode struct {
	Additive   bool
	Placements []PlacementNode
	Replace    map[string]string // old type name -> new type name
	Loc        cherrors.Location
}

// MergeAction governs how a victory/draw entry combines with an inherited
// base-game list (§4.3 step 7).
type MergeAction int

const (
	MergeAdd MergeAction = iota
	MergeReplace
	MergeRemove
)

// ConditionEntry is one named victory or draw condition.
type ConditionEntry struct {
	Name   string
	Cond   Condition // nil for a bare MergeRemove entry
	Action MergeAction
	Loc    cherrors.Location
}

// RulesNode is the `rules:` section; only the booleans the spec defaults
// (§4.3 step 8) are recognized, overlaying whichever the author specifies.
type RulesNode struct {
	Settings map[string]bool
	Loc      cherrors.Location
}

// ScriptNode is one `script { ... }` block, captured verbatim (§4.2).
type ScriptNode struct {
	Code string
	Loc  cherrors.Location
}
