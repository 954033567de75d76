// Package ir defines CompiledGame: the resolved, immutable game description
// produced by internal/compiler and consumed by internal/engine (§3
// "CompiledGame"). Pattern, Condition, Expression, and Action are reused
// directly from internal/ast — compiling resolves pattern references and
// interns the named-pattern table, it does not change their shape (the
// teacher's own internal/chess and internal/engine packages likewise share
// one Move/Piece vocabulary between parse and play).
package ir

import (
	"github.com/chesslang/chesslang/internal/ast"
	"github.com/chesslang/chesslang/internal/position"
)

// Built-in trait names with engine-enforced semantics (§3).
const (
	TraitRoyal     = "royal"
	TraitPhase     = "phase"
	TraitJump      = "jump"
	TraitPromote   = "promote"
	TraitImmune    = "immune"
	TraitExplosive = "explosive"
)

// Trait describes one entry of the compiled traits table: built-in traits
// carry a semantic flag the engine reads directly; custom traits are
// preserved with no built-in behavior (§4.3 step 5).
type Trait struct {
	Name    string
	BuiltIn bool
}

// EffectDefinition is a declared `effect Name:` template.
type EffectDefinition struct {
	Name   string
	Blocks ast.BlocksMode
	Visual string
}

// TriggerDefinition mirrors ast.TriggerNode; kept as its own IR type so the
// compiler can freely rewrite fields (e.g. normalized event type) without
// aliasing parser-owned data.
type TriggerDefinition struct {
	Name        string
	On          ast.EventType
	When        ast.Condition
	Actions     []ast.Action
	Optional    bool
	Description string
}

// PieceDefinition is a compiled `piece Name:` declaration (§3).
type PieceDefinition struct {
	Name         string
	Move         ast.Pattern
	Capture      ast.Pattern // nil when CaptureMode applies
	CaptureMode  ast.CaptureSentinel
	HasCaptureMode bool
	Traits       map[string]bool
	InitialState map[string]any
	Triggers     []*TriggerDefinition
}

// BoardConfig is the compiled `board:` section.
type BoardConfig struct {
	Width, Height int
	Zones         position.Zones
}

// Placement is one resolved setup entry: a piece type for an owner at a
// fixed position.
type Placement struct {
	Owner     position.Owner
	PieceType string
	Pos       position.Position
}

// SetupConfig is the compiled `setup:` section (§4.3 step 6).
type SetupConfig struct {
	Additive   bool
	Placements []Placement
	Replace    map[string]string
}

// ConditionDef is one compiled victory/draw entry, post-merge (§4.3 step 7).
type ConditionDef struct {
	Name string
	Cond ast.Condition
}

// Rules is the compiled `rules:` section: spec defaults overlaid with the
// author's settings (§4.3 step 8).
type Rules struct {
	CheckDetection      bool
	Castling            bool
	EnPassant           bool
	Promotion           bool
	FiftyMoveRule       bool
	ThreefoldRepetition bool
}

// DefaultRules returns the spec-mandated defaults, all enabled.
func DefaultRules() Rules {
	return Rules{
		CheckDetection: true, Castling: true, EnPassant: true,
		Promotion: true, FiftyMoveRule: true, ThreefoldRepetition: true,
	}
}

// CompiledGame is the immutable, resolved game description an Engine runs
// (§3). Named patterns are interned in Patterns; a Pattern value elsewhere
// in the tree may still be an ast.ReferencePattern for late binding (§4.3
// step 1).
type CompiledGame struct {
	Name     string
	Extends  string
	Board    BoardConfig
	Pieces   map[string]*PieceDefinition
	Effects  map[string]*EffectDefinition
	Triggers []*TriggerDefinition // game-level triggers (not attached to a piece)
	Patterns map[string]ast.Pattern
	Traits   map[string]Trait
	Setup    SetupConfig
	Victory  []ConditionDef
	Draw     []ConditionDef
	Rules    Rules
	Scripts  []string
}

// ResolvePattern follows a chain of ReferencePattern names against the
// interned pattern table. Returns nil if the name is unresolved (§4.5
// "reference: resolve by name; unresolved references contribute no moves").
func (g *CompiledGame) ResolvePattern(p ast.Pattern) ast.Pattern {
	seen := map[string]bool{}
	for {
		ref, ok := p.(ast.ReferencePattern)
		if !ok {
			return p
		}
		if seen[ref.Name] {
			return nil // cyclic reference
		}
		seen[ref.Name] = true
		next, ok := g.Patterns[ref.Name]
		if !ok {
			return nil
		}
		p = next
	}
}
