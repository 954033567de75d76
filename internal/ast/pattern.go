// Package ast defines ChessLang's tagged-union node types. Per spec §9
// ("Dynamic typing → tagged unions"), every node kind that the original
// dynamically-typed source represented as a map with a "kind"/"type" field
// is reified here as its own Go type implementing a small marker interface,
// so that every switch over node kind is an exhaustive Go type switch rather
// than a string comparison.
//
// Pattern, Condition, Expression, and Action are shared by the parser's
// output and the compiler's resolved CompiledGame: compiling only resolves
// pattern references and interns named patterns, it does not change shape.
package ast

import "github.com/chesslang/chesslang/internal/position"

// Pattern is the movement-rule tagged union (§3 "Pattern").
type Pattern interface{ isPattern() }

// StepPattern moves a fixed distance along one direction.
type StepPattern struct {
	Direction position.Direction
	Distance  int // multiples of the direction's unit vector; 0 means 1
}

// SlidePattern moves any distance along one direction until blocked.
type SlidePattern struct {
	Direction position.Direction
}

// LeapPattern is a fixed (dx, dy) offset expanded to all 4/8 symmetries.
type LeapPattern struct {
	Dx, Dy int
}

// HopPattern must jump exactly one piece before landing.
type HopPattern struct {
	Direction position.Direction
}

// CompositeOp combines sub-patterns.
type CompositeOp int

const (
	CompositeOr CompositeOp = iota
	CompositeThen
)

// CompositePattern is the union (Or) or sequence (Then) of child patterns.
// Per spec §9 Open Question, CompositeThen's evaluation only honors its
// first child — this is a documented limitation of the current core, not a
// parser restriction (the grammar accepts arbitrary chains).
type CompositePattern struct {
	Op       CompositeOp
	Children []Pattern
}

// ConditionalPattern filters the moves produced by Inner by When.
type ConditionalPattern struct {
	Inner Pattern
	When  Condition
}

// ReferencePattern names another pattern, resolved at compile time against
// the named-pattern table, or left for late binding at generation time.
type ReferencePattern struct {
	Name string
}

func (StepPattern) isPattern()        {}
func (SlidePattern) isPattern()       {}
func (LeapPattern) isPattern()        {}
func (HopPattern) isPattern()         {}
func (CompositePattern) isPattern()   {}
func (ConditionalPattern) isPattern() {}
func (ReferencePattern) isPattern()   {}

// Sentinel capture-pattern values: "capture: same" reuses the move pattern,
// "capture: none" means the piece never captures.
type CaptureSentinel int

const (
	CaptureSame CaptureSentinel = iota
	CaptureNone
)
