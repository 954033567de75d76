// Package compiler lowers a parsed ast.GameNode into an ir.CompiledGame,
// implementing the nine-step pipeline (§4.3): pattern interning, board
// resolution, piece lowering, trigger migration, trait seeding, setup
// resolution, victory/draw merge, rules overlay, and script preservation.
// Grounded on the teacher's internal/chess FEN-building and
// internal/processing/normalizer.go two-pass (collect-then-resolve) style.
package compiler

import (
	"github.com/chesslang/chesslang/internal/ast"
	cherrors "github.com/chesslang/chesslang/internal/errors"
	"github.com/chesslang/chesslang/internal/ir"
	"github.com/chesslang/chesslang/internal/position"
)

var builtinTraits = map[string]bool{
	ir.TraitRoyal: true, ir.TraitPhase: true, ir.TraitJump: true,
	ir.TraitPromote: true, ir.TraitImmune: true, ir.TraitExplosive: true,
}

// Compile runs the full pipeline against a single, already-merged GameNode.
// Multi-game `extends` resolution (base + derived) happens in
// CompileProgram, which walks the inheritance chain and calls Compile once
// on the fully layered result; Compile itself only ever lowers one game.
func Compile(g *ast.GameNode) (*ir.CompiledGame, error) {
	cg := &ir.CompiledGame{
		Name:    g.Name,
		Extends: g.Extends,
		Pieces:  map[string]*ir.PieceDefinition{},
		Effects: map[string]*ir.EffectDefinition{},
		Traits:  map[string]ir.Trait{},
	}

	// Step 1: intern named patterns first so piece/effect lowering can
	// resolve references against a complete table.
	cg.Patterns = map[string]ast.Pattern{}
	for _, pd := range g.Patterns {
		cg.Patterns[pd.Name] = pd.Pattern
	}

	// Step 2: board.
	if g.Board == nil {
		return nil, cherrors.NewCompilerError(g.Loc, "game %q has no board section", g.Name)
	}
	zones := make(position.Zones, len(g.Board.Zones))
	for name, squares := range g.Board.Zones {
		zones[name] = position.NewZoneSet(squares...)
	}
	cg.Board = ir.BoardConfig{Width: g.Board.Width, Height: g.Board.Height, Zones: zones}

	// Step 3 + 4: pieces, with inline triggers migrated onto the piece and
	// seeding the traits table as they're named (step 5 runs inline here
	// since it only needs each piece's Traits list, not cross-piece state).
	for _, pn := range g.Pieces {
		pd := &ir.PieceDefinition{
			Name:           pn.Name,
			Move:           pn.Move,
			Capture:        pn.Capture,
			CaptureMode:    pn.CaptureMode,
			HasCaptureMode: pn.HasCaptureMode,
			Traits:         map[string]bool{},
			InitialState:   map[string]any{},
		}
		for _, t := range pn.Traits {
			pd.Traits[t] = true
			if _, ok := cg.Traits[t]; !ok {
				cg.Traits[t] = ir.Trait{Name: t, BuiltIn: builtinTraits[t]}
			}
		}
		for key, expr := range pn.InitialState {
			v, err := constantOf(expr)
			if err != nil {
				return nil, cherrors.NewCompilerError(pn.Loc, "piece %q state %q: %v", pn.Name, key, err)
			}
			pd.InitialState[key] = v
		}
		for _, tn := range pn.Triggers {
			pd.Triggers = append(pd.Triggers, lowerTrigger(tn))
		}
		cg.Pieces[pn.Name] = pd
	}

	// Game-level (non-piece) triggers.
	for _, tn := range g.Triggers {
		cg.Triggers = append(cg.Triggers, lowerTrigger(tn))
	}

	for _, en := range g.Effects {
		cg.Effects[en.Name] = &ir.EffectDefinition{Name: en.Name, Blocks: en.Blocks, Visual: en.Visual}
	}

	// Step 6: setup.
	setup := ir.SetupConfig{Replace: map[string]string{}}
	if g.Setup != nil {
		setup.Additive = g.Setup.Additive
		for k, v := range g.Setup.Replace {
			setup.Replace[k] = v
		}
		for _, pl := range g.Setup.Placements {
			for _, sq := range pl.Squares {
				setup.Placements = append(setup.Placements, ir.Placement{Owner: pl.Owner, PieceType: pl.PieceType, Pos: sq})
			}
		}
	}
	cg.Setup = setup

	// Step 7: victory/draw OR-merge (three passes: remove, then replace, then add).
	victory, err := mergeConditions(nil, g.Victory)
	if err != nil {
		return nil, err
	}
	cg.Victory = victory
	draw, err := mergeConditions(nil, g.Draw)
	if err != nil {
		return nil, err
	}
	cg.Draw = draw

	// Step 8: rules, spec defaults overlaid with authored settings.
	cg.Rules = ir.DefaultRules()
	if g.Rules != nil {
		for k, v := range g.Rules.Settings {
			applyRuleSetting(&cg.Rules, k, v)
		}
	}

	// Step 9: scripts, preserved verbatim for the script runtime.
	for _, s := range g.Scripts {
		cg.Scripts = append(cg.Scripts, s.Code)
	}

	return cg, nil
}

func applyRuleSetting(r *ir.Rules, key string, v bool) {
	switch key {
	case "check_detection":
		r.CheckDetection = v
	case "castling":
		r.Castling = v
	case "en_passant":
		r.EnPassant = v
	case "promotion":
		r.Promotion = v
	case "fifty_move_rule":
		r.FiftyMoveRule = v
	case "threefold_repetition":
		r.ThreefoldRepetition = v
	}
}

func lowerTrigger(tn *ast.TriggerNode) *ir.TriggerDefinition {
	return &ir.TriggerDefinition{
		Name: tn.Name, On: tn.On, When: tn.When, Actions: tn.Actions,
		Optional: tn.Optional, Description: tn.Description,
	}
}

// mergeConditions folds a derived game's victory/draw entries onto an
// inherited base list using add/replace/remove semantics (§4.3 step 7). Per
// spec, this runs as three fixed passes over `entries` regardless of their
// declaration order: first every `remove` strips a named condition from the
// accumulating list, then every `replace` substitutes by name (falling back
// to add if the name is absent), then every `add` appends unique-by-name.
// base may be nil when compiling a root (non-extending) game.
func mergeConditions(base []ir.ConditionDef, entries []*ast.ConditionEntry) ([]ir.ConditionDef, error) {
	idx := map[string]int{}
	out := make([]ir.ConditionDef, len(base))
	copy(out, base)
	for i, c := range out {
		idx[c.Name] = i
	}

	remove := func(name string) {
		if i, ok := idx[name]; ok {
			out = append(out[:i], out[i+1:]...)
			delete(idx, name)
			for n, j := range idx {
				if j > i {
					idx[n] = j - 1
				}
			}
		}
	}
	upsert := func(e *ast.ConditionEntry) error {
		if e.Cond == nil {
			return cherrors.NewCompilerError(e.Loc, "condition %q: missing expression", e.Name)
		}
		if i, ok := idx[e.Name]; ok {
			out[i] = ir.ConditionDef{Name: e.Name, Cond: e.Cond}
		} else {
			idx[e.Name] = len(out)
			out = append(out, ir.ConditionDef{Name: e.Name, Cond: e.Cond})
		}
		return nil
	}

	// Pass 1: remove.
	for _, e := range entries {
		if e.Action == ast.MergeRemove {
			remove(e.Name)
		}
	}
	// Pass 2: replace (falls back to add-by-name if absent, same as upsert).
	for _, e := range entries {
		if e.Action == ast.MergeReplace {
			if err := upsert(e); err != nil {
				return nil, err
			}
		}
	}
	// Pass 3: add, unique-by-name.
	for _, e := range entries {
		if e.Action == ast.MergeAdd {
			if err := upsert(e); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// constantOf evaluates a piece's `state:` initializer, which spec §4.2
// restricts to literal expressions (no board/runtime context exists yet at
// compile time).
func constantOf(e ast.Expression) (any, error) {
	switch v := e.(type) {
	case ast.LiteralExpr:
		return v.Value, nil
	case ast.UnaryExpr:
		if v.Op == "-" {
			inner, err := constantOf(v.Operand)
			if err != nil {
				return nil, err
			}
			if f, ok := inner.(float64); ok {
				return -f, nil
			}
		}
		return nil, cherrors.NewCompilerError(cherrors.Location{}, "non-constant state initializer")
	default:
		return nil, cherrors.NewCompilerError(cherrors.Location{}, "non-constant state initializer")
	}
}
