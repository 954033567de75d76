package compiler

import (
	"github.com/chesslang/chesslang/internal/ast"
	cherrors "github.com/chesslang/chesslang/internal/errors"
	"github.com/chesslang/chesslang/internal/ir"
)

// CompileProgram compiles the named game within a multi-game source file,
// resolving `extends` by walking the inheritance chain from the root game
// down to name and layering each level's pieces/effects/triggers/patterns
// on top of its base, then running the chain's accumulated victory/draw
// entries through the ordinary merge pass (§4.3 "extends").
func CompileProgram(games map[string]*ast.GameNode, name string) (*ir.CompiledGame, error) {
	chain, err := resolveChain(games, name)
	if err != nil {
		return nil, err
	}
	merged := chain[0]
	for _, g := range chain[1:] {
		merged = layer(merged, g)
	}
	return Compile(merged)
}

func resolveChain(games map[string]*ast.GameNode, name string) ([]*ast.GameNode, error) {
	g, ok := games[name]
	if !ok {
		return nil, cherrors.NewCompilerError(cherrors.Location{}, "unknown game %q", name)
	}
	if g.Extends == "" {
		return []*ast.GameNode{g}, nil
	}
	seen := map[string]bool{name: true}
	var chain []*ast.GameNode
	cur := g
	for {
		chain = append([]*ast.GameNode{cur}, chain...)
		if cur.Extends == "" {
			break
		}
		if seen[cur.Extends] {
			return nil, cherrors.NewCompilerError(cur.Loc, "cyclic extends involving %q", cur.Extends)
		}
		seen[cur.Extends] = true
		base, ok := games[cur.Extends]
		if !ok {
			return nil, cherrors.NewCompilerError(cur.Loc, "extends unknown game %q", cur.Extends)
		}
		cur = base
	}
	return chain, nil
}

// layer applies derived on top of base: board and setup are overridden
// wholesale when present; rules settings are merged key by key, derived
// values winning over base values; collections (pieces,
// effects, patterns) are merged by name; triggers, victory, and draw
// entries accumulate (the latter two still carry their own add/replace/
// remove tags, resolved later by mergeConditions inside Compile).
func layer(base, derived *ast.GameNode) *ast.GameNode {
	out := &ast.GameNode{
		Name: derived.Name, Loc: derived.Loc,
		Board: base.Board, Setup: base.Setup, Rules: base.Rules,
	}
	if derived.Board != nil {
		out.Board = derived.Board
	}
	if derived.Setup != nil {
		out.Setup = derived.Setup
	}
	if derived.Rules != nil {
		merged := &ast.RulesNode{Settings: map[string]bool{}}
		if base.Rules != nil {
			for k, v := range base.Rules.Settings {
				merged.Settings[k] = v
			}
		}
		for k, v := range derived.Rules.Settings {
			merged.Settings[k] = v
		}
		out.Rules = merged
	}

	pieces := map[string]*ast.PieceNode{}
	for _, p := range base.Pieces {
		pieces[p.Name] = p
	}
	for _, p := range derived.Pieces {
		pieces[p.Name] = p
	}
	for _, p := range base.Pieces {
		out.Pieces = append(out.Pieces, pieces[p.Name])
	}
	for _, p := range derived.Pieces {
		if _, existedInBase := findPiece(base.Pieces, p.Name); !existedInBase {
			out.Pieces = append(out.Pieces, p)
		}
	}

	effects := map[string]*ast.EffectNode{}
	for _, ef := range base.Effects {
		effects[ef.Name] = ef
	}
	for _, ef := range derived.Effects {
		effects[ef.Name] = ef
	}
	for _, ef := range base.Effects {
		out.Effects = append(out.Effects, effects[ef.Name])
	}
	for _, ef := range derived.Effects {
		if _, existedInBase := findEffect(base.Effects, ef.Name); !existedInBase {
			out.Effects = append(out.Effects, ef)
		}
	}

	patterns := map[string]*ast.PatternDefNode{}
	for _, p := range base.Patterns {
		patterns[p.Name] = p
	}
	for _, p := range derived.Patterns {
		patterns[p.Name] = p
	}
	for _, p := range base.Patterns {
		out.Patterns = append(out.Patterns, patterns[p.Name])
	}
	for _, p := range derived.Patterns {
		if _, existedInBase := findPattern(base.Patterns, p.Name); !existedInBase {
			out.Patterns = append(out.Patterns, p)
		}
	}

	out.Triggers = append(append([]*ast.TriggerNode{}, base.Triggers...), derived.Triggers...)
	out.Victory = append(append([]*ast.ConditionEntry{}, base.Victory...), derived.Victory...)
	out.Draw = append(append([]*ast.ConditionEntry{}, base.Draw...), derived.Draw...)
	out.Scripts = append(append([]*ast.ScriptNode{}, base.Scripts...), derived.Scripts...)
	return out
}

func findPiece(list []*ast.PieceNode, name string) (*ast.PieceNode, bool) {
	for _, p := range list {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

func findEffect(list []*ast.EffectNode, name string) (*ast.EffectNode, bool) {
	for _, e := range list {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

func findPattern(list []*ast.PatternDefNode, name string) (*ast.PatternDefNode, bool) {
	for _, p := range list {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}
