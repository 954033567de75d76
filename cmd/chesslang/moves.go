package main

import (
	"fmt"

	"github.com/chesslang/chesslang/internal/engine"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

var promotionLetters = map[byte]string{
	'q': "Queen", 'r': "Rook", 'b': "Bishop", 'n': "Knight",
}

// scanSquare consumes one leading square token ([a-z]{1,2}[0-9]{1,2}) from s,
// returning it and the unconsumed remainder.
func scanSquare(s string) (square, rest string, ok bool) {
	i := 0
	for i < len(s) && i < 2 && s[i] >= 'a' && s[i] <= 'z' {
		i++
	}
	if i == 0 {
		return "", s, false
	}
	j := i
	for j < len(s) && j < i+2 && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return "", s, false
	}
	return s[:j], s[j:], true
}

// parseMoveString parses a UCI-style move ("e2e4", "e7e8q") and matches it
// against the engine's current legal set, the way a CLI driving a compiled
// game would without its own move-generation logic.
func parseMoveString(eng *engine.Engine, s string) (state.Move, error) {
	fromStr, rest, ok := scanSquare(s)
	if !ok {
		return state.Move{}, fmt.Errorf("malformed move %q", s)
	}
	toStr, rest, ok := scanSquare(rest)
	if !ok {
		return state.Move{}, fmt.Errorf("malformed move %q", s)
	}
	var promotion string
	if len(rest) == 1 {
		pt, ok := promotionLetters[rest[0]]
		if !ok {
			return state.Move{}, fmt.Errorf("malformed move %q", s)
		}
		promotion = pt
	} else if len(rest) > 1 {
		return state.Move{}, fmt.Errorf("malformed move %q", s)
	}

	from, err := position.ParseSquare(fromStr)
	if err != nil {
		return state.Move{}, fmt.Errorf("move %q: %w", s, err)
	}
	to, err := position.ParseSquare(toStr)
	if err != nil {
		return state.Move{}, fmt.Errorf("move %q: %w", s, err)
	}

	for _, mv := range eng.GetLegalMoves() {
		if mv.From == from && mv.To == to && (promotion == "" || mv.Promotion == promotion) {
			return mv, nil
		}
	}
	return state.Move{}, fmt.Errorf("no legal move %s", s)
}
