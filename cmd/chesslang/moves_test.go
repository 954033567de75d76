package main

import (
	"testing"

	"github.com/chesslang/chesslang/internal/compiler"
	"github.com/chesslang/chesslang/internal/engine"
	"github.com/chesslang/chesslang/internal/parser"
)

func mustEngine(t *testing.T, src string) *engine.Engine {
	t.Helper()
	g, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cg, err := compiler.Compile(g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return engine.New(cg, nil)
}

func TestScanSquare(t *testing.T) {
	cases := []struct {
		in, square, rest string
		ok               bool
	}{
		{"e2e4", "e2", "e4", true},
		{"e7e8q", "e7", "e8q", true},
		{"aa10bb20", "aa10", "bb20", true},
		{"", "", "", false},
		{"4e", "", "4e", false},
	}
	for _, c := range cases {
		sq, rest, ok := scanSquare(c.in)
		if sq != c.square || rest != c.rest || ok != c.ok {
			t.Errorf("scanSquare(%q) = (%q, %q, %v), want (%q, %q, %v)", c.in, sq, rest, ok, c.square, c.rest, c.ok)
		}
	}
}

func TestParseMoveStringPlain(t *testing.T) {
	eng := mustEngine(t, "board:\n  size: 8x8\nsetup:\n")
	mv, err := parseMoveString(eng, "e2e4")
	if err != nil {
		t.Fatalf("parseMoveString: %v", err)
	}
	if mv.Promotion != "" {
		t.Errorf("Promotion = %q, want empty", mv.Promotion)
	}
}

func TestParseMoveStringPromotion(t *testing.T) {
	// An additive setup seeds the full standard position first, so e8 is
	// already occupied by the Black king. Promote by capturing the Black
	// rook on h8 instead of pushing onto an occupied home square.
	src := "board:\n  size: 8x8\nsetup:\n  add:\n    White Pawn: [g7]\n"
	eng := mustEngine(t, src)
	mv, err := parseMoveString(eng, "g7h8q")
	if err != nil {
		t.Fatalf("parseMoveString: %v", err)
	}
	if mv.Promotion != "Queen" {
		t.Errorf("Promotion = %q, want Queen", mv.Promotion)
	}
}

func TestParseMoveStringMalformedAndIllegal(t *testing.T) {
	eng := mustEngine(t, "board:\n  size: 8x8\nsetup:\n")
	if _, err := parseMoveString(eng, "e2e4z"); err == nil {
		t.Error("expected an error for a malformed trailing promotion letter")
	}
	if _, err := parseMoveString(eng, "e2"); err == nil {
		t.Error("expected an error for a move missing its destination square")
	}
	if _, err := parseMoveString(eng, "a1a8"); err == nil {
		t.Error("expected an error for a move not in the legal set")
	}
}
