// chesslang compiles one or more ChessLang source files and, optionally,
// replays a move list against the result, printing diagnostics at their
// source location the way an editor integration would (spec.md §6.3, §7
// "the host surfaces lexer/parser/compiler errors at their location").
// Modeled on the teacher's cmd/pgn-extract: a flag-parsing main.go plus
// small per-concern helper files in the same package.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chesslang/chesslang/internal/ast"
	"github.com/chesslang/chesslang/internal/compiler"
	"github.com/chesslang/chesslang/internal/engine"
	"github.com/chesslang/chesslang/internal/output"
	"github.com/chesslang/chesslang/internal/parser"
	"github.com/chesslang/chesslang/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *version {
		fmt.Printf("chesslang version %s\n", programVersion)
		os.Exit(0)
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "chesslang: no source files given")
		usage()
		os.Exit(2)
	}

	if *lintMode {
		runLint(files)
		return
	}

	games, order, err := loadGames(files)
	if err != nil {
		printDiagnostic(err)
		os.Exit(1)
	}

	target := *gameName
	if target == "" {
		target = order[len(order)-1]
	}

	compiled, err := compiler.CompileProgram(games, target)
	if err != nil {
		printDiagnostic(err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "compiled %q: board %dx%d, %d piece types, %d triggers\n",
		compiled.Name, compiled.Board.Width, compiled.Board.Height, len(compiled.Pieces), len(compiled.Triggers))

	eng := engine.New(compiled, nil)

	for _, mv := range *moves {
		if mv == "" {
			continue
		}
		parsed, perr := parseMoveString(eng, mv)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "chesslang: %v\n", perr)
			os.Exit(1)
		}
		res := eng.MakeMove(parsed)
		if !res.Success {
			fmt.Fprintf(os.Stderr, "chesslang: illegal move %q: %s\n", mv, res.Error)
			os.Exit(1)
		}
	}

	if *printState {
		if err := output.WriteState(os.Stdout, eng.GetState()); err != nil {
			fmt.Fprintf(os.Stderr, "chesslang: %v\n", err)
			os.Exit(1)
		}
	}

	if result := eng.GetResult(); result != nil {
		if result.IsDraw {
			fmt.Printf("result: draw (%s)\n", result.Reason)
		} else if result.HasWin {
			fmt.Printf("result: %v wins (%s)\n", result.Winner, result.Reason)
		}
	}
}

// loadGames parses every file into a name-keyed registry so CompileProgram
// can resolve `extends` across files, preserving the order files were given
// so the last file is the default compile target.
func loadGames(files []string) (map[string]*ast.GameNode, []string, error) {
	games := map[string]*ast.GameNode{}
	var order []string
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("chesslang: reading %s: %w", path, err)
		}
		g, err := parser.Parse(string(src))
		if err != nil {
			return nil, nil, err
		}
		games[g.Name] = g
		order = append(order, g.Name)
	}
	return games, order, nil
}

func printDiagnostic(err error) {
	fmt.Fprintf(os.Stderr, "chesslang: %v\n", err)
}

// runLint batch-compiles every given file concurrently (spec.md §5: lexer/
// parser/compiler are pure, so independent sources compile safely in
// parallel) and reports the first error per file, if any.
func runLint(files []string) {
	sources := map[string]string{}
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		sources[path] = string(src)
	}
	results := worker.CompileAll(sources, *lintWorkers, func(src string) (any, error) {
		g, err := parser.Parse(src)
		if err != nil {
			return nil, err
		}
		return compiler.Compile(g)
	})
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("%s: %v\n", r.Name, r.Err)
		} else {
			fmt.Printf("%s: ok\n", r.Name)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
