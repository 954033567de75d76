package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, strings.Split(v, ",")...)
	return nil
}

var (
	help        = flag.Bool("help", false, "show usage and exit")
	version     = flag.Bool("version", false, "show version and exit")
	gameName    = flag.String("game", "", "name of the game to compile (default: the last file's game)")
	printState  = flag.Bool("state", false, "print the resulting GameState as JSON")
	lintMode    = flag.Bool("lint", false, "compile every given file independently and report errors, ignoring -move/-state")
	lintWorkers = flag.Int("workers", 4, "worker goroutines used by -lint")
	moves       stringList
)

func init() {
	flag.Var(&moves, "move", "a move to replay, e.g. e2e4 or e7e8q for promotion; repeatable or comma-separated")
}

func usage() {
	fmt.Fprintf(os.Stderr, `chesslang - compile and run ChessLang game definitions

Usage:
  chesslang [flags] file.chess [file.chess ...]

Flags:
`)
	flag.PrintDefaults()
}
