// Package errors provides the ChessLang error taxonomy: sentinel errors plus
// located error types for each toolchain stage (lexer, parser, compiler) and
// for engine runtime failures. All located errors carry a Location so hosts
// can surface diagnostics at the offending source position.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions. Use with errors.Is().
var (
	// ErrIllegalMove indicates a move outside the legal set for the side to move.
	ErrIllegalMove = errors.New("illegal move")

	// ErrUnknownPattern indicates a pattern reference that resolves to nothing.
	ErrUnknownPattern = errors.New("unknown pattern reference")

	// ErrNoSuchTrigger indicates an unresolved optional-trigger id.
	ErrNoSuchTrigger = errors.New("no such pending trigger")

	// ErrNoRoyalPiece indicates check detection is enabled but a side has no royal piece.
	ErrNoRoyalPiece = errors.New("no royal piece for side")
)

// Location identifies a span of source text.
type Location struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based byte offset
	Length int // byte length of the offending span
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Kind distinguishes the toolchain stage that produced an error.
type Kind int

const (
	KindLexer Kind = iota
	KindParser
	KindCompiler
	KindRuntime
)

func (k Kind) String() string {
	switch k {
	case KindLexer:
		return "LexerError"
	case KindParser:
		return "ParserError"
	case KindCompiler:
		return "CompilerError"
	case KindRuntime:
		return "RuntimeError"
	default:
		return "Error"
	}
}

// LocatedError is the common shape for all toolchain-stage errors: a kind, a
// human-readable message, a source Location, and an optional wrapped cause.
type LocatedError struct {
	Kind Kind
	Msg  string
	Loc  Location
	Err  error
}

func (e *LocatedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at %s: %s: %v", e.Kind, e.Loc, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Loc, e.Msg)
}

func (e *LocatedError) Unwrap() error { return e.Err }

// NewLexerError builds a LexerError at loc.
func NewLexerError(loc Location, format string, args ...any) *LocatedError {
	return &LocatedError{Kind: KindLexer, Msg: fmt.Sprintf(format, args...), Loc: loc}
}

// NewParserError builds a ParserError at loc.
func NewParserError(loc Location, format string, args ...any) *LocatedError {
	return &LocatedError{Kind: KindParser, Msg: fmt.Sprintf(format, args...), Loc: loc}
}

// NewCompilerError builds a CompilerError at loc.
func NewCompilerError(loc Location, format string, args ...any) *LocatedError {
	return &LocatedError{Kind: KindCompiler, Msg: fmt.Sprintf(format, args...), Loc: loc}
}

// NewRuntimeError builds a RuntimeError, wrapping cause if non-nil. Runtime
// errors are used only for programmer mistakes (e.g. malformed Move structs);
// normal illegal-move rejection goes through the engine's structured result.
func NewRuntimeError(cause error, format string, args ...any) *LocatedError {
	return &LocatedError{Kind: KindRuntime, Msg: fmt.Sprintf(format, args...), Err: cause}
}
