// Package engine implements the state machine and turn loop of §4.6–§4.8:
// construction/setup, legal move generation, the make-move procedure,
// undo, trigger dispatch, action execution, and custom victory/draw
// evaluation. Grounded on the teacher's internal/chess Game type, which
// owns one board, one move history, and one turn-flow loop per instance.
package engine

// ScriptRuntime is the seam described in spec §9 ("Script runtime seam"):
// the script subsystem itself is out of scope, but the engine must call
// through this interface so a real implementation could intercept
// isInCheck/isCheckmate queries, declare a winner, or take over whose-turn-
// is-it bookkeeping. NoopScriptRuntime lets the engine run standard chess
// (and any game with no script: blocks) unmodified.
type ScriptRuntime interface {
	RegisterCallbacks(isInCheck, isCheckmate func(color int) bool)
	ExecuteScripts(code []string)
	EmitEvent(kind string, payload map[string]any)
	GetWinner() (color int, ok bool)
	ControlsTurnFlow() bool
	IsTurnEnded() bool
	ResetTurnEnded()
	Reset()
}

// NoopScriptRuntime implements ScriptRuntime with no behavior: it never
// claims to control turn flow, never declares a winner, and ignores events.
type NoopScriptRuntime struct{}

func (NoopScriptRuntime) RegisterCallbacks(func(int) bool, func(int) bool) {}
func (NoopScriptRuntime) ExecuteScripts([]string)                          {}
func (NoopScriptRuntime) EmitEvent(string, map[string]any)                {}
func (NoopScriptRuntime) GetWinner() (int, bool)                          { return 0, false }
func (NoopScriptRuntime) ControlsTurnFlow() bool                          { return false }
func (NoopScriptRuntime) IsTurnEnded() bool                               { return false }
func (NoopScriptRuntime) ResetTurnEnded()                                 {}
func (NoopScriptRuntime) Reset()                                          {}
