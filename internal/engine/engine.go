package engine

import (
	"github.com/chesslang/chesslang/internal/ir"
	"github.com/chesslang/chesslang/internal/movegen"
	"github.com/chesslang/chesslang/internal/position"
	"github.com/chesslang/chesslang/internal/state"
)

// Observer is a host callback registered via On; payload shape depends on
// kind (§6.1 "on/off/emit").
type Observer func(kind string, payload map[string]any)

// Engine is one running game instance (§4.6). Exactly one *state.GameState
// is live at a time; UndoMove restores a prior snapshot rather than
// replaying history backward.
type Engine struct {
	game      *ir.CompiledGame
	gs        *state.GameState
	script    ScriptRuntime
	snapshots []*snapshot
	observers map[string][]Observer
	nextObsID int
}

type snapshot struct {
	board           *state.Board
	currentPlayer   position.Owner
	moveHistory     []state.Move
	halfMoveClock   int
	fullMoveNumber  int
	positionHistory []string
	customState     map[string]any
	checkCount      map[position.Owner]int
	result          *state.GameResult
}

// MoveResult is what MakeMove reports (§6.1 "make move").
type MoveResult struct {
	Success  bool
	Captured *state.Piece
	Events   []string
	Error    string
}

// New constructs an Engine from a compiled game, running setup (§4.6
// "State at construction"). script may be nil, in which case
// NoopScriptRuntime is used.
func New(game *ir.CompiledGame, script ScriptRuntime) *Engine {
	if script == nil {
		script = NoopScriptRuntime{}
	}
	e := &Engine{game: game, script: script, observers: map[string][]Observer{}}
	e.setup()
	script.RegisterCallbacks(
		func(color int) bool { return movegen.IsInCheck(e.gs.Board, position.Owner(color)) },
		func(color int) bool { return e.isCheckmate(position.Owner(color)) },
	)
	script.ExecuteScripts(game.Scripts)
	return e
}

func (e *Engine) setup() {
	board := state.NewBoard(e.game.Board.Width, e.game.Board.Height, e.game.Board.Zones)
	gs := state.NewGameState(board)

	if len(e.game.Setup.Placements) == 0 || e.game.Setup.Additive {
		declared := map[position.Position]bool{}
		for _, p := range e.game.Setup.Placements {
			declared[p.Pos] = true
		}
		_ = state.DecodeStandardFEN(board, state.StandardStartFEN, func(t string) (map[string]bool, map[string]any) {
			return e.traitsAndStateFor(t)
		})
		if e.game.Setup.Additive {
			for pos := range declared {
				board.RemoveAt(pos)
			}
		}
	}
	for _, p := range e.game.Setup.Placements {
		traits, initState := e.traitsAndStateFor(p.PieceType)
		board.Place(p.PieceType, p.Owner, p.Pos, traits, initState)
	}
	if len(e.game.Setup.Replace) > 0 {
		for _, p := range board.AllPieces() {
			if newType, ok := e.game.Setup.Replace[p.Type]; ok {
				traits, initState := e.traitsAndStateFor(newType)
				p.Type = newType
				p.Traits = traits
				p.State = initState
			}
		}
	}
	e.gs = gs
}

func (e *Engine) traitsAndStateFor(pieceType string) (map[string]bool, map[string]any) {
	def, ok := e.game.Pieces[pieceType]
	traits := map[string]bool{}
	initState := map[string]any{}
	if ok {
		for k, v := range def.Traits {
			traits[k] = v
		}
		for k, v := range def.InitialState {
			initState[k] = v
		}
	}
	if pieceType == "King" {
		traits[ir.TraitRoyal] = true
	}
	return traits, initState
}

// GetState returns a shallow clone of the live GameState (§5 "snapshot
// contract").
func (e *Engine) GetState() *state.GameState { return e.gs.ShallowClone() }

// GetLegalMoves returns every legal move for the side to move.
func (e *Engine) GetLegalMoves() []state.Move {
	return movegen.LegalMoves(e.game, e.gs, e.gs.CurrentPlayer)
}

// GetLegalMovesForPiece filters GetLegalMoves to those originating at p.
func (e *Engine) GetLegalMovesForPiece(p *state.Piece) []state.Move {
	var out []state.Move
	for _, mv := range e.GetLegalMoves() {
		if mv.PieceID == p.ID {
			out = append(out, mv)
		}
	}
	return out
}

// IsGameOver reports whether a result has been set.
func (e *Engine) IsGameOver() bool { return e.gs.Result != nil }

// GetResult returns the current result, or nil if the game is still live.
func (e *Engine) GetResult() *state.GameResult { return e.gs.Result }

// Reset rebuilds the initial state (§6.1 "reset").
func (e *Engine) Reset() {
	e.setup()
	e.snapshots = nil
	e.script.Reset()
}

// On registers an observer for kind (empty string subscribes to everything).
func (e *Engine) On(kind string, obs Observer) int {
	e.nextObsID++
	e.observers[kind] = append(e.observers[kind], obs)
	return e.nextObsID
}

// Off removes every observer registered for kind.
func (e *Engine) Off(kind string) { delete(e.observers, kind) }

// Emit notifies observers of kind and of the wildcard "" subscription.
func (e *Engine) Emit(kind string, payload map[string]any) {
	for _, obs := range e.observers[kind] {
		obs(kind, payload)
	}
	if kind != "" {
		for _, obs := range e.observers[""] {
			obs(kind, payload)
		}
	}
}
