package state

import "github.com/chesslang/chesslang/internal/position"

// CastleSide distinguishes kingside/queenside castling.
type CastleSide int

const (
	NoCastle CastleSide = iota
	CastleKingside
	CastleQueenside
)

// Move is one executed or candidate move (§3 "Move").
type Move struct {
	PieceID         int
	From, To        position.Position
	CapturedID      int // 0 when nothing was captured
	Captured        bool
	Promotion       string
	Castle          CastleSide
	EnPassant       bool
	EnPassantCapPos position.Position
}

// GameResult records a finished game's outcome (§3 "GameResult").
type GameResult struct {
	Winner position.Owner
	IsDraw bool
	HasWin bool
	Reason string
}

// PendingOptionalTrigger is a queued trigger awaiting host resolution (§4.7).
type PendingOptionalTrigger struct {
	ID          int
	Description string
	TriggerName string
	Move        Move
}

// GameState is the full mutable state of one engine instance (§3
// "GameState"). Engine owns the only live *GameState; GetState returns a
// shallow top-level clone per spec §5 ("shallow-cloned top level but nested
// piece/board references are live").
type GameState struct {
	Board                  *Board
	CurrentPlayer          position.Owner
	MoveHistory            []Move
	HalfMoveClock          int
	FullMoveNumber         int
	PositionHistory        []string
	CustomState            map[string]any
	Result                 *GameResult
	CheckCount             map[position.Owner]int
	PendingOptionalTriggers []PendingOptionalTrigger
	nextTriggerID          int
}

// NewGameState builds the zero-value state around an allocated board.
func NewGameState(b *Board) *GameState {
	return &GameState{
		Board: b, CurrentPlayer: position.White, FullMoveNumber: 1,
		CustomState: map[string]any{},
		CheckCount:  map[position.Owner]int{position.White: 0, position.Black: 0},
	}
}

// ShallowClone copies the top-level GameState struct; Board and nested
// slices/maps remain shared, matching the spec's documented snapshot
// contract (callers that need isolation should Board.Clone() separately).
func (s *GameState) ShallowClone() *GameState {
	cp := *s
	return &cp
}

// EnqueueOptionalTrigger appends a pending trigger and returns its id.
func (s *GameState) EnqueueOptionalTrigger(name, description string, mv Move) int {
	s.nextTriggerID++
	s.PendingOptionalTriggers = append(s.PendingOptionalTriggers, PendingOptionalTrigger{
		ID: s.nextTriggerID, Description: description, TriggerName: name, Move: mv,
	})
	return s.nextTriggerID
}

// PopPendingTrigger removes and returns the pending trigger with the given
// id, or ok=false if none matches (§6.1 execute/skip optional trigger).
func (s *GameState) PopPendingTrigger(id int) (PendingOptionalTrigger, bool) {
	for i, t := range s.PendingOptionalTriggers {
		if t.ID == id {
			s.PendingOptionalTriggers = append(s.PendingOptionalTriggers[:i], s.PendingOptionalTriggers[i+1:]...)
			return t, true
		}
	}
	return PendingOptionalTrigger{}, false
}
