package state

import "github.com/chesslang/chesslang/internal/position"

// Board is the square-indexed runtime grid plus the flat piece table it
// references by id (§4.4 "Board ops").
type Board struct {
	Width, Height int
	grid          map[position.Position]int // position -> piece id
	pieces        map[int]*Piece
	effects       map[position.Position][]*Effect
	Zones         position.Zones
	nextID        int
}

// NewBoard allocates an empty board of the given dimensions.
func NewBoard(width, height int, zones position.Zones) *Board {
	return &Board{
		Width: width, Height: height,
		grid: map[position.Position]int{}, pieces: map[int]*Piece{},
		effects: map[position.Position][]*Effect{}, Zones: zones,
	}
}

// Place inserts a new piece and returns it, assigning the next id (§9
// "global monotonic id counter" re-architected per-engine).
func (b *Board) Place(pieceType string, owner position.Owner, pos position.Position, traits map[string]bool, initState map[string]any) *Piece {
	b.nextID++
	traitsCopy := make(map[string]bool, len(traits))
	for k, v := range traits {
		traitsCopy[k] = v
	}
	stateCopy := make(map[string]any, len(initState))
	for k, v := range initState {
		stateCopy[k] = v
	}
	p := &Piece{ID: b.nextID, Type: pieceType, Owner: owner, Pos: pos, Traits: traitsCopy, State: stateCopy}
	b.pieces[p.ID] = p
	b.grid[pos] = p.ID
	return p
}

// PlaceExisting re-inserts a piece value at its own Pos, preserving its id —
// used by undo to restore a captured piece without minting a new identity.
func (b *Board) PlaceExisting(p *Piece) {
	b.pieces[p.ID] = p
	b.grid[p.Pos] = p.ID
	if p.ID >= b.nextID {
		b.nextID = p.ID
	}
}

// Move relocates the piece at from to to, returning any captured occupant
// (removed in the process). Does not itself enforce legality.
func (b *Board) Move(from, to position.Position) *Piece {
	id, ok := b.grid[from]
	if !ok {
		return nil
	}
	captured := b.RemoveAt(to)
	delete(b.grid, from)
	b.grid[to] = id
	b.pieces[id].Pos = to
	return captured
}

// RemoveAt removes and returns whatever piece occupies pos, or nil.
func (b *Board) RemoveAt(pos position.Position) *Piece {
	id, ok := b.grid[pos]
	if !ok {
		return nil
	}
	p := b.pieces[id]
	delete(b.grid, pos)
	delete(b.pieces, id)
	return p
}

// Remove deletes the given piece by id.
func (b *Board) Remove(p *Piece) {
	if p == nil {
		return
	}
	delete(b.grid, p.Pos)
	delete(b.pieces, p.ID)
}

// At returns the piece occupying pos, or nil.
func (b *Board) At(pos position.Position) *Piece {
	id, ok := b.grid[pos]
	if !ok {
		return nil
	}
	return b.pieces[id]
}

// ByID looks up a piece by its stable id.
func (b *Board) ByID(id int) *Piece { return b.pieces[id] }

// IsEmpty reports that no piece occupies pos.
func (b *Board) IsEmpty(pos position.Position) bool { return b.At(pos) == nil }

// HasFriend reports that pos holds a piece owned by owner.
func (b *Board) HasFriend(pos position.Position, owner position.Owner) bool {
	p := b.At(pos)
	return p != nil && p.Owner == owner
}

// HasEnemy reports that pos holds a piece not owned by owner.
func (b *Board) HasEnemy(pos position.Position, owner position.Owner) bool {
	p := b.At(pos)
	return p != nil && p.Owner != owner
}

// AllPieces returns every piece on the board in unspecified order.
func (b *Board) AllPieces() []*Piece {
	out := make([]*Piece, 0, len(b.pieces))
	for _, p := range b.pieces {
		out = append(out, p)
	}
	return out
}

// PiecesByOwner returns every piece belonging to owner.
func (b *Board) PiecesByOwner(owner position.Owner) []*Piece {
	var out []*Piece
	for _, p := range b.pieces {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out
}

// FindKing returns owner's royal piece, or nil if it has none (§4.4).
func (b *Board) FindKing(owner position.Owner) *Piece {
	for _, p := range b.pieces {
		if p.Owner == owner && p.HasTrait("royal") {
			return p
		}
	}
	return nil
}

// IsPathClear reports whether every square strictly between a and b is
// empty. Per spec §9, a non-linear pair is vacuously clear (position.Between
// returns ok=false, which this treats as "nothing to check").
func (b *Board) IsPathClear(a, bPos position.Position) bool {
	between, ok := position.Between(a, bPos)
	if !ok {
		return true
	}
	for _, sq := range between {
		if !b.IsEmpty(sq) {
			return false
		}
	}
	return true
}

// ZoneContains reports whether pos is a member of the named zone.
func (b *Board) ZoneContains(zone string, pos position.Position) bool {
	z, ok := b.Zones[zone]
	return ok && z.Contains(pos)
}

// Effects returns the effects currently attached to pos.
func (b *Board) Effects(pos position.Position) []*Effect { return b.effects[pos] }

// AddEffect appends an effect instance, assigning it the next id.
func (b *Board) AddEffect(e *Effect) {
	b.nextID++
	e.ID = b.nextID
	b.effects[e.Pos] = append(b.effects[e.Pos], e)
}

// AllEffects returns every active effect instance, in unspecified order.
func (b *Board) AllEffects() []*Effect {
	var out []*Effect
	for _, es := range b.effects {
		out = append(out, es...)
	}
	return out
}

// Clone returns a deep copy of the board: pieces, grid, and effects, sharing
// only the immutable Zones table (§4.4 "clone (deep copy of pieces and
// effects)").
func (b *Board) Clone() *Board {
	nb := &Board{
		Width: b.Width, Height: b.Height, nextID: b.nextID,
		grid: make(map[position.Position]int, len(b.grid)),
		pieces: make(map[int]*Piece, len(b.pieces)),
		effects: make(map[position.Position][]*Effect, len(b.effects)),
		Zones: b.Zones,
	}
	for k, v := range b.grid {
		nb.grid[k] = v
	}
	for k, v := range b.pieces {
		nb.pieces[k] = v.Clone()
	}
	for pos, es := range b.effects {
		cp := make([]*Effect, len(es))
		for i, e := range es {
			ce := *e
			cp[i] = &ce
		}
		nb.effects[pos] = cp
	}
	return nb
}
