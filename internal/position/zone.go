package position

import "github.com/emirpasic/gods/sets/hashset"

// ZoneSet is a named set of board positions (§3 "Board ... carries a zones
// mapping"). Backed by gods/hashset rather than a bare map so membership
// tests, unions, and equality checks read the way the rest of the pack's
// collection-heavy code does (see other_examples' gods usage).
type ZoneSet struct {
	set *hashset.Set
}

// NewZoneSet builds a ZoneSet from the given positions.
func NewZoneSet(positions ...Position) *ZoneSet {
	z := &ZoneSet{set: hashset.New()}
	for _, p := range positions {
		z.set.Add(p)
	}
	return z
}

// Contains reports whether p is a member of the zone.
func (z *ZoneSet) Contains(p Position) bool {
	if z == nil || z.set == nil {
		return false
	}
	return z.set.Contains(p)
}

// Positions returns the zone's members in unspecified order.
func (z *ZoneSet) Positions() []Position {
	if z == nil || z.set == nil {
		return nil
	}
	vals := z.set.Values()
	out := make([]Position, 0, len(vals))
	for _, v := range vals {
		out = append(out, v.(Position))
	}
	return out
}

// Zones is a compiled board's name → ZoneSet table.
type Zones map[string]*ZoneSet
