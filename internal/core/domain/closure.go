package domain

// Closure is an ordered dependency set holding exactly one coordinate per identity.
// It is immutable; every operation returns a new value.
type Closure struct {
	entries []Coordinate
}

// NewClosure builds a closure from entries. When two entries share an identity the first one wins.
func NewClosure(entries ...Coordinate) Closure {
	seen := make(map[Identity]struct{}, len(entries))
	out := make([]Coordinate, 0, len(entries))
	for _, c := range entries {
		if _, dup := seen[c.Identity()]; dup {
			continue
		}
		seen[c.Identity()] = struct{}{}
		out = append(out, c)
	}
	return Closure{entries: out}
}

// Override returns a closure in which root replaces the entry sharing its identity.
// The replaced entry keeps its position. If no entry matches, root is prepended.
func (c Closure) Override(root Coordinate) Closure {
	out := make([]Coordinate, 0, len(c.entries)+1)
	replaced := false
	for _, e := range c.entries {
		if e.Identity() == root.Identity() {
			out = append(out, root)
			replaced = true
			continue
		}
		out = append(out, e)
	}
	if !replaced {
		out = append([]Coordinate{root}, out...)
	}
	return Closure{entries: out}
}

// Entries returns a copy of the entries in order.
func (c Closure) Entries() []Coordinate {
	out := make([]Coordinate, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c Closure) Len() int {
	return len(c.entries)
}

// Find returns the entry with the given identity.
func (c Closure) Find(id Identity) (Coordinate, bool) {
	for _, e := range c.entries {
		if e.Identity() == id {
			return e, true
		}
	}
	return Coordinate{}, false
}

// Archives returns the entries packaged as zip archives.
func (c Closure) Archives() []Coordinate {
	var out []Coordinate
	for _, e := range c.entries {
		if e.Extension == ExtensionZip {
			out = append(out, e)
		}
	}
	return out
}

// Session holds the root coordinate and the closure resolved for it.
// A shell session resolves once and hands the same Session to every line.
type Session struct {
	Root    Coordinate
	Closure Closure
}

// Artifact returns the closure entry sharing the root's identity, or the root itself.
func (s *Session) Artifact() Coordinate {
	if c, ok := s.Closure.Find(s.Root.Identity()); ok {
		return c
	}
	return s.Root
}
