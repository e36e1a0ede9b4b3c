package mention

import (
	"maps"
	"slices"
)

// Set is a set of canonical usernames.
// The zero value (nil) is an empty, read-only set; use [NewSet] or make
// before calling Add.
type Set map[string]struct{}

// NewSet returns a set holding the canonical form of each name.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts the canonical form of name.
func (s Set) Add(name string) { s[Canonical(name)] = struct{}{} }

// Has reports whether name is in the set, ignoring case.
func (s Set) Has(name string) bool {
	_, ok := s[Canonical(name)]
	return ok
}

// Len returns the number of usernames in the set.
func (s Set) Len() int { return len(s) }

// Sorted returns the members in ascending order.
// It never returns nil.
func (s Set) Sorted() []string {
	out := slices.Sorted(maps.Keys(s))
	if out == nil {
		return []string{}
	}
	return out
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	maps.Copy(out, s)
	return out
}

// Union returns a new set with the members of s and other.
// Neither operand is modified.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	maps.Copy(out, s)
	maps.Copy(out, other)
	return out
}

// Without returns a new set with name removed, ignoring case.
func (s Set) Without(name string) Set {
	out := s.Clone()
	delete(out, Canonical(name))
	return out
}
