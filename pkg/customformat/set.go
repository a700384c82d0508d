package customformat

import "sort"

// Set is an unordered collection of custom format names without duplicates.
type Set map[string]struct{}

// NewSet creates a set holding names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts name into the set.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is in the set. Safe on a nil set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Union returns a new set holding every name in s and others.
// Neither s nor others are modified.
func (s Set) Union(others ...Set) Set {
	out := make(Set, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	for _, o := range others {
		for n := range o {
			out[n] = struct{}{}
		}
	}
	return out
}

// Names returns the names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
