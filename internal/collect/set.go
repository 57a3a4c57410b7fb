// Package collect holds the small set of generic collection helpers shared
// by the grammar and automaton packages: an ordered string set, a generic
// stack/queue pair for worklist algorithms, and the deterministic-ordering
// helpers the analyzers need to satisfy their "iterate in lexicographic
// order" guarantee.
package collect

import (
	"sort"
	"strings"
)

// StringSet is a set of strings backed by a map. It is used throughout the
// grammar and automaton packages to hold FIRST/FOLLOW/PREDICT sets, item
// lookaheads, and the terminal/non-terminal name sets referenced by a state
// table.
type StringSet map[string]struct{}

// NewStringSet builds a StringSet from zero or more seed slices.
func NewStringSet(of ...[]string) StringSet {
	s := StringSet{}
	for _, sl := range of {
		for _, v := range sl {
			s.Add(v)
		}
	}
	return s
}

// Add adds value to the set. No effect if it is already present.
func (s StringSet) Add(value string) {
	s[value] = struct{}{}
}

// AddAll adds every value in o to s.
func (s StringSet) AddAll(o StringSet) {
	for v := range o {
		s.Add(v)
	}
}

// Has reports whether value is in the set.
func (s StringSet) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// Remove removes value from the set. No effect if not present.
func (s StringSet) Remove(value string) {
	delete(s, value)
}

// Len returns the number of elements in the set.
func (s StringSet) Len() int {
	return len(s)
}

// Empty reports whether the set has no elements.
func (s StringSet) Empty() bool {
	return len(s) == 0
}

// Copy returns a shallow duplicate of the set.
func (s StringSet) Copy() StringSet {
	return NewStringSet(s.Elements())
}

// Union returns a new set containing every element of s and o.
func (s StringSet) Union(o StringSet) StringSet {
	u := s.Copy()
	u.AddAll(o)
	return u
}

// Intersection returns a new set containing only elements present in both s
// and o.
func (s StringSet) Intersection(o StringSet) StringSet {
	u := NewStringSet()
	for v := range s {
		if o.Has(v) {
			u.Add(v)
		}
	}
	return u
}

// Equal reports whether s and o contain exactly the same elements.
func (s StringSet) Equal(o StringSet) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if !o.Has(v) {
			return false
		}
	}
	return true
}

// Elements returns the set's contents as a slice in unspecified order.
func (s StringSet) Elements() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}

// Sorted returns the set's contents in ascending lexicographic order. This is
// the plain byte-wise ordering; use Alphabetized for collation-aware
// ordering of symbol names destined for user-facing output.
func (s StringSet) Sorted() []string {
	out := s.Elements()
	sort.Strings(out)
	return out
}

// String renders the set for debugging, e.g. "{a, b, c}", in sorted order so
// that output is reproducible across runs.
func (s StringSet) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	sorted := s.Sorted()
	for i, v := range sorted {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v)
	}
	sb.WriteRune('}')
	return sb.String()
}

// OrderedKeys returns the keys of m sorted in ascending byte-wise order. It
// is used wherever a map is iterated for output that must be deterministic
// across runs (state caches, item caches, term lookup tables).
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
