package collect

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collator is shared across calls; collate.Collator is safe for concurrent
// use once constructed, and grammar/automaton names are short so the cost of
// building one per call would dwarf the comparisons themselves.
var collator = collate.New(language.Und)

// Alphabetized returns the contents of a StringSet in collation order rather
// than plain byte-wise order. This is what the grammar and automaton
// packages use to satisfy the "iteration in lexicographic order" guarantee
// for output that a user reads (FIRST/FOLLOW/PREDICT listings, state table
// headers): it treats symbol names the way a person alphabetizing a word
// list would, which plain sort.Strings does not guarantee once identifiers
// mix cases or digits.
func Alphabetized(s StringSet) []string {
	out := s.Elements()
	sort.Slice(out, func(i, j int) bool {
		return collator.CompareString(out[i], out[j]) < 0
	})
	return out
}

// AlphabetizedSlice is Alphabetized for a plain slice of names, used when the
// caller already has a deduplicated list (e.g. the grammar's declared
// non-terminal names) and doesn't need StringSet's set semantics.
func AlphabetizedSlice(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Slice(out, func(i, j int) bool {
		return collator.CompareString(out[i], out[j]) < 0
	})
	return out
}
