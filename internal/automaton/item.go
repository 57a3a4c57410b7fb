// Package automaton builds the canonical LR(1) / LR(0) item-set automaton
// from an already-analyzed grammar: CLOSURE, GOTO, state merging by item-set
// equality, and materialization of the action/goto table.
package automaton

import (
	"strings"

	"github.com/dekarrin/grampiler/internal/collect"
	"github.com/dekarrin/grampiler/internal/grammar"
)

// rootNT is the synthetic augmenting non-terminal's name. The empty string
// marks an item as belonging to the augmented root rather than any real
// non-terminal declared by the grammar.
const rootNT = ""

// Item is a contextual production: a production annotated with how much of
// its right-hand side has been matched so far, plus a lookahead set that is
// always empty in LR(0) mode. This is the same record ictiobus/grammar's
// LR1Item (an embedded LR0Item{NonTerminal, Left, Right} plus a single
// Lookahead string) represents, generalized to hold a full lookahead set per
// item rather than one item per lookahead symbol, since spec §4.5 merges an
// item's lookaheads into one set instead of the teacher's one-item-per-(core,
// symbol) expansion.
type Item struct {
	NTName    string
	Matched   []grammar.TokenRef
	WillMatch []grammar.TokenRef
	Lookahead collect.StringSet
}

// AtEnd reports whether the dot has reached the end of the production, i.e.
// this item is a candidate for reduction (or acceptance, for the root item).
func (it Item) AtEnd() bool {
	return len(it.WillMatch) == 0
}

// NextSymbol returns the symbol immediately right of the dot and true, or
// the zero TokenRef and false if the item is at its end.
func (it Item) NextSymbol() (grammar.TokenRef, bool) {
	if it.AtEnd() {
		return grammar.TokenRef{}, false
	}
	return it.WillMatch[0], true
}

// Advance returns the item produced by moving the dot one symbol to the
// right. Panics if already at end; callers only call Advance on items whose
// NextSymbol matches the symbol being transitioned on.
func (it Item) Advance() Item {
	if it.AtEnd() {
		panic("automaton: Advance called on an item with an empty will_match")
	}
	matched := make([]grammar.TokenRef, len(it.Matched)+1)
	copy(matched, it.Matched)
	matched[len(it.Matched)] = it.WillMatch[0]

	willMatch := make([]grammar.TokenRef, len(it.WillMatch)-1)
	copy(willMatch, it.WillMatch[1:])

	return Item{
		NTName:    it.NTName,
		Matched:   matched,
		WillMatch: willMatch,
		Lookahead: it.Lookahead,
	}
}

// Equal reports whether two items are componentwise equal, per spec: same
// owning non-terminal, same matched/will_match sequences, and same
// lookahead set.
func (it Item) Equal(other Item) bool {
	if it.NTName != other.NTName {
		return false
	}
	if !tokenRefsEqual(it.Matched, other.Matched) {
		return false
	}
	if !tokenRefsEqual(it.WillMatch, other.WillMatch) {
		return false
	}
	if it.Lookahead == nil || other.Lookahead == nil {
		return it.Lookahead.Len() == other.Lookahead.Len()
	}
	return it.Lookahead.Equal(other.Lookahead)
}

func tokenRefsEqual(a, b []grammar.TokenRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// key returns a string uniquely identifying the item's (nt_name, matched,
// will_match) core, ignoring lookahead — used to find items that share the
// same core during LR(1) closure lookahead-merging.
func (it Item) key() string {
	var b strings.Builder
	b.WriteString(it.NTName)
	b.WriteByte('\x00')
	for _, s := range it.Matched {
		b.WriteString(s.Value)
		b.WriteByte('\x01')
	}
	b.WriteByte('\x00')
	for _, s := range it.WillMatch {
		b.WriteString(s.Value)
		b.WriteByte('\x01')
	}
	return b.String()
}

// String renders the item the way a diagnostic or --print-table dump would:
// "NT -> matched . willMatch, lookahead".
func (it Item) String() string {
	name := it.NTName
	if name == rootNT {
		name = "S'"
	}
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(" -> ")
	for _, s := range it.Matched {
		b.WriteString(s.Value)
		b.WriteByte(' ')
	}
	b.WriteString(". ")
	for _, s := range it.WillMatch {
		b.WriteString(s.Value)
		b.WriteByte(' ')
	}
	if it.Lookahead.Len() > 0 {
		b.WriteString(", ")
		b.WriteString(it.Lookahead.String())
	}
	return strings.TrimSpace(b.String())
}
