package automaton

import (
	"testing"

	"github.com/dekarrin/grampiler/internal/grammar"
	"github.com/stretchr/testify/assert"
)

// buildMinimalGrammar builds spec.md's minimal LR(1) scenario: S -> "a" S |
// "a". Without lookahead, a state after shifting "a" would have both a
// shift (for a following "a") and a reduce (S -> "a") pending; LR(1)
// lookahead resolves it.
func buildMinimalGrammar() *grammar.Grammar {
	g := grammar.New()
	g.AddNonTerminal("S", true)
	g.AddProduction("S", grammar.Term("a"), grammar.NonTerm("S"))
	g.AddProduction("S", grammar.Term("a"))
	g.Analyze()
	return g
}

func Test_Build_LR1_Minimal_Accepts(t *testing.T) {
	assert := assert.New(t)
	g := buildMinimalGrammar()

	table := Build(g, false)

	assert.NotEmpty(table.States)
	assert.Equal(0, initialStateIndex(table))

	// State 0 must have a shift on "a" and no reduce yet (both alternatives
	// start with "a").
	s0 := table.States[0]
	shifts := s0.Actions["a"]
	if assert.NotEmpty(shifts) {
		assert.Equal(ActionShift, shifts[0].Kind)
	}

	conflicts := DetectConflicts(table)
	assert.Empty(conflicts, "lookahead must disambiguate S -> a S | a")
}

func Test_Build_LR1_Minimal_AcceptState(t *testing.T) {
	assert := assert.New(t)
	g := buildMinimalGrammar()
	table := Build(g, false)

	// Follow the single "a" shift chain down to a state with an Accept
	// action under EOF somewhere in the automaton.
	foundAccept := false
	for _, s := range table.States {
		for _, a := range s.Actions[grammar.EOF] {
			if a.Kind == ActionAccept {
				foundAccept = true
			}
		}
	}
	assert.True(foundAccept, "automaton must contain an accept action under EOF")
}

func Test_Build_LR0_CommonActions_Reduce(t *testing.T) {
	assert := assert.New(t)
	g := grammar.New()
	g.AddNonTerminal("S", true)
	g.AddProduction("S", grammar.Term("a"))
	g.Analyze()

	table := Build(g, true)

	// After shifting "a", LR(0) mode records the reduce as a common action
	// (applies under any lookahead), not keyed to a specific terminal.
	foundReduce := false
	for _, s := range table.States {
		for _, a := range s.CommonActions {
			if a.Kind == ActionReduce {
				foundReduce = true
			}
		}
	}
	assert.True(foundReduce)
}

func Test_Build_DanglingElse_ShiftReduceConflict(t *testing.T) {
	assert := assert.New(t)
	g := grammar.New()
	g.AddNonTerminal("S", true)
	g.AddProduction("S", grammar.Term("if"), grammar.NonTerm("S"), grammar.Term("else"), grammar.NonTerm("S"))
	g.AddProduction("S", grammar.Term("if"), grammar.NonTerm("S"))
	g.AddProduction("S", grammar.Term("other"))
	g.Analyze()

	table := Build(g, false)
	conflicts := DetectConflicts(table)

	found := false
	for _, c := range conflicts {
		if c.Kind == ConflictShiftReduce && c.Lookahead == "else" {
			found = true
		}
	}
	assert.True(found, "dangling-else grammar must surface a shift/reduce conflict on 'else'")
}

func Test_Item_Equal(t *testing.T) {
	assert := assert.New(t)
	a := Item{
		NTName:    "S",
		Matched:   []grammar.TokenRef{grammar.Term("a")},
		WillMatch: []grammar.TokenRef{grammar.NonTerm("S")},
	}
	b := a
	assert.True(a.Equal(b))

	b.Matched = []grammar.TokenRef{grammar.Term("b")}
	assert.False(a.Equal(b))
}

func Test_Item_Advance(t *testing.T) {
	assert := assert.New(t)
	it := Item{
		NTName:    "S",
		WillMatch: []grammar.TokenRef{grammar.Term("a"), grammar.NonTerm("S")},
	}
	next := it.Advance()
	assert.Equal([]grammar.TokenRef{grammar.Term("a")}, next.Matched)
	assert.Equal([]grammar.TokenRef{grammar.NonTerm("S")}, next.WillMatch)

	// Original item must be unmutated (Advance returns a new Item).
	assert.Empty(it.Matched)
}

func initialStateIndex(t *StateTable) int {
	for i := range t.States {
		return i
	}
	return -1
}
