package automaton

import (
	"github.com/dekarrin/grampiler/internal/collect"
	"github.com/dekarrin/grampiler/internal/grammar"
)

// Build constructs the canonical item-set automaton for g and materializes
// its action/goto table (spec §4.5). isK0 selects LR(0) (true) or LR(1)
// (false) lookahead computation; every other part of the algorithm — item
// representation, closure, goto, state discovery order — is shared, per the
// §9 design note requiring the two historical recursive-descent and
// BFS-queue strategies to be unified into one algorithm switched only on
// the lookahead flag.
//
// The discovery loop is grounded on ictiobus/automaton.go's
// NewLR1ViablePrefixDFA: a worklist of already-discovered item sets, each
// identified by its canonical string (there, util.SVSet.StringOrdered();
// here, stateKey), consulted before adding what might otherwise be a
// duplicate state. It differs from that function in two ways the spec
// requires: state identity is assigned a stable integer in strict discovery
// order via an explicit FIFO queue (NewLR1ViablePrefixDFA instead ranges
// over a Go map each pass and renumbers afterward — map iteration order is
// unspecified, so that approach cannot itself guarantee spec §4.5 invariant
// 2, "state indices follow the order in which closures are first
// discovered"), and reduce/shift conflicts are recorded rather than treated
// as a fatal construction error, so DetectConflicts can report every
// clashing action instead of aborting at the first one (spec §4.6 vs.
// constructCanonicalLR1ParseTable's "grammar is not LR(1)" error return).
func Build(g *grammar.Grammar, isK0 bool) *StateTable {
	root := rootItem(g, isK0)
	initial := closure(g, []Item{root}, isK0)

	var states []*State
	states = append(states, newState(initial))
	byKey := map[string]int{stateKey(initial): 0}

	queue := collect.Queue[int]{}
	queue.Push(0)

	for !queue.Empty() {
		idx := queue.Pop()
		items := states[idx].Items

		for _, x := range outgoingSymbols(items) {
			next := gotoSet(g, items, x, isK0)
			if len(next) == 0 {
				continue
			}

			key := stateKey(next)
			target, ok := byKey[key]
			if !ok {
				states = append(states, newState(next))
				target = len(states) - 1
				byKey[key] = target
				queue.Push(target)
			}

			if x.Kind == grammar.KindID {
				states[idx].Goto[x.Value] = target
			} else {
				states[idx].addAction(x.Value, Shift(target))
			}
		}
	}

	for _, s := range states {
		materialize(s, isK0)
	}

	return &StateTable{
		States:       states,
		Terminals:    referencedTerminals(g, states),
		NonTerminals: g.SortedNonTerminalNames(),
		IsK0:         isK0,
	}
}

// rootItem synthesizes the augmented root item S' -> . S with lookahead
// {EOF} (LR(1)) or the empty set (LR(0)), where S is g's declared start
// non-terminal.
func rootItem(g *grammar.Grammar, isK0 bool) Item {
	la := collect.NewStringSet()
	if !isK0 {
		la.Add(grammar.EOF)
	}
	return Item{
		NTName:    rootNT,
		Matched:   nil,
		WillMatch: []grammar.TokenRef{grammar.NonTerm(g.StartSymbol())},
		Lookahead: la,
	}
}

// materialize fills in a state's actions from its kernel-reduced items
// (spec §4.5's "table materialization" step). Transitions (shifts and
// gotos) are already recorded by Build before materialize runs, so a plain
// append here would put reduces after any shift already present at the same
// terminal. To keep the "reduces added during item scanning, then shifts
// added during transition scanning" ordering rule, LR(1) reduce and accept
// actions are inserted at the front of each terminal's list instead.
func materialize(s *State, isK0 bool) {
	for _, it := range s.Items {
		if !it.AtEnd() {
			continue
		}

		if it.NTName == rootNT {
			if isK0 {
				s.CommonActions = append(s.CommonActions, Accept())
			} else {
				s.prependAction(grammar.EOF, Accept())
			}
			continue
		}

		reduce := Reduce(it.Matched, it.NTName)
		if isK0 {
			s.CommonActions = append(s.CommonActions, reduce)
			continue
		}
		for _, t := range collect.Alphabetized(it.Lookahead) {
			s.prependAction(t, reduce)
		}
	}
}

// prependAction inserts act at the front of actions[terminal], so that
// reduce actions recorded by materialize precede any shift Build already
// recorded for the same terminal.
func (s *State) prependAction(terminal string, act Action) {
	existing := s.Actions[terminal]
	merged := make([]Action, 0, len(existing)+1)
	merged = append(merged, act)
	merged = append(merged, existing...)
	s.Actions[terminal] = merged
}

// referencedTerminals returns, in collation order, every terminal value
// referenced anywhere in the table: the grammar's own terminal set plus the
// implicit EOF the augmented root always reacts to.
func referencedTerminals(g *grammar.Grammar, states []*State) []string {
	set := collect.NewStringSet(g.Terminals())
	set.Add(grammar.EOF)
	for _, s := range states {
		for t := range s.Actions {
			set.Add(t)
		}
	}
	return collect.Alphabetized(set)
}
