package automaton

import (
	"sort"
	"strings"

	"github.com/dekarrin/grampiler/internal/collect"
	"github.com/dekarrin/grampiler/internal/grammar"
)

// closure computes CLOSURE(items) against g (spec §4.5): repeatedly, for
// every item A -> alpha . B beta with B a non-terminal, for every production
// B -> gamma, add an item B -> . gamma with a lookahead computed by
// isK0/lookaheadFor. When an expansion yields an item whose core is already
// present, its newly contributed lookahead is merged into that item instead
// (LR(1) only — lookahead merging is a no-op when isK0, since every
// lookahead is the empty set). Passes over the set repeat until no merge
// grows a lookahead, so merged lookaheads also reach the items derived from
// an item that was expanded before the merge.
//
// The returned slice is deduplicated and is the FULLY CLOSED item set: this
// is the representation automaton identity and comparison are always done
// against (the fix for the known "compare pre-closure transitions" bug
// named in spec §9).
func closure(g *grammar.Grammar, items []Item, isK0 bool) []Item {
	byKey := map[string]int{}
	var out []Item
	for _, it := range items {
		out, _ = appendOrMerge(out, byKey, it)
	}

	for changed := true; changed; {
		changed = false
		for i := 0; i < len(out); i++ {
			it := out[i]
			sym, ok := it.NextSymbol()
			if !ok || sym.Kind != grammar.KindID {
				continue
			}
			nt := g.NonTerminal(sym.Value)
			if nt == nil {
				continue
			}

			beta := it.WillMatch[1:]
			for _, p := range nt.Productions {
				var la collect.StringSet
				if isK0 {
					la = collect.NewStringSet()
				} else {
					la = lookaheadFor(g, beta, it.Lookahead)
				}
				newItem := Item{
					NTName:    nt.Name,
					Matched:   nil,
					WillMatch: p.Symbols,
					Lookahead: la,
				}
				var grew bool
				out, grew = appendOrMerge(out, byKey, newItem)
				changed = changed || grew
			}
		}
	}

	return out
}

// appendOrMerge adds it to items unless an item sharing its (nt_name,
// matched, will_match) core is already present, in which case it merges
// it's lookahead into the existing item instead. byKey tracks each core's
// index in items. The returned bool reports whether a merge grew an existing
// item's lookahead.
func appendOrMerge(items []Item, byKey map[string]int, it Item) ([]Item, bool) {
	k := it.key()
	if idx, ok := byKey[k]; ok {
		before := items[idx].Lookahead.Len()
		items[idx].Lookahead.AddAll(it.Lookahead)
		return items, items[idx].Lookahead.Len() > before
	}
	byKey[k] = len(items)
	return append(items, it), false
}

// lookaheadFor computes FIRST(beta . inherited) by the same nullable-prefix
// rule FirstOfSequence uses for PREDICT: FIRST(beta), falling through to
// the parent item's lookahead (inherited) when beta is entirely nullable.
func lookaheadFor(g *grammar.Grammar, beta []grammar.TokenRef, inherited collect.StringSet) collect.StringSet {
	first, nullable := grammar.FirstOfSequence(g, beta)
	if nullable {
		first.AddAll(inherited)
	}
	return first
}

// stateKey returns a canonical string for a fully-closed item set, suitable
// for use as a map key identifying a discovered state: the same role
// ictiobus/automaton.go's NewLR1ViablePrefixDFA gives
// util.SVSet[LR1Item].StringOrdered() in its own stateSets map (keyed by
// the item set's canonical string, checked with stateSets.Has before
// adding a new state). Items are sorted by their own String() before
// joining, so two equal item sets in any discovery order produce the same
// key.
func stateKey(items []Item) string {
	strs := make([]string, len(items))
	for i, it := range items {
		strs[i] = it.String()
	}
	sort.Strings(strs)
	return strings.Join(strs, "\x1e")
}

// gotoSet computes GOTO(items, X) = CLOSURE({ A -> alpha X . beta | (A ->
// alpha . X beta) in items }) (spec §4.5). Returns nil if no item in items
// has X immediately right of its dot.
func gotoSet(g *grammar.Grammar, items []Item, x grammar.TokenRef, isK0 bool) []Item {
	var advanced []Item
	for _, it := range items {
		sym, ok := it.NextSymbol()
		if !ok || sym != x {
			continue
		}
		advanced = append(advanced, it.Advance())
	}
	if len(advanced) == 0 {
		return nil
	}
	return closure(g, advanced, isK0)
}

// outgoingSymbols returns, in a stable order (first occurrence in items),
// every distinct symbol some item in items has immediately right of its dot.
func outgoingSymbols(items []Item) []grammar.TokenRef {
	seen := map[grammar.TokenRef]bool{}
	var out []grammar.TokenRef
	for _, it := range items {
		sym, ok := it.NextSymbol()
		if !ok || seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	return out
}
