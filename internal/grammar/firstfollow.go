package grammar

import "github.com/dekarrin/grampiler/internal/collect"

// FirstOfSequence computes FIRST(symbols) by the shared nullable-prefix
// rule used throughout spec §4: walk the sequence left to right, collecting
// FIRST of each symbol (or the symbol itself, if it's a terminal) and
// stopping as soon as a non-nullable symbol is reached. The returned bool
// reports whether the entire sequence is nullable (every symbol nullable, or
// the sequence is empty) — this is the "falling through to the parent
// item's lookahead when β is entirely nullable" rule §4.5 refers to, and is
// also how PREDICT and FOLLOW compute their own lookahead contributions.
//
// Nullability and FIRST sets must already be populated on g's non-terminals
// before calling this.
func FirstOfSequence(g *Grammar, symbols []TokenRef) (collect.StringSet, bool) {
	set := collect.NewStringSet()
	for _, sym := range symbols {
		if sym.Kind == KindTerm {
			set.Add(sym.Value)
			return set, false
		}
		nt := g.nts[sym.Value]
		set.AddAll(nt.FirstSet)
		if !nt.IsNullable {
			return set, false
		}
	}
	return set, true
}

// symbolEdge is one edge of the FIRST- or FOLLOW-reachability graph: either a terminal
// leaf (collected directly into FIRST) or a non-terminal to keep traversing.
type symbolEdge struct {
	terminal bool
	to       string
}

// ComputeFirst builds the FIRST-reachability graph of spec §4.2 and, for
// every non-terminal, performs a visited-tracked depth-first traversal
// collecting every terminal-kind node reachable from it. Nullability must
// already be computed.
func ComputeFirst(g *Grammar) {
	graph := map[string][]symbolEdge{}

	for _, name := range g.order {
		nt := g.nts[name]
		for _, p := range nt.Productions {
			for _, sym := range p.Symbols {
				if sym.Kind == KindTerm {
					graph[name] = append(graph[name], symbolEdge{terminal: true, to: sym.Value})
					break
				}
				// ID: extend the prefix through nullable non-terminals.
				graph[name] = append(graph[name], symbolEdge{terminal: false, to: sym.Value})
				if !g.nts[sym.Value].IsNullable {
					break
				}
			}
		}
	}

	for _, name := range g.order {
		nt := g.nts[name]
		nt.FirstSet = collect.NewStringSet()
		visited := map[string]bool{}
		collectReachableTerminals(graph, name, visited, nt.FirstSet)
	}
}

// ComputeFollow builds the FOLLOW-reachability graph of spec §4.3 — for each
// occurrence of a non-terminal A in a production of N, edges from A to every
// terminal in FIRST of what follows it, plus an edge from A to N when what
// follows is nullable — and performs the same
// kind of visited-tracked DFS to collect FOLLOW(N) for every non-terminal.
// FIRST and nullability must already be computed.
func ComputeFollow(g *Grammar) {
	graph := map[string][]symbolEdge{}

	for _, name := range g.order {
		nt := g.nts[name]
		for _, p := range nt.Productions {
			for j, sym := range p.Symbols {
				if sym.Kind != KindID {
					continue
				}
				A := sym.Value
				beta := p.Symbols[j+1:]
				firstBeta, betaNullable := FirstOfSequence(g, beta)
				for _, t := range firstBeta.Elements() {
					graph[A] = append(graph[A], symbolEdge{terminal: true, to: t})
				}
				if betaNullable {
					graph[A] = append(graph[A], symbolEdge{terminal: false, to: name})
				}
			}
		}
	}

	// The start non-terminal's FOLLOW set always contains EOF.
	start := g.StartSymbol()
	graph[start] = append(graph[start], symbolEdge{terminal: true, to: EOF})

	for _, name := range g.order {
		nt := g.nts[name]
		nt.FollowSet = collect.NewStringSet()
		visited := map[string]bool{}
		collectReachableTerminals(graph, name, visited, nt.FollowSet)
	}
}

// collectReachableTerminals performs the visited-tracked DFS shared by
// ComputeFirst and ComputeFollow (spec §4.3's "rationale for the two-graph
// design"): it differs only in which graph it's handed.
func collectReachableTerminals(graph map[string][]symbolEdge, node string, visited map[string]bool, into collect.StringSet) {
	if visited[node] {
		return
	}
	visited[node] = true
	for _, e := range graph[node] {
		if e.terminal {
			into.Add(e.to)
		} else {
			collectReachableTerminals(graph, e.to, visited, into)
		}
	}
}
