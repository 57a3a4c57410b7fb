package grammar

import "github.com/dekarrin/grampiler/internal/collect"

// LLConflict is an LL(1) ambiguity: two or more productions of NonTerminal
// predict an overlapping set of terminals.
type LLConflict struct {
	NonTerminal string
	Terminals   []string
}

// ComputePredict computes PREDICT(N -> α) for every production of every
// non-terminal (spec §4.4), unions them into each non-terminal's PredictSet,
// and returns every LL(1) ambiguity found by DetectLLConflicts. FIRST and
// FOLLOW must already be computed.
func ComputePredict(g *Grammar) []LLConflict {
	for _, name := range g.order {
		nt := g.nts[name]
		for _, p := range nt.Productions {
			stripTrailingEOF(p)
		}
	}

	for _, name := range g.order {
		nt := g.nts[name]
		nt.PredictSet = collect.NewStringSet()
		for _, p := range nt.Productions {
			first, nullable := FirstOfSequence(g, p.Symbols)
			p.PredictSet = first
			if nullable {
				p.PredictSet.AddAll(nt.FollowSet)
			}
			nt.PredictSet.AddAll(p.PredictSet)
		}
	}

	return DetectLLConflicts(g)
}

// stripTrailingEOF removes a literal EOF token from the end of a
// production's right-hand side, per spec §4.4's post-processing step: it is
// implicit in the start rule's FOLLOW set and would otherwise be double
// counted.
func stripTrailingEOF(p *Production) {
	n := len(p.Symbols)
	if n == 0 {
		return
	}
	last := p.Symbols[n-1]
	if last.Kind == KindTerm && last.Value == EOF {
		p.Symbols = p.Symbols[:n-1]
	}
}

// DetectLLConflicts walks each non-terminal's productions in definition
// order, maintaining a running union of PREDICT sets seen so far, and
// reports an ambiguity whenever the next production's PREDICT set
// intersects that union (spec §4.4). PREDICT sets must already be computed.
func DetectLLConflicts(g *Grammar) []LLConflict {
	var conflicts []LLConflict
	for _, name := range g.order {
		nt := g.nts[name]
		seen := collect.NewStringSet()
		for _, p := range nt.Productions {
			overlap := seen.Intersection(p.PredictSet)
			if !overlap.Empty() {
				conflicts = append(conflicts, LLConflict{
					NonTerminal: name,
					Terminals:   collect.Alphabetized(overlap),
				})
			}
			seen.AddAll(p.PredictSet)
		}
	}
	return conflicts
}

// IsLL1 reports whether the grammar has no LL(1) ambiguities. PREDICT sets
// must already be computed (i.e. Analyze or ComputePredict must have run).
func (g *Grammar) IsLL1() bool {
	return len(DetectLLConflicts(g)) == 0
}
