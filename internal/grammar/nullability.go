package grammar

// ComputeNullable runs the fixed-point nullability analysis of spec §4.1
// over every production in g, setting IsNullable on each non-terminal.
//
// Each production is conceptually three-valued — Yes, No, or Maybe — but
// since a production only ever needs to be checked again while it might
// still become Yes, this tracks the same fixed point with two pieces of
// state per production: whether it's known to derive ε (the Yes case) and
// whether it's known to never derive ε regardless of any non-terminal's
// fate (the No case, decided once and cached so later passes skip it). A
// production neither Yes nor No is Maybe, and is left as No — "not
// nullable" — if the fixed point is reached without it ever becoming Yes.
func ComputeNullable(g *Grammar) {
	type prodState struct {
		prod      *Production
		ntName    string
		knownNo   bool
		decidedAt bool // already contributed Yes to its non-terminal
	}

	var states []*prodState
	for _, name := range g.order {
		nt := g.nts[name]
		nt.IsNullable = false
		for _, p := range nt.Productions {
			ps := &prodState{prod: p, ntName: name}
			if p.IsEpsilon() {
				// Yes immediately; fall through to mark below.
			} else {
				for _, sym := range p.Symbols {
					if sym.Kind == KindTerm {
						ps.knownNo = true
						break
					}
				}
			}
			states = append(states, ps)
		}
	}

	changed := true
	for changed {
		changed = false
		for _, ps := range states {
			if ps.decidedAt || ps.knownNo {
				continue
			}

			isYes := ps.prod.IsEpsilon()
			if !isYes {
				isYes = true
				for _, sym := range ps.prod.Symbols {
					if sym.Kind != KindID || !g.nts[sym.Value].IsNullable {
						isYes = false
						break
					}
				}
			}

			if isYes {
				ps.decidedAt = true
				nt := g.nts[ps.ntName]
				if !nt.IsNullable {
					nt.IsNullable = true
					changed = true
				}
			}
		}
	}
}
