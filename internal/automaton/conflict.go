package automaton

// Conflict is a state/lookahead pair with more than one competing action
// (spec §4.5's "conflict reporting" step). Kind distinguishes a
// shift/reduce clash from a reduce/reduce clash for diagnostic phrasing;
// mixed shift+reduce+reduce at one cell is reported as ShiftReduce, since
// resolving the shift/reduce half is always the more pressing ambiguity.
type Conflict struct {
	State     int
	Lookahead string
	Actions   []Action
	Kind      ConflictKind
}

type ConflictKind int

const (
	ConflictShiftReduce ConflictKind = iota
	ConflictReduceReduce
)

func (k ConflictKind) String() string {
	if k == ConflictShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// DetectConflicts scans every state of t and reports every terminal whose
// combined actions[t] + common_actions has more than one entry (spec
// §4.5). States and terminals are visited in table order / collation order
// so results are reproducible across runs.
func DetectConflicts(t *StateTable) []Conflict {
	var conflicts []Conflict
	for idx, s := range t.States {
		for _, term := range t.Terminals {
			all := append(append([]Action{}, s.CommonActions...), s.Actions[term]...)
			all = dedupeActions(all)
			if len(all) <= 1 {
				continue
			}
			conflicts = append(conflicts, Conflict{
				State:     idx,
				Lookahead: term,
				Actions:   all,
				Kind:      classify(all),
			})
		}
	}
	return conflicts
}

func classify(actions []Action) ConflictKind {
	shifts := 0
	for _, a := range actions {
		if a.Kind == ActionShift {
			shifts++
		}
	}
	if shifts > 0 {
		return ConflictShiftReduce
	}
	return ConflictReduceReduce
}

func dedupeActions(actions []Action) []Action {
	var out []Action
	for _, a := range actions {
		dup := false
		for _, o := range out {
			if a.Equal(o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, a)
		}
	}
	return out
}
