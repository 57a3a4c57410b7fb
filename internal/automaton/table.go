package automaton

import (
	"fmt"

	"github.com/dekarrin/grampiler/internal/grammar"
)

// ActionKind tags an Action's variant, dispatched on rather than through
// polymorphism (spec §9: "deep case-analysis over Action... represent as a
// tagged variant... dispatch by tag").
type ActionKind int

const (
	ActionAccept ActionKind = iota
	ActionShift
	ActionReduce
)

func (k ActionKind) String() string {
	switch k {
	case ActionAccept:
		return "accept"
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	default:
		return "unknown"
	}
}

// Action is one of Accept, Shift(state index), or Reduce(rhs, lhs).
type Action struct {
	Kind  ActionKind
	State int                // valid for ActionShift
	RHS   []grammar.TokenRef // valid for ActionReduce
	LHS   string             // valid for ActionReduce
}

func Accept() Action { return Action{Kind: ActionAccept} }

func Shift(state int) Action { return Action{Kind: ActionShift, State: state} }

func Reduce(rhs []grammar.TokenRef, lhs string) Action {
	return Action{Kind: ActionReduce, RHS: rhs, LHS: lhs}
}

// String renders the action the way a diagnostic or --print-table dump
// would.
func (a Action) String() string {
	switch a.Kind {
	case ActionAccept:
		return "accept"
	case ActionShift:
		return fmt.Sprintf("shift %d", a.State)
	case ActionReduce:
		p := grammar.Production{Symbols: a.RHS}
		return fmt.Sprintf("reduce %s -> %s", a.LHS, p.String())
	default:
		return "?"
	}
}

// Equal reports whether two actions denote the same effect — used to
// deduplicate an identical action surfacing twice at the same table cell.
func (a Action) Equal(o Action) bool {
	if a.Kind != o.Kind {
		return false
	}
	switch a.Kind {
	case ActionShift:
		return a.State == o.State
	case ActionReduce:
		if a.LHS != o.LHS || len(a.RHS) != len(o.RHS) {
			return false
		}
		for i := range a.RHS {
			if a.RHS[i] != o.RHS[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// State is a materialized closure: per-terminal action lists, a goto map
// for non-terminal transitions, and (LR(0) only) a common_actions list that
// applies under any lookahead.
type State struct {
	Items         []Item
	Actions       map[string][]Action
	Goto          map[string]int
	CommonActions []Action
}

func newState(items []Item) *State {
	return &State{
		Items:   items,
		Actions: map[string][]Action{},
		Goto:    map[string]int{},
	}
}

// addAction appends act to actions[terminal], preserving insertion order.
// Build records shifts with it; materialize later inserts reduces in front
// of them (prependAction), so each list reads reduces first, then shifts
// (spec §5's "ordering guarantees").
func (s *State) addAction(terminal string, act Action) {
	s.Actions[terminal] = append(s.Actions[terminal], act)
}

// StateTable is the materialized automaton: an ordered list of states
// (index 0 is the initial state) plus the sorted sets of terminals and
// non-terminals actually referenced, for renderers.
type StateTable struct {
	States       []*State
	Terminals    []string
	NonTerminals []string
	IsK0         bool
}
