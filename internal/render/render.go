// Package render formats a StateTable as a human-readable box table for the
// CLI's --print-table flag, the same way the teacher's own canonicalLR1Table
// renders its parse table (internal/ictiobus/parse/clr1.go's String method):
// a header row of action/goto column labels, one row per state, built with
// rosed's InsertTableOpts.
package render

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/grampiler/internal/automaton"
	"github.com/dekarrin/grampiler/internal/grammar"
)

// StateTable renders t as a box table: one column per terminal's action
// list, one column per non-terminal's goto entry, one row per state
// (state 0 first, matching discovery order).
func StateTable(t *automaton.StateTable) string {
	data := [][]string{headerRow(t)}
	for i, s := range t.States {
		data = append(data, stateRow(i, s, t))
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func headerRow(t *automaton.StateTable) []string {
	row := []string{"S", "|"}
	for _, term := range t.Terminals {
		label := term
		if label == grammar.EOF {
			label = "$"
		}
		row = append(row, fmt.Sprintf("A:%s", label))
	}
	row = append(row, "|")
	for _, nt := range t.NonTerminals {
		row = append(row, fmt.Sprintf("G:%s", nt))
	}
	return row
}

func stateRow(idx int, s *automaton.State, t *automaton.StateTable) []string {
	row := []string{fmt.Sprintf("%d", idx), "|"}

	for _, term := range t.Terminals {
		cell := ""
		all := append(append([]automaton.Action{}, s.CommonActions...), s.Actions[term]...)
		for i, a := range all {
			if i > 0 {
				cell += " / "
			}
			cell += actionCell(a)
		}
		row = append(row, cell)
	}

	row = append(row, "|")

	for _, nt := range t.NonTerminals {
		cell := ""
		if next, ok := s.Goto[nt]; ok {
			cell = fmt.Sprintf("%d", next)
		}
		row = append(row, cell)
	}

	return row
}

func actionCell(a automaton.Action) string {
	switch a.Kind {
	case automaton.ActionAccept:
		return "acc"
	case automaton.ActionShift:
		return fmt.Sprintf("s%d", a.State)
	case automaton.ActionReduce:
		p := grammar.Production{Symbols: a.RHS}
		return fmt.Sprintf("r%s -> %s", a.LHS, p.String())
	default:
		return ""
	}
}
