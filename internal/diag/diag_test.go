package diag

import (
	"testing"

	"github.com/dekarrin/grampiler/internal/automaton"
	"github.com/dekarrin/grampiler/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_ReportLLConflict(t *testing.T) {
	assert := assert.New(t)
	sink := &CollectSink{}

	ReportLLConflict(sink, grammar.LLConflict{NonTerminal: "S", Terminals: []string{"if"}})

	if assert.Len(sink.Lines, 1) {
		assert.Contains(sink.Lines[0], "S")
		assert.Contains(sink.Lines[0], "if")
	}
}

func Test_ReportLRConflict(t *testing.T) {
	assert := assert.New(t)
	sink := &CollectSink{}

	c := automaton.Conflict{
		State:     3,
		Lookahead: grammar.EOF,
		Kind:      automaton.ConflictShiftReduce,
		Actions:   []automaton.Action{automaton.Shift(5), automaton.Reduce(nil, "S")},
	}
	ReportLRConflict(sink, c)

	if assert.Len(sink.Lines, 1) {
		assert.Contains(sink.Lines[0], "shift/reduce")
		assert.Contains(sink.Lines[0], "3")
		assert.Contains(sink.Lines[0], "$")
	}
}

func Test_ReportAll_Count(t *testing.T) {
	assert := assert.New(t)
	sink := &CollectSink{}

	n := ReportAll(sink,
		[]grammar.LLConflict{{NonTerminal: "S", Terminals: []string{"if"}}},
		[]automaton.Conflict{{State: 0, Lookahead: "a", Kind: automaton.ConflictReduceReduce}},
	)

	assert.Equal(2, n)
	assert.Len(sink.Lines, 2)
}
