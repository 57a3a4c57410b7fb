// Package diag is the pure, side-effecting conflict/ambiguity reporter:
// given an LL(1) ambiguity or an LR conflict, it emits one human-readable
// diagnostic line per finding. It never mutates the grammar or automaton it
// is reporting on.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/grampiler/internal/automaton"
	"github.com/dekarrin/grampiler/internal/collect"
	"github.com/dekarrin/grampiler/internal/grammar"
)

// Sink receives rendered diagnostic lines. Report* functions never write
// directly to a stream; they always go through a Sink so callers can
// redirect diagnostics to a buffer, a log, stderr, or (in cmd/grampiler) the
// -o report file.
type Sink interface {
	Emit(line string)
}

// StderrSink writes every diagnostic line to os.Stderr, one per line.
type StderrSink struct{}

func (StderrSink) Emit(line string) {
	fmt.Fprintln(os.Stderr, line)
}

// WriterSink writes every diagnostic line to an arbitrary io.Writer.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Emit(line string) {
	fmt.Fprintln(s.W, line)
}

// CollectSink accumulates every diagnostic line in memory, for tests or for
// a CLI mode that wants to report a count before printing.
type CollectSink struct {
	Lines []string
}

func (s *CollectSink) Emit(line string) {
	s.Lines = append(s.Lines, line)
}

// ReportLLConflict emits one diagnostic for an LL(1) ambiguity: a
// non-terminal whose alternatives have overlapping PREDICT sets.
func ReportLLConflict(sink Sink, c grammar.LLConflict) {
	sink.Emit(fmt.Sprintf(
		"grammar is not LL(1): non-terminal %q has an ambiguous alternative under lookahead %s",
		c.NonTerminal, collect.TextList(c.Terminals),
	))
}

// ReportLRConflict emits one diagnostic for an LR shift/reduce or
// reduce/reduce conflict: a state whose action table has more than one
// entry for some lookahead terminal.
func ReportLRConflict(sink Sink, c automaton.Conflict) {
	lookahead := c.Lookahead
	if lookahead == grammar.EOF {
		lookahead = "$"
	}
	var descs []string
	for _, a := range c.Actions {
		descs = append(descs, a.String())
	}
	sink.Emit(fmt.Sprintf(
		"%s conflict in state %d on lookahead %q: %s",
		c.Kind, c.State, lookahead, collect.TextList(descs),
	))
}

// ReportAll reports every LL(1) ambiguity and every LR conflict found,
// returning the total diagnostic count emitted.
func ReportAll(sink Sink, llConflicts []grammar.LLConflict, lrConflicts []automaton.Conflict) int {
	for _, c := range llConflicts {
		ReportLLConflict(sink, c)
	}
	for _, c := range lrConflicts {
		ReportLRConflict(sink, c)
	}
	return len(llConflicts) + len(lrConflicts)
}
