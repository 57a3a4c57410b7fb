// Package grammar is the shared data model and static analyses of the
// grammar-analysis engine: non-terminals, productions, token references, and
// the nullability/FIRST/FOLLOW/PREDICT attribute sets derived from them.
//
// The package mutates a Grammar in place as each analysis runs, the same
// "historical" mutation discipline ictiobus's own grammar package uses
// (nullability, then FIRST, then FOLLOW, then PREDICT), and assumes its
// input IR is already well-formed: every ID-kind token reference that is not
// itself a declared non-terminal name must already have been rewritten to
// TERM by the grammar-parsing collaborator before the grammar reaches this
// package.
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/grampiler/internal/collect"
)

// Kind classifies a token reference the way the upstream scanner/parser
// collaborator would: only ID and Term matter to the analyses in this
// package, but the full enumeration from spec §3 is kept so that round-trip
// tests of the grammar source format (§6) have somewhere to classify
// EQUALS/END/Pipe tokens before they're discarded.
type Kind int

const (
	KindID Kind = iota
	KindTerm
	KindEOF
	KindEquals
	KindEnd
	KindPipe
)

func (k Kind) String() string {
	switch k {
	case KindID:
		return "ID"
	case KindTerm:
		return "TERM"
	case KindEOF:
		return "EOF"
	case KindEquals:
		return "EQUALS"
	case KindEnd:
		return "END"
	case KindPipe:
		return "|"
	default:
		return "UNKNOWN"
	}
}

// EOF is the reserved sentinel terminal value denoting end-of-input. It is a
// real terminal throughout the analyses; renderers may alias it to "$".
const EOF = "EOF"

// TokenRef is a (kind, value) pair referenced from a production's
// right-hand side.
type TokenRef struct {
	Kind  Kind
	Value string
}

// Term builds a TERM token reference, stripping surrounding quotes from the
// literal if present.
func Term(value string) TokenRef {
	return TokenRef{Kind: KindTerm, Value: StripQuotes(value)}
}

// NonTerm builds an ID token reference to a non-terminal.
func NonTerm(name string) TokenRef {
	return TokenRef{Kind: KindID, Value: name}
}

// StripQuotes removes surrounding ' or " pairs from s, repeating while what
// remains is still wrapped in a matching pair. It is idempotent:
// StripQuotes(StripQuotes(x)) == StripQuotes(x).
func StripQuotes(s string) string {
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if !((first == '\'' && last == '\'') || (first == '"' && last == '"')) {
			break
		}
		s = s[1 : len(s)-1]
	}
	return s
}

// Production is an ordered sequence of token references, possibly empty (an
// ε-production). Productions are owned by their non-terminal; PredictSet is
// populated by ComputePredict and is nil until then.
type Production struct {
	Symbols    []TokenRef
	PredictSet collect.StringSet
}

// IsEpsilon reports whether this production derives the empty string
// directly (as opposed to transitively through nullable non-terminals).
func (p *Production) IsEpsilon() bool {
	return len(p.Symbols) == 0
}

// String renders the production's right-hand side, space-separated, with
// "ε" standing in for an empty production.
func (p *Production) String() string {
	if p.IsEpsilon() {
		return "ε"
	}
	parts := make([]string, len(p.Symbols))
	for i, sym := range p.Symbols {
		parts[i] = sym.Value
	}
	return strings.Join(parts, " ")
}

// NonTerminal is a named grammar symbol defined by one or more productions,
// along with the attribute sets the pipeline in §2 derives for it.
type NonTerminal struct {
	Name        string
	IsStart     bool
	IsNullable  bool
	FirstSet    collect.StringSet
	FollowSet   collect.StringSet
	PredictSet  collect.StringSet
	Productions []*Production
}

// AddProduction appends a new production with the given right-hand side to
// nt, preserving definition order (the tie-break for alternative selection
// per spec §3).
func (nt *NonTerminal) AddProduction(symbols ...TokenRef) *Production {
	p := &Production{Symbols: symbols}
	nt.Productions = append(nt.Productions, p)
	return p
}

// Grammar is the shared IR: an ordered collection of non-terminals (in
// definition order) plus the set of terminal values referenced anywhere in
// their productions.
type Grammar struct {
	order     []string
	nts       map[string]*NonTerminal
	terminals collect.StringSet
	start     string
}

// New returns an empty Grammar ready to have non-terminals added to it.
func New() *Grammar {
	return &Grammar{
		nts:       map[string]*NonTerminal{},
		terminals: collect.NewStringSet(),
	}
}

// AddNonTerminal declares a new non-terminal with the given name. If
// isStart is true it becomes the grammar's start symbol; the caller is
// responsible for ensuring exactly one non-terminal is ever added with
// isStart true (spec §3's "exactly one non-terminal per grammar has this
// true" invariant is the grammar-parsing collaborator's to enforce upstream,
// not this package's to re-validate defensively).
func (g *Grammar) AddNonTerminal(name string, isStart bool) *NonTerminal {
	nt := &NonTerminal{Name: name, IsStart: isStart}
	g.nts[name] = nt
	g.order = append(g.order, name)
	if isStart {
		g.start = name
	}
	return nt
}

// NonTerminal looks up a non-terminal by name, or nil if undeclared.
func (g *Grammar) NonTerminal(name string) *NonTerminal {
	return g.nts[name]
}

// IsNonTerminal reports whether name is a declared non-terminal.
func (g *Grammar) IsNonTerminal(name string) bool {
	_, ok := g.nts[name]
	return ok
}

// NonTerminalNames returns every declared non-terminal's name in definition
// order.
func (g *Grammar) NonTerminalNames() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// SortedNonTerminalNames returns every declared non-terminal's name in
// collation order, for deterministic, user-facing output.
func (g *Grammar) SortedNonTerminalNames() []string {
	return collect.AlphabetizedSlice(g.order)
}

// StartSymbol returns the name of the grammar's start non-terminal.
func (g *Grammar) StartSymbol() string {
	return g.start
}

// RecordTerminal marks value as a terminal actually referenced by some
// production. AddProduction records TERM symbols itself; this is exposed so
// callers that build productions with raw TokenRef slices can keep the
// terminal set in sync.
func (g *Grammar) RecordTerminal(value string) {
	g.terminals.Add(value)
}

// Terminals returns the set of terminal values referenced anywhere in the
// grammar's productions, in collation order. EOF is included only if some
// production explicitly references it; the implicit EOF contributed to the
// start symbol's FOLLOW set by ComputeFollow is added separately by callers
// that need the full rendered terminal set (see automaton.StateTable).
func (g *Grammar) Terminals() []string {
	return collect.Alphabetized(g.terminals)
}

// AddProduction declares a new production for ntName with the given
// right-hand side, recording any TERM symbols into the grammar's terminal
// set. Panics if ntName is not a declared non-terminal, the same
// programmer-error contract the teacher's own Grammar.AddRule uses.
func (g *Grammar) AddProduction(ntName string, symbols ...TokenRef) *Production {
	nt := g.nts[ntName]
	if nt == nil {
		panic(fmt.Sprintf("grammar: AddProduction: no such non-terminal %q", ntName))
	}
	for _, sym := range symbols {
		if sym.Kind == KindTerm {
			g.terminals.Add(sym.Value)
		}
	}
	return nt.AddProduction(symbols...)
}

// Analyze runs the full pipeline of §2 in order — nullability, FIRST,
// FOLLOW, then PREDICT and LL(1) conflict detection — mutating the
// grammar's non-terminals in place, and returns any LL(1) ambiguities
// found. Analyze is idempotent: running it again on an already-analyzed
// grammar recomputes the same sets and reports the same conflicts (spec §8).
func (g *Grammar) Analyze() []LLConflict {
	ComputeNullable(g)
	ComputeFirst(g)
	ComputeFollow(g)
	return ComputePredict(g)
}
