package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/grampiler/internal/grampilererr"
)

// Validate performs the light structural sanity checks this package is
// entitled to make without re-deriving what the grammar-parsing
// collaborator is responsible for (spec §7: "grammar-structural errors...
// reported by the parser collaborator; the core assumes a well-formed IR").
// It catches the mistakes that are cheap to check and would otherwise make
// every subsequent analysis silently wrong: a grammar with no non-terminals
// (nothing to analyze), a missing start symbol, and any non-terminal with
// no productions.
func (g *Grammar) Validate() error {
	if len(g.order) == 0 {
		return grampilererr.New(grampilererr.KindStructural, "grammar has no non-terminals", "")
	}
	if g.start == "" || g.nts[g.start] == nil {
		return grampilererr.New(grampilererr.KindStructural, "grammar has no start non-terminal", "")
	}

	var missingProds []string
	for _, name := range g.order {
		if len(g.nts[name].Productions) == 0 {
			missingProds = append(missingProds, name)
		}
	}
	if len(missingProds) > 0 {
		return grampilererr.New(
			grampilererr.KindStructural,
			fmt.Sprintf("non-terminal(s) with no productions: %s", strings.Join(missingProds, ", ")),
			"",
		)
	}

	return nil
}

// Copy returns a deep copy of g, safe for a caller to mutate (e.g. to run a
// second, independent Analyze pass) without affecting the original.
func (g *Grammar) Copy() *Grammar {
	cp := New()
	for _, name := range g.order {
		src := g.nts[name]
		cp.AddNonTerminal(name, src.IsStart)
	}
	for _, name := range g.order {
		src := g.nts[name]
		for _, p := range src.Productions {
			syms := make([]TokenRef, len(p.Symbols))
			copy(syms, p.Symbols)
			cp.AddProduction(name, syms...)
		}
	}
	return cp
}
