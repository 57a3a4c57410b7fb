package gsource

import (
	"fmt"

	"github.com/dekarrin/grampiler/internal/grammar"
)

// rawAlt is a parsed alternative before ID/TERM classification: every
// identifier is provisionally KindID until Parse learns the full set of
// declared non-terminal names and rewrites undeclared ones to KindTerm.
type rawAlt struct {
	symbols []rawSymbol
}

type rawSymbol struct {
	isLiteral bool
	text      string
}

type rawRule struct {
	name string
	alts []rawAlt
}

// Parse scans and parses grammar source text into a *grammar.Grammar,
// declaring non-terminals in the order their rules are defined and marking
// the first declared non-terminal as the start symbol (spec §6's grammar
// source format says nothing about which rule is the start rule beyond "the
// declared start non-terminal"; by convention, as in most hand-written
// recursive-descent grammars, that is the first rule in the file).
func Parse(src string) (*grammar.Grammar, error) {
	toks, err := newScanner(src).tokenize()
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	rules, err := p.parseRules()
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("gsource: grammar source declares no rules")
	}

	return build(rules)
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token {
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) parseRules() ([]rawRule, error) {
	var rules []rawRule
	for p.cur().kind != tokEOF {
		rule, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// parseRule parses `NAME EQUALS rhs END` (spec §6).
func (p *parser) parseRule() (rawRule, error) {
	nameTok := p.cur()
	if nameTok.kind != tokIdent {
		return rawRule{}, fmt.Errorf("gsource: line %d: expected rule name, found %q", nameTok.line, nameTok.text)
	}
	p.advance()

	eq := p.cur()
	if eq.kind != tokEquals {
		return rawRule{}, fmt.Errorf("gsource: line %d: expected ':' or '::=' after %q", eq.line, nameTok.text)
	}
	p.advance()

	alts, err := p.parseAlts()
	if err != nil {
		return rawRule{}, err
	}

	end := p.cur()
	if end.kind != tokEnd {
		return rawRule{}, fmt.Errorf("gsource: line %d: expected ';' or '.' to end rule %q", end.line, nameTok.text)
	}
	p.advance()

	return rawRule{name: nameTok.text, alts: alts}, nil
}

// parseAlts parses one or more alternatives separated by '|'; each
// alternative is a possibly-empty sequence of identifiers and literals.
func (p *parser) parseAlts() ([]rawAlt, error) {
	var alts []rawAlt
	for {
		alt, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
		if p.cur().kind != tokPipe {
			return alts, nil
		}
		p.advance()
	}
}

func (p *parser) parseAlt() (rawAlt, error) {
	var alt rawAlt
	for {
		t := p.cur()
		switch t.kind {
		case tokIdent:
			alt.symbols = append(alt.symbols, rawSymbol{text: t.text})
			p.advance()
		case tokLiteral:
			alt.symbols = append(alt.symbols, rawSymbol{isLiteral: true, text: t.text})
			p.advance()
		default:
			return alt, nil
		}
	}
}

// build converts the parsed rules into a *grammar.Grammar, rewriting every
// identifier that isn't a declared non-terminal name to a TERM token (spec
// §3's invariant: "every ID-kind token that is not itself a non-terminal
// name is rewritten to TERM before analysis").
func build(rules []rawRule) (*grammar.Grammar, error) {
	declared := map[string]bool{}
	for _, r := range rules {
		if declared[r.name] {
			return nil, fmt.Errorf("gsource: non-terminal %q declared more than once", r.name)
		}
		declared[r.name] = true
	}

	g := grammar.New()
	for i, r := range rules {
		g.AddNonTerminal(r.name, i == 0)
	}

	for _, r := range rules {
		for _, alt := range r.alts {
			var refs []grammar.TokenRef
			for _, sym := range alt.symbols {
				if sym.isLiteral {
					refs = append(refs, grammar.Term(sym.text))
					continue
				}
				if declared[sym.text] {
					refs = append(refs, grammar.NonTerm(sym.text))
				} else {
					refs = append(refs, grammar.Term(sym.text))
				}
			}
			g.AddProduction(r.name, refs...)
		}
	}

	return g, nil
}
