package repl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/grampiler/internal/grammar"
)

func buildGrammar() *grammar.Grammar {
	g := grammar.New()
	g.AddNonTerminal("S", true)
	g.AddNonTerminal("A", false)
	g.AddProduction("S", grammar.NonTerm("A"), grammar.Term("x"))
	g.AddProduction("A")
	g.Analyze()
	return g
}

func Test_Dispatch_First(t *testing.T) {
	assert := assert.New(t)
	g := buildGrammar()
	var buf bytes.Buffer

	cont := dispatch(g, &buf, "first S")
	assert.True(cont)
	assert.Contains(buf.String(), "FIRST(S)")
	assert.Contains(buf.String(), "x")
}

func Test_Dispatch_Nullable(t *testing.T) {
	assert := assert.New(t)
	g := buildGrammar()
	var buf bytes.Buffer

	dispatch(g, &buf, "nullable A")
	assert.Contains(buf.String(), "nullable(A) = true")
}

func Test_Dispatch_UnknownNonTerminal(t *testing.T) {
	assert := assert.New(t)
	g := buildGrammar()
	var buf bytes.Buffer

	dispatch(g, &buf, "first Z")
	assert.Contains(buf.String(), "no such non-terminal")
}

func Test_Dispatch_Conflicts_Clean(t *testing.T) {
	assert := assert.New(t)
	g := buildGrammar()
	var buf bytes.Buffer

	dispatch(g, &buf, "conflicts")
	assert.Contains(buf.String(), "LL(1)")
}

func Test_Dispatch_Quit(t *testing.T) {
	assert := assert.New(t)
	g := buildGrammar()
	var buf bytes.Buffer

	cont := dispatch(g, &buf, "quit")
	assert.False(cont)
}

func Test_Dispatch_UnknownCommand(t *testing.T) {
	assert := assert.New(t)
	g := buildGrammar()
	var buf bytes.Buffer

	cont := dispatch(g, &buf, "bogus")
	assert.True(cont)
	assert.Contains(buf.String(), "unknown command")
}
