package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/grampiler/internal/grammar"
)

func buildTestGrammar() *grammar.Grammar {
	g := grammar.New()
	g.AddNonTerminal("S", true)
	g.AddProduction("S", grammar.Term("a"))
	g.Analyze()
	return g
}

func Test_BuildOrLoadTable_NoCache(t *testing.T) {
	assert := assert.New(t)
	g := buildTestGrammar()

	table, err := buildOrLoadTable([]byte(`S = "a" ;`), g, false, "")
	if !assert.NoError(err) {
		return
	}
	assert.NotEmpty(table.States)
}

func Test_BuildOrLoadTable_CacheRoundTrip(t *testing.T) {
	assert := assert.New(t)
	g := buildTestGrammar()
	dir := filepath.Join(t.TempDir(), "cache")
	src := []byte(`S = "a" ;`)

	first, err := buildOrLoadTable(src, g, false, dir)
	if !assert.NoError(err) {
		return
	}

	second, err := buildOrLoadTable(src, g, false, dir)
	if !assert.NoError(err) {
		return
	}

	assert.Equal(len(first.States), len(second.States), "cached table must round-trip with the same state count")
}
