package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/grampiler/internal/automaton"
	"github.com/dekarrin/grampiler/internal/grammar"
)

func buildTable() *automaton.StateTable {
	g := grammar.New()
	g.AddNonTerminal("S", true)
	g.AddProduction("S", grammar.Term("a"))
	g.Analyze()
	return automaton.Build(g, false)
}

func Test_Key_DistinguishesMode(t *testing.T) {
	assert := assert.New(t)
	src := []byte("S ::= \"a\" ;")
	assert.NotEqual(Key(src, true), Key(src, false))
}

func Test_Key_Deterministic(t *testing.T) {
	assert := assert.New(t)
	src := []byte("S ::= \"a\" ;")
	assert.Equal(Key(src, false), Key(src, false))
}

func Test_Store_SaveLoadRoundTrip(t *testing.T) {
	assert := assert.New(t)
	store := Store{Dir: filepath.Join(t.TempDir(), "cache")}
	table := buildTable()
	key := Key([]byte("S ::= \"a\" ;"), false)

	if !assert.NoError(store.Save(key, table)) {
		return
	}

	loaded, ok, err := store.Load(key)
	if !assert.NoError(err) || !assert.True(ok) {
		return
	}
	assert.Equal(len(table.States), len(loaded.States))
	assert.Equal(table.Terminals, loaded.Terminals)
	assert.Equal(table.IsK0, loaded.IsK0)
}

func Test_Store_LoadMiss(t *testing.T) {
	assert := assert.New(t)
	store := Store{Dir: t.TempDir()}
	_, ok, err := store.Load("does-not-exist")
	assert.NoError(err)
	assert.False(ok)
}
