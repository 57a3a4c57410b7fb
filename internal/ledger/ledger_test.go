package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Store_RecordAndRecent(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if !assert.NoError(err) {
		return
	}
	defer store.Close()

	_, err = store.Record(ctx, "hash-1", "ll", 3, 5, 0, 0)
	assert.NoError(err)
	_, err = store.Record(ctx, "hash-2", "lr", 3, 5, 2, 1)
	assert.NoError(err)

	runs, err := store.Recent(ctx, 10)
	if !assert.NoError(err) {
		return
	}
	if assert.Len(runs, 2) {
		assert.Equal("hash-2", runs[0].GrammarHash, "most recent run must come first")
		assert.Equal(2, runs[0].Conflicts)
		assert.Equal(1, runs[0].ExitCode)
		assert.Equal(3, runs[0].NonTerminals)
		assert.Equal(5, runs[0].Terminals)
	}
}

func Test_Store_Recent_Limit(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if !assert.NoError(err) {
		return
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, "hash", "ll", 1, 1, 0, 0)
		assert.NoError(err)
	}

	runs, err := store.Recent(ctx, 2)
	if !assert.NoError(err) {
		return
	}
	assert.Len(runs, 2)
}
