// Package cache persists a compiled automaton.StateTable keyed by a hash of
// the grammar source plus the LR mode, so repeated runs over an unchanged
// grammar (spec §6's CLI surface's --cache flag) skip automaton
// construction entirely. Serialization follows the same
// rezi.EncBinary/DecBinary round trip the teacher uses to persist its own
// game state to sqlite (server/dao/sqlite/sqlite.go); the cache key is a
// blake2b digest rather than a content hash scheme of its own invention.
package cache

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/rezi"
	"golang.org/x/crypto/blake2b"

	"github.com/dekarrin/grampiler/internal/automaton"
)

// Key derives the cache key for a grammar source plus LR mode: a blake2b-256
// digest of the source bytes with the mode folded in, so an LR(0) and an
// LR(1) table for the same source never collide.
func Key(source []byte, isK0 bool) string {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors on a bad key length, and we never pass one.
		panic(fmt.Sprintf("cache: blake2b.New256: %v", err))
	}
	h.Write(source)
	if isK0 {
		h.Write([]byte{0})
	} else {
		h.Write([]byte{1})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Store is a directory-backed cache of compiled state tables, one file per
// key.
type Store struct {
	Dir string
}

func (s Store) path(key string) string {
	return filepath.Join(s.Dir, key+".rezi")
}

// Load returns the cached table for key, or ok=false if nothing is cached.
func (s Store) Load(key string) (table *automaton.StateTable, ok bool, err error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: %w", err)
	}

	table = &automaton.StateTable{}
	if _, err := rezi.DecBinary(data, table); err != nil {
		return nil, false, fmt.Errorf("cache: corrupt cache entry %s: %w", key, err)
	}
	return table, true, nil
}

// Save persists table under key, creating the cache directory if needed.
func (s Store) Save(key string, table *automaton.StateTable) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	data := rezi.EncBinary(table)
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}
