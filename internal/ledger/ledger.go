// Package ledger records a history of analysis runs to a sqlite database
// (spec §6 CLI surface's --history flag): one row per invocation, naming
// the grammar source hash, the mode (LL/LR), and the counts of ambiguities
// and conflicts found. It follows the teacher's own sqlite DAO shape
// (server/dao/sqlite): a thin struct wrapping *sql.DB, an init() that
// issues a CREATE TABLE IF NOT EXISTS, and google/uuid-keyed rows.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is one recorded analysis invocation.
type Run struct {
	ID           uuid.UUID
	GrammarHash  string
	Mode         string // "ll", "lr1" or "lr0"
	NonTerminals int
	Terminals    int
	Conflicts    int
	ExitCode     int
	RanAt        time.Time
}

// Store is a sqlite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at file and
// ensures its schema exists.
func Open(file string) (*Store, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT NOT NULL PRIMARY KEY,
		grammar_hash TEXT NOT NULL,
		mode TEXT NOT NULL,
		non_terminals INTEGER NOT NULL,
		terminals INTEGER NOT NULL,
		conflicts INTEGER NOT NULL,
		exit_code INTEGER NOT NULL,
		ran_at TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a new run row, generating its ID.
func (s *Store) Record(ctx context.Context, grammarHash, mode string, nonTerminals, terminals, conflicts, exitCode int) (Run, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Run{}, fmt.Errorf("ledger: could not generate run ID: %w", err)
	}
	run := Run{
		ID:           id,
		GrammarHash:  grammarHash,
		Mode:         mode,
		NonTerminals: nonTerminals,
		Terminals:    terminals,
		Conflicts:    conflicts,
		ExitCode:     exitCode,
		RanAt:        time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, grammar_hash, mode, non_terminals, terminals, conflicts, exit_code, ran_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.GrammarHash, run.Mode, run.NonTerminals, run.Terminals,
		run.Conflicts, run.ExitCode, run.RanAt.Format(time.RFC3339),
	)
	if err != nil {
		return Run{}, fmt.Errorf("ledger: %w", err)
	}
	return run, nil
}

// Recent returns the most recent n runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, grammar_hash, mode, non_terminals, terminals, conflicts, exit_code, ran_at
		 FROM runs ORDER BY ran_at DESC, rowid DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var idStr, ranAtStr string
		var run Run
		if err := rows.Scan(&idStr, &run.GrammarHash, &run.Mode, &run.NonTerminals,
			&run.Terminals, &run.Conflicts, &run.ExitCode, &ranAtStr); err != nil {
			return nil, fmt.Errorf("ledger: %w", err)
		}
		run.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("ledger: corrupt run id %q: %w", idStr, err)
		}
		run.RanAt, err = time.Parse(time.RFC3339, ranAtStr)
		if err != nil {
			return nil, fmt.Errorf("ledger: corrupt ran_at %q: %w", ranAtStr, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
