// Package journal persists run history in SQLite: one row per composition
// run with its counts and the fallback substitutions actually used.
// History is operator convenience — the composer never reads it, and a
// journal failure must never block a run.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lumenlabs/showmcp/internal/show"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	started_at    TEXT NOT NULL,
	finished_at   TEXT NOT NULL,
	dry_run       INTEGER NOT NULL,
	targets       TEXT NOT NULL,
	scenes        INTEGER NOT NULL,
	playlists     INTEGER NOT NULL,
	substitutions TEXT NOT NULL,
	error         TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
`

// RunRecord is one journaled composition run.
type RunRecord struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	DryRun        bool
	Targets       []string
	Scenes        int
	Playlists     int
	Substitutions []show.Substitution
	Error         string
}

// Store is the sqlite-backed journal.
type Store struct {
	db *sql.DB
}

// Open creates the journal database (and parent directory) if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing journal schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewRunID returns a fresh run id.
func NewRunID() string {
	return uuid.NewString()
}

// Record inserts one run record.
func (s *Store) Record(ctx context.Context, rec RunRecord) error {
	if rec.ID == "" {
		rec.ID = NewRunID()
	}
	targets, err := json.Marshal(rec.Targets)
	if err != nil {
		return fmt.Errorf("encoding targets: %w", err)
	}
	subs, err := json.Marshal(rec.Substitutions)
	if err != nil {
		return fmt.Errorf("encoding substitutions: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, dry_run, targets, scenes, playlists, substitutions, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.FinishedAt.UTC().Format(time.RFC3339Nano),
		boolToInt(rec.DryRun),
		string(targets),
		rec.Scenes,
		rec.Playlists,
		string(subs),
		rec.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting run record: %w", err)
	}
	return nil
}

// Recent returns the newest runs, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, dry_run, targets, scenes, playlists, substitutions, error
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started, finished, targets, subs string
		var dryRun int
		if err := rows.Scan(&rec.ID, &started, &finished, &dryRun, &targets, &rec.Scenes, &rec.Playlists, &subs, &rec.Error); err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}
		rec.DryRun = dryRun != 0
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parsing started_at: %w", err)
		}
		if rec.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parsing finished_at: %w", err)
		}
		if err := json.Unmarshal([]byte(targets), &rec.Targets); err != nil {
			return nil, fmt.Errorf("decoding targets: %w", err)
		}
		if err := json.Unmarshal([]byte(subs), &rec.Substitutions); err != nil {
			return nil, fmt.Errorf("decoding substitutions: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
