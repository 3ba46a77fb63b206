package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/wordreplacer/pkg/wordreplacer/internalerr"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	input TEXT NOT NULL,
	output TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TEXT NOT NULL,
	decisions TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// AppendRun stores a run; an existing id is overwritten.
func (s *sqliteStore) AppendRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("%w: run id required", internalerr.ErrInvalidInput)
	}
	decisions := r.Decisions
	if decisions == nil {
		decisions = []store.Decision{}
	}
	decisionsJSON, err := json.Marshal(decisions)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO runs (id, input, output, status, created_at, decisions)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	input=excluded.input,
	output=excluded.output,
	status=excluded.status,
	created_at=excluded.created_at,
	decisions=excluded.decisions;
`, r.ID, r.Input, r.Output, r.Status, r.CreatedAt.UTC().Format(time.RFC3339Nano), string(decisionsJSON))
	return err
}

// GetRun retrieves a run by id
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, input, output, status, created_at, decisions
FROM runs
WHERE id = ?;
`, id)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return r, err
}

// RecentRuns lists runs newest first. ULIDs sort by creation time.
func (s *sqliteStore) RecentRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = store.DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, input, output, status, created_at, decisions
FROM runs
ORDER BY id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r             store.Run
		createdAt     string
		decisionsJSON string
	)
	if err := sc.Scan(&r.ID, &r.Input, &r.Output, &r.Status, &createdAt, &decisionsJSON); err != nil {
		return store.Run{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return store.Run{}, fmt.Errorf("parse created_at for %s: %w", r.ID, err)
	}
	r.CreatedAt = t

	if err := json.Unmarshal([]byte(decisionsJSON), &r.Decisions); err != nil {
		return store.Run{}, fmt.Errorf("decode decisions for %s: %w", r.ID, err)
	}
	return r, nil
}
