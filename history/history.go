package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/kndndrj/go-arango/core"
)

var ErrEntryNotFound = errors.New("history entry not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	conn_name   TEXT NOT NULL,
	db_name     TEXT NOT NULL,
	query_text  TEXT NOT NULL,
	state       TEXT NOT NULL,
	items       INTEGER NOT NULL DEFAULT 0,
	started_at  INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL DEFAULT 0,
	error       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS runs_started_at ON runs (started_at);
`

// Entry is one executed query.
type Entry struct {
	ID         string
	Connection string
	Database   string
	Query      string
	State      core.CursorState
	Items      int
	StartedAt  time.Time
	Duration   time.Duration
	Error      string
}

// NewEntry starts timing a query run.
func NewEntry(connection, database, query string) *Entry {
	return &Entry{
		ID:         uuid.New().String(),
		Connection: connection,
		Database:   database,
		Query:      query,
		State:      core.CursorStateOpen,
		StartedAt:  time.Now(),
	}
}

// Finish records the outcome of the run.
func (e *Entry) Finish(state core.CursorState, items int, err error) {
	e.State = state
	e.Items = items
	e.Duration = time.Since(e.StartedAt)
	if err != nil {
		e.Error = err.Error()
		if state != core.CursorStateFailed {
			e.State = core.CursorStateFailed
		}
	}
}

// Store keeps query runs in a sqlite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts the entry, or updates it when the id already exists.
func (s *Store) Record(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, conn_name, db_name, query_text, state, items, started_at, duration_ns, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			state = excluded.state,
			items = excluded.items,
			duration_ns = excluded.duration_ns,
			error = excluded.error`,
		e.ID, e.Connection, e.Database, e.Query, e.State.String(),
		e.Items, e.StartedAt.UnixNano(), int64(e.Duration), e.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, conn_name, db_name, query_text, state, items, started_at, duration_ns, error FROM runs`

// List returns the most recent runs first. limit <= 0 returns all of them.
func (s *Store) List(ctx context.Context, limit int) ([]*Entry, error) {
	query := selectColumns + ` ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get returns the run with id.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return e, err
}

// Clear removes every run.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("clearing runs: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (*Entry, error) {
	var (
		e        Entry
		state    string
		started  int64
		duration int64
	)
	err := sc.Scan(&e.ID, &e.Connection, &e.Database, &e.Query, &state, &e.Items, &started, &duration, &e.Error)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	e.State = core.CursorStateFromString(state)
	e.StartedAt = time.Unix(0, started)
	e.Duration = time.Duration(duration)
	return &e, nil
}
