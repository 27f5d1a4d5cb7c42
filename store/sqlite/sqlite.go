/*
Package sqlite provides SQLite-backed persistence for saved cases.

PURPOSE:
  The calculation engine is stateless; what the application keeps is
  the case *inputs* a user has entered, so a case can be reloaded and
  recalculated later. Calculation results are never persisted - they
  are cheap to reproduce and storing them would freeze stale figures.

KEY TABLE:
  cases:  id, name, the CaseInput as a JSON blob, timestamps.
          The blob format follows the text marshalling of the input
          types (decimal amounts as strings, ISO dates).

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better
  concurrency: multiple readers don't block and crash recovery is
  cleaner.

CONCURRENCY:
  Uses sync.RWMutex around the connection. With a server database
  (PostgreSQL) the database's own concurrency control would replace
  this.

USAGE:
  store, err := sqlite.New("./data/cases.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool with versioned migrations.

SEE ALSO:
  - compensation/types.go: the CaseInput stored here
  - api/handlers.go: the only caller
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/compensation-engine/compensation"
)

// ErrCaseNotFound is returned when a case id has no row.
var ErrCaseNotFound = errors.New("case not found")

// CaseRecord is one saved case: a name plus the full input.
type CaseRecord struct {
	ID        string
	Name      string
	Input     compensation.CaseInput
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists saved cases in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates the
// schema. Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cases (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		input_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cases_updated_at
		ON cases(updated_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveCase inserts a new case or replaces an existing one with the
// same id, bumping updated_at.
func (s *Store) SaveCase(ctx context.Context, rec CaseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.Marshal(rec.Input)
	if err != nil {
		return fmt.Errorf("failed to encode case input: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created := now
	if !rec.CreatedAt.IsZero() {
		created = rec.CreatedAt.UTC().Format(time.RFC3339)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cases (id, name, input_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			input_json = excluded.input_json,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Name, string(blob), created, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save case %s: %w", rec.ID, err)
	}
	return nil
}

// GetCase loads one case by id.
func (s *Store) GetCase(ctx context.Context, id string) (CaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, input_json, created_at, updated_at
		FROM cases WHERE id = ?`, id)
	return scanCase(row)
}

// ListCases returns every saved case, most recently updated first.
func (s *Store) ListCases(ctx context.Context) ([]CaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, input_json, created_at, updated_at
		FROM cases ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	var out []CaseRecord
	for rows.Next() {
		rec, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteCase removes a case by id.
func (s *Store) DeleteCase(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM cases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete case %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCaseNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (CaseRecord, error) {
	var (
		rec     CaseRecord
		blob    string
		created string
		updated string
	)
	if err := row.Scan(&rec.ID, &rec.Name, &blob, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CaseRecord{}, ErrCaseNotFound
		}
		return CaseRecord{}, fmt.Errorf("failed to scan case: %w", err)
	}
	if err := json.Unmarshal([]byte(blob), &rec.Input); err != nil {
		return CaseRecord{}, fmt.Errorf("failed to decode case input: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return rec, nil
}
