// Package store provides SQLite-backed history of machine compilations.
// Each compile attempt, successful or not, becomes one record keyed by a
// generated id, so build tooling can answer when a definition last compiled
// and to what shape.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/statec-xyz/go-statec/machine"
)

// ErrNotFound indicates no record exists for the requested id.
var ErrNotFound = errors.New("store: record not found")

// Store handles SQLite database operations for compile history.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Record is one compile attempt.
type Record struct {
	ID          string    `json:"id"`
	SourceHash  string    `json:"source_hash"`
	Name        string    `json:"name"`
	States      int       `json:"states"`
	Events      int       `json:"events"`
	Transitions int       `json:"transitions"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Open opens (creating if necessary) a compile-history database at the
// given path.
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS compilations (
		id          TEXT PRIMARY KEY,
		source_hash TEXT NOT NULL,
		name        TEXT NOT NULL,
		states      INTEGER NOT NULL,
		events      INTEGER NOT NULL,
		transitions INTEGER NOT NULL,
		success     INTEGER NOT NULL,
		error       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_compilations_hash ON compilations(source_hash);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordCompile stores the outcome of compiling the given source text.
// spec may be nil when compileErr is non-nil.
func (s *Store) RecordCompile(source string, spec *machine.Spec, compileErr error) (*Record, error) {
	sum := sha256.Sum256([]byte(source))
	rec := &Record{
		ID:         uuid.NewString(),
		SourceHash: hex.EncodeToString(sum[:]),
		CreatedAt:  time.Now().UTC(),
	}
	if compileErr != nil {
		rec.Error = compileErr.Error()
	} else {
		rec.Name = spec.Name
		rec.States = spec.NumStates()
		rec.Events = spec.NumEvents()
		rec.Transitions = len(spec.Transitions())
		rec.Success = true
	}

	_, err := s.db.Exec(`
		INSERT INTO compilations (id, source_hash, name, states, events, transitions, success, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SourceHash, rec.Name, rec.States, rec.Events, rec.Transitions,
		boolToInt(rec.Success), rec.Error, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("store: insert: %w", err)
	}

	s.log.Debug().
		Str("id", rec.ID).
		Str("machine", rec.Name).
		Bool("success", rec.Success).
		Msg("recorded compilation")
	return rec, nil
}

// Get retrieves one record by id.
func (s *Store) Get(id string) (*Record, error) {
	row := s.db.QueryRow(`
		SELECT id, source_hash, name, states, events, transitions, success, error, created_at
		FROM compilations WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

// List returns the most recent records, newest first.
func (s *Store) List(limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, source_hash, name, states, events, transitions, success, error, created_at
		FROM compilations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Prune deletes records older than the cutoff and returns how many were
// removed.
func (s *Store) Prune(before time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM compilations WHERE created_at < ?`,
		before.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("store: prune: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (*Record, error) {
	rec := &Record{}
	var success int
	var createdAt string
	err := row.Scan(&rec.ID, &rec.SourceHash, &rec.Name, &rec.States, &rec.Events,
		&rec.Transitions, &success, &rec.Error, &createdAt)
	if err != nil {
		return nil, err
	}
	rec.Success = success != 0
	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("store: parse created_at: %w", err)
	}
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
