// Package sqlite provides a SQLite-backed dataset store for
// synthesized symptom records.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/medsynth/symgen/pkg/types"
)

// schema is idempotent; all statements use IF NOT EXISTS.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	count      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
	id       TEXT PRIMARY KEY,
	run_id   TEXT NOT NULL REFERENCES runs(id),
	text     TEXT NOT NULL,
	label    TEXT NOT NULL,
	metadata TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id);
CREATE INDEX IF NOT EXISTS idx_records_label ON records(label);
`

// Store implements the dataset store on SQLite.
type Store struct {
	db *sql.DB
}

// New opens (creating if necessary) a SQLite dataset store at path.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	// modernc.org/sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent inserts.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveRun stores a record batch as one dataset run and returns the run ID.
func (s *Store) SaveRun(ctx context.Context, records []types.SymptomRecord) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("sqlite: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, created_at, count) VALUES (?, ?, ?)",
		runID, time.Now().UTC(), len(records)); err != nil {
		return "", fmt.Errorf("sqlite: failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO records (id, run_id, text, label, metadata) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("sqlite: failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		md, err := json.Marshal(records[i].Metadata)
		if err != nil {
			return "", fmt.Errorf("sqlite: failed to encode metadata: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			uuid.NewString(), runID, records[i].Text, records[i].Label, string(md)); err != nil {
			return "", fmt.Errorf("sqlite: failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("sqlite: failed to commit: %w", err)
	}
	return runID, nil
}

// LoadRun returns all records of a run, in insertion order.
func (s *Store) LoadRun(ctx context.Context, runID string) ([]types.SymptomRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT text, label, metadata FROM records WHERE run_id = ? ORDER BY rowid", runID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query records: %w", err)
	}
	defer rows.Close()

	var records []types.SymptomRecord
	for rows.Next() {
		var rec types.SymptomRecord
		var md string
		if err := rows.Scan(&rec.Text, &rec.Label, &md); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan record: %w", err)
		}
		if err := json.Unmarshal([]byte(md), &rec.Metadata); err != nil {
			return nil, fmt.Errorf("sqlite: failed to decode metadata: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountByLabel returns the number of stored records per label.
func (s *Store) CountByLabel(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT label, COUNT(*) FROM records GROUP BY label")
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to count records: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan count: %w", err)
		}
		counts[label] = n
	}
	return counts, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
