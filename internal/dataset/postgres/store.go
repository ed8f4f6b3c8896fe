// Package postgres provides a PostgreSQL-backed dataset store for
// synthesized symptom records, with optional pgvector embeddings of
// the record text for similarity search over synthetic samples.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/medsynth/symgen/internal/llm"
	"github.com/medsynth/symgen/pkg/types"
)

// schema is idempotent; all statements use IF NOT EXISTS.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	count      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
	id       TEXT PRIMARY KEY,
	run_id   TEXT NOT NULL REFERENCES runs(id),
	text     TEXT NOT NULL,
	label    TEXT NOT NULL,
	metadata JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id);
CREATE INDEX IF NOT EXISTS idx_records_label ON records(label);
`

// migrationVector adds the embedding column once pgvector is confirmed
// available. 768 matches nomic-embed-text; other models need a fresh column.
const migrationVector = `
ALTER TABLE records ADD COLUMN IF NOT EXISTS embedding vector(768);
`

// Store implements the dataset store on PostgreSQL.
type Store struct {
	db                *sql.DB
	pgvectorAvailable bool
	embedder          llm.EmbeddingGenerator // may be nil
}

// New creates a PostgreSQL dataset store. The dsn is a lib/pq
// connection string. The embedder may be nil; records are then stored
// without embeddings. When the server lacks the pgvector extension the
// store degrades to plain storage with a logged warning.
func New(dsn string, embedder llm.EmbeddingGenerator) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: failed to ping database: %w", err)
	}

	s := &Store{db: db, embedder: embedder}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: failed to apply schema: %w", err)
	}

	if _, err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		log.Printf("postgres: pgvector extension not available (embeddings disabled): %v", err)
	} else if _, err := db.Exec(migrationVector); err != nil {
		log.Printf("postgres: failed to add embedding column (embeddings disabled): %v", err)
	} else {
		s.pgvectorAvailable = true
	}

	return s, nil
}

// SaveRun stores a record batch as one dataset run and returns the run
// ID. When an embedder is configured and pgvector is available, each
// record's text is embedded and stored alongside it.
func (s *Store) SaveRun(ctx context.Context, records []types.SymptomRecord) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, created_at, count) VALUES ($1, $2, $3)",
		runID, time.Now().UTC(), len(records)); err != nil {
		return "", fmt.Errorf("postgres: failed to insert run: %w", err)
	}

	for i := range records {
		md, err := json.Marshal(records[i].Metadata)
		if err != nil {
			return "", fmt.Errorf("postgres: failed to encode metadata: %w", err)
		}

		recID := uuid.NewString()
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO records (id, run_id, text, label, metadata) VALUES ($1, $2, $3, $4, $5)",
			recID, runID, records[i].Text, records[i].Label, string(md)); err != nil {
			return "", fmt.Errorf("postgres: failed to insert record: %w", err)
		}

		if s.embedder != nil && s.pgvectorAvailable {
			vec, err := s.embedder.Embed(ctx, records[i].Text)
			if err != nil {
				// Embeddings are an enrichment, not part of the record
				// contract; keep the record and move on.
				log.Printf("postgres: failed to embed record %s: %v", recID, err)
				continue
			}
			if _, err := tx.ExecContext(ctx,
				"UPDATE records SET embedding = $1 WHERE id = $2",
				pgvector.NewVector(vec), recID); err != nil {
				return "", fmt.Errorf("postgres: failed to store embedding: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("postgres: failed to commit: %w", err)
	}
	return runID, nil
}

// SimilarRecords returns the stored records closest to the given text
// by cosine distance of their embeddings. Requires pgvector and a
// configured embedder.
func (s *Store) SimilarRecords(ctx context.Context, text string, limit int) ([]types.SymptomRecord, error) {
	if !s.pgvectorAvailable || s.embedder == nil {
		return nil, fmt.Errorf("postgres: similarity search requires pgvector and an embedder")
	}

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to embed query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT text, label, metadata
		FROM records
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2`,
		pgvector.NewVector(vec), limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: similarity query failed: %w", err)
	}
	defer rows.Close()

	var records []types.SymptomRecord
	for rows.Next() {
		var rec types.SymptomRecord
		var md []byte
		if err := rows.Scan(&rec.Text, &rec.Label, &md); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan record: %w", err)
		}
		if err := json.Unmarshal(md, &rec.Metadata); err != nil {
			return nil, fmt.Errorf("postgres: failed to decode metadata: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
