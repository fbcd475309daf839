// Package store persists act chunks in Postgres with pgvector similarity
// search.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/societydesk/actbot/internal/model"
)

type PgStore struct {
	db *sql.DB
}

func NewPgStore(conn string, dim int) (*PgStore, error) {
	db, err := sql.Open("postgres", conn)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db, dim); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PgStore{db: db}, nil
}

// Insert writes one chunk record. Chunks are immutable once written.
func (s *PgStore) Insert(ctx context.Context, c model.Chunk) error {
	meta, err := json.Marshal(c.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO mcs_documents (content, metadata, embedding)
		VALUES ($1, $2, $3::vector)
	`, c.Content, meta, pgvector.NewVector(c.Embedding))
	return err
}

// SimilaritySearch returns up to limit chunks whose cosine similarity to q
// exceeds threshold, most similar first.
func (s *PgStore) SimilaritySearch(ctx context.Context, q []float32, threshold float64, limit int) ([]model.RetrievedDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT content, metadata, 1 - (embedding <=> $1::vector) AS similarity
		FROM mcs_documents
		WHERE 1 - (embedding <=> $1::vector) > $2
		ORDER BY similarity DESC
		LIMIT $3
	`, pgvector.NewVector(q), threshold, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.RetrievedDocument
	for rows.Next() {
		var (
			doc  model.RetrievedDocument
			meta []byte
		)
		if err := rows.Scan(&doc.Content, &meta, &doc.Similarity); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(meta, &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// ScanAll returns up to limit arbitrary chunks with no similarity ranking.
// It backs the degraded retrieval path when similarity search is unavailable.
func (s *PgStore) ScanAll(ctx context.Context, limit int) ([]model.RetrievedDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT content, metadata
		FROM mcs_documents
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.RetrievedDocument
	for rows.Next() {
		var (
			doc  model.RetrievedDocument
			meta []byte
		)
		if err := rows.Scan(&doc.Content, &meta); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(meta, &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Close releases the underlying connection pool.
func (s *PgStore) Close() error { return s.db.Close() }
