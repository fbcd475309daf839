package store

import (
	"database/sql"
	"fmt"
)

// ensureSchema creates the pgvector extension, the documents table and the
// cosine ivfflat index.
func ensureSchema(db *sql.DB, dim int) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS mcs_documents (
			id SERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			metadata JSONB NOT NULL,
			embedding vector(%d)
		)`, dim),
		`DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_class c
				JOIN pg_namespace n ON n.oid=c.relnamespace
				WHERE c.relname='mcs_documents_embedding_ivfflat_idx'
			) THEN
				EXECUTE 'CREATE INDEX mcs_documents_embedding_ivfflat_idx ON mcs_documents USING ivfflat (embedding vector_cosine_ops) WITH (lists=100)';
			END IF;
		END $$;`,
	}

	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}

	// ANALYZE so ivfflat planning works on a fresh table
	_, _ = db.Exec(`ANALYZE mcs_documents`)
	return nil
}
