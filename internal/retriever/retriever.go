// Package retriever finds act chunks relevant to a question.
package retriever

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/societydesk/actbot/internal/embed"
	"github.com/societydesk/actbot/internal/model"
)

// SimilarityThreshold is the minimum cosine similarity for a chunk to count
// as relevant on the ranked path.
const SimilarityThreshold = 0.5

// Store is the vector store surface the retriever needs.
type Store interface {
	SimilaritySearch(ctx context.Context, q []float32, threshold float64, limit int) ([]model.RetrievedDocument, error)
	ScanAll(ctx context.Context, limit int) ([]model.RetrievedDocument, error)
}

// Result carries retrieved documents ordered by decreasing similarity.
// Degraded marks results from the unranked fallback scan, which carry no
// similarity guarantee.
type Result struct {
	Documents []model.RetrievedDocument
	Degraded  bool
}

// Error reports a retrieval failure where both the ranked search and the
// fallback scan were unusable.
type Error struct {
	Primary  error
	Fallback error
}

func (e *Error) Error() string {
	return fmt.Sprintf("retrieval failed: similarity search: %v; fallback scan: %v", e.Primary, e.Fallback)
}

func (e *Error) Unwrap() error { return e.Fallback }

type Retriever struct {
	embedder embed.Embedder
	store    Store
	logger   *zap.Logger
}

func New(embedder embed.Embedder, store Store, logger *zap.Logger) *Retriever {
	return &Retriever{embedder: embedder, store: store, logger: logger}
}

// Retrieve embeds the query and returns the topK most similar chunks above
// the similarity threshold. When the similarity search is unavailable it
// falls back to an unranked scan so the system keeps answering during
// partial outages; such results are flagged Degraded and logged at WARN.
// An empty store yields an empty result, not an error. A query embedding
// failure is fatal: no fallback can bypass the need for a query vector.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) (*Result, error) {
	vec, err := r.embedder.Embed(ctx, query, embed.ModeQuery)
	if err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}

	docs, primaryErr := r.store.SimilaritySearch(ctx, vec, SimilarityThreshold, topK)
	if primaryErr == nil {
		return &Result{Documents: docs}, nil
	}

	r.logger.Warn("similarity search unavailable, falling back to unranked scan",
		zap.Error(primaryErr))

	docs, fallbackErr := r.store.ScanAll(ctx, topK)
	if fallbackErr != nil {
		return nil, &Error{Primary: primaryErr, Fallback: fallbackErr}
	}
	return &Result{Documents: docs, Degraded: true}, nil
}
