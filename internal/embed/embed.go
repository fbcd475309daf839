// Package embed converts text into fixed-dimension vectors for similarity
// search.
package embed

import (
	"context"
	"fmt"
)

// Mode selects the task hint passed to the embedding model. Asymmetric models
// return different vectors for queries and documents.
type Mode string

const (
	// ModeQuery embeds a user question for retrieval.
	ModeQuery Mode = "RETRIEVAL_QUERY"
	// ModeDocument embeds stored act text for retrieval.
	ModeDocument Mode = "RETRIEVAL_DOCUMENT"
)

// Embedder converts text into a numeric vector representation.
type Embedder interface {
	Embed(ctx context.Context, text string, mode Mode) ([]float32, error)
	Dimension() int
}

// Error reports an embedding failure: the service was unreachable or returned
// a malformed vector. Callers decide whether to retry.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("embedding failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("embedding failed: %s", e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }
