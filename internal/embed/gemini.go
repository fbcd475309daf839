package embed

import (
	"context"
	"fmt"
	"math"

	"google.golang.org/genai"
)

// GeminiEmbedder produces embeddings through the Gemini embedding API
// (text-embedding-004, 768 dimensions by default).
type GeminiEmbedder struct {
	client *genai.Client
	model  string
	dim    int
}

func NewGemini(client *genai.Client, model string, dim int) *GeminiEmbedder {
	return &GeminiEmbedder{client: client, model: model, dim: dim}
}

func (e *GeminiEmbedder) Dimension() int { return e.dim }

// Embed returns the vector for text under the given task mode. The vector is
// validated against the configured dimensionality before it is returned.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string, mode Mode) ([]float32, error) {
	resp, err := e.client.Models.EmbedContent(ctx, e.model,
		genai.Text(text),
		&genai.EmbedContentConfig{TaskType: string(mode)},
	)
	if err != nil {
		return nil, &Error{Reason: "embedding service call", Err: err}
	}
	if len(resp.Embeddings) == 0 {
		return nil, &Error{Reason: "service returned no embeddings"}
	}

	vec := resp.Embeddings[0].Values
	if len(vec) != e.dim {
		return nil, &Error{Reason: fmt.Sprintf("expected %d dimensions, got %d", e.dim, len(vec))}
	}
	for i, v := range vec {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, &Error{Reason: fmt.Sprintf("non-numeric value at dimension %d", i)}
		}
	}
	return vec, nil
}
