// Package rag orchestrates the answer pipeline: retrieve relevant act
// chunks, generate a grounded answer, simplify jargon, attach official
// links.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/societydesk/actbot/internal/model"
	"github.com/societydesk/actbot/internal/resources"
	"github.com/societydesk/actbot/internal/retriever"
	"github.com/societydesk/actbot/internal/simplify"
	"github.com/societydesk/actbot/internal/util"
)

// ErrEmptyQuestion rejects blank questions at the boundary; they never reach
// the pipeline.
var ErrEmptyQuestion = errors.New("question cannot be empty")

// noDocumentsAnswer is the canned response when retrieval comes back empty.
// An empty store is a user-visible situation, not an error.
const noDocumentsAnswer = "I couldn't find any relevant information in the MCS Act documents. " +
	"Please try rephrasing your question or ensure that PDFs have been processed and uploaded to the database."

// Retriever finds chunks relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) (*retriever.Result, error)
}

// Generator produces an answer grounded in retrieved context.
type Generator interface {
	Generate(ctx context.Context, question, contextText string) (string, error)
}

// Service is the core exposed to the HTTP layer.
type Service struct {
	retriever  Retriever
	generator  Generator
	simplifier *simplify.Simplifier
	matcher    *resources.Matcher
	topK       int
	logger     *zap.Logger
}

func NewService(r Retriever, g Generator, s *simplify.Simplifier, m *resources.Matcher, topK int, logger *zap.Logger) *Service {
	if topK <= 0 {
		topK = 3
	}
	return &Service{
		retriever:  r,
		generator:  g,
		simplifier: s,
		matcher:    m,
		topK:       topK,
		logger:     logger,
	}
}

// Answer runs the full pipeline for one question and assembles the response
// payload. No documents found yields the canned answer with general links
// rather than an error.
func (s *Service) Answer(ctx context.Context, question string) (*model.ResponsePayload, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return nil, ErrEmptyQuestion
	}
	s.logger.Info("answering question", zap.String("question", util.TruncateRunes(q, 80)))

	res, err := s.retriever.Retrieve(ctx, q, s.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}
	if res.Degraded {
		s.logger.Warn("answering from degraded retrieval, results are not similarity ranked",
			zap.Int("documents", len(res.Documents)))
	}

	if len(res.Documents) == 0 {
		return &model.ResponsePayload{
			Answer:       noDocumentsAnswer,
			Sources:      []model.Source{},
			RelatedLinks: s.matcher.Match(q, ""),
		}, nil
	}

	contextText, sources := buildContext(res.Documents)

	answer, err := s.generator.Generate(ctx, q, contextText)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	answer = s.simplifier.Apply(answer)

	return &model.ResponsePayload{
		Answer:       answer,
		Sources:      sources,
		RelatedLinks: s.matcher.Match(q, contextText),
	}, nil
}

// buildContext concatenates retrieved chunks into the prompt context and
// collects the source attributions in the same order.
func buildContext(docs []model.RetrievedDocument) (string, []model.Source) {
	parts := make([]string, 0, len(docs))
	sources := make([]model.Source, 0, len(docs))
	for i, d := range docs {
		parts = append(parts, fmt.Sprintf("[Document %d]\n%s", i+1, d.Content))

		name := d.Metadata.Filename
		if name == "" {
			name = "Unknown"
		}
		chunkID := d.Metadata.ChunkID
		if chunkID == 0 {
			chunkID = i + 1
		}
		sources = append(sources, model.Source{
			Filename:    name,
			ChunkID:     chunkID,
			TotalChunks: d.Metadata.TotalChunks,
		})
	}
	return strings.Join(parts, "\n\n"), sources
}
