// Package ingest loads act PDFs into the vector store as embedded chunks.
// It runs as an offline batch step, not part of the query path.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/societydesk/actbot/internal/chunk"
	"github.com/societydesk/actbot/internal/embed"
	"github.com/societydesk/actbot/internal/model"
	"github.com/societydesk/actbot/internal/pdfx"
)

// ExtractFunc pulls best-effort text out of a document file.
type ExtractFunc func(path string) (string, error)

// Store is the write surface of the vector store.
type Store interface {
	Insert(ctx context.Context, c model.Chunk) error
}

// Summary reports what a batch run accomplished. Partial success is normal:
// individual chunk and file failures are logged and skipped.
type Summary struct {
	FilesFound     int
	FilesProcessed int
	ChunksUploaded int
}

// FileResult reports the outcome of ingesting one document.
type FileResult struct {
	Filename       string `json:"filename"`
	ChunksTotal    int    `json:"chunks_total"`
	ChunksUploaded int    `json:"chunks_uploaded"`
}

type Pipeline struct {
	extract  ExtractFunc
	splitter *chunk.Splitter
	embedder embed.Embedder
	store    Store
	logger   *zap.Logger
}

func New(extract ExtractFunc, splitter *chunk.Splitter, embedder embed.Embedder, store Store, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		extract:  extract,
		splitter: splitter,
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Run ingests every *.pdf under dir. Only an unreadable input directory is
// fatal; any per-file or per-chunk failure is logged and skipped so one bad
// document never aborts the batch.
func (p *Pipeline) Run(ctx context.Context, dir string) (*Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory %s: %w", dir, err)
	}

	sum := &Summary{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		sum.FilesFound++

		res, err := p.IngestFile(ctx, filepath.Join(dir, e.Name()))
		if err != nil {
			p.logger.Error("skipping file", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		sum.FilesProcessed++
		sum.ChunksUploaded += res.ChunksUploaded
	}

	p.logger.Info("ingestion complete",
		zap.Int("files_found", sum.FilesFound),
		zap.Int("files_processed", sum.FilesProcessed),
		zap.Int("chunks_uploaded", sum.ChunksUploaded))
	return sum, nil
}

// IngestFile extracts, chunks, embeds and stores one document. Chunks that
// fail to embed or store are logged and skipped.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (*FileResult, error) {
	name := filepath.Base(path)

	text, err := p.extract(path)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	text = pdfx.Sanitize(text)
	if text == "" {
		return nil, fmt.Errorf("no text extracted from %s", name)
	}

	parts := p.splitter.Split(text)
	res := &FileResult{Filename: name, ChunksTotal: len(parts)}

	for i, part := range parts {
		vec, err := p.embedder.Embed(ctx, part, embed.ModeDocument)
		if err != nil {
			p.logger.Warn("skipping chunk, embedding failed",
				zap.String("file", name), zap.Int("chunk_id", i+1), zap.Error(err))
			continue
		}

		c := model.Chunk{
			Content: part,
			Metadata: model.ChunkMetadata{
				Filename:    name,
				ChunkID:     i + 1,
				TotalChunks: len(parts),
			},
			Embedding: vec,
		}
		if err := p.store.Insert(ctx, c); err != nil {
			p.logger.Warn("skipping chunk, store insert failed",
				zap.String("file", name), zap.Int("chunk_id", i+1), zap.Error(err))
			continue
		}
		res.ChunksUploaded++
	}

	p.logger.Info("file ingested",
		zap.String("file", name),
		zap.Int("chunks_total", res.ChunksTotal),
		zap.Int("chunks_uploaded", res.ChunksUploaded))
	return res, nil
}
