// Command ingest loads a directory of act PDFs into the vector store. It is
// the offline half of the system; run it whenever the document corpus
// changes.
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/societydesk/actbot/internal/chunk"
	"github.com/societydesk/actbot/internal/config"
	"github.com/societydesk/actbot/internal/embed"
	"github.com/societydesk/actbot/internal/ingest"
	"github.com/societydesk/actbot/internal/pdfx"
	"github.com/societydesk/actbot/internal/store"
)

func main() {
	dir := flag.String("dir", "", "directory of PDF files (defaults to PDF_DIR)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	if *dir == "" {
		*dir = cfg.PDFDir
	}

	ctx := context.Background()

	dbStore, err := store.NewPgStore(cfg.PgConn, cfg.EmbedDim)
	if err != nil {
		logger.Fatal("connect store", zap.Error(err))
	}
	defer dbStore.Close()

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Fatal("gemini client", zap.Error(err))
	}
	embedder := embed.NewGemini(genaiClient, cfg.EmbedModel, cfg.EmbedDim)

	splitter, err := chunk.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		logger.Fatal("chunker", zap.Error(err))
	}

	pipeline := ingest.New(pdfx.ExtractText, splitter, embedder, dbStore, logger)
	sum, err := pipeline.Run(ctx, *dir)
	if err != nil {
		logger.Fatal("ingestion run", zap.Error(err))
	}

	logger.Info("done",
		zap.Int("files_found", sum.FilesFound),
		zap.Int("files_processed", sum.FilesProcessed),
		zap.Int("chunks_uploaded", sum.ChunksUploaded))
}
