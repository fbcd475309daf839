package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/societydesk/actbot/internal/api"
	"github.com/societydesk/actbot/internal/chunk"
	"github.com/societydesk/actbot/internal/config"
	"github.com/societydesk/actbot/internal/embed"
	"github.com/societydesk/actbot/internal/ingest"
	"github.com/societydesk/actbot/internal/llm"
	"github.com/societydesk/actbot/internal/pdfx"
	"github.com/societydesk/actbot/internal/rag"
	"github.com/societydesk/actbot/internal/resources"
	"github.com/societydesk/actbot/internal/retriever"
	"github.com/societydesk/actbot/internal/simplify"
	"github.com/societydesk/actbot/internal/store"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
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
	retr := retriever.New(embedder, dbStore, logger)

	generator := llm.NewGenerator([]llm.Provider{
		llm.NewGroq(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel),
		llm.NewGemini(genaiClient, cfg.GeminiModel),
	}, logger)

	matcher, err := resources.Load()
	if err != nil {
		logger.Fatal("resource bundles", zap.Error(err))
	}

	svc := rag.NewService(retr, generator, simplify.New(), matcher, cfg.TopK, logger)

	splitter, err := chunk.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		logger.Fatal("chunker", zap.Error(err))
	}
	pipeline := ingest.New(pdfx.ExtractText, splitter, embedder, dbStore, logger)

	app := fiber.New()
	api.RegisterRoutes(app, svc, pipeline, cfg.PDFDir, logger)

	logger.Info("server started", zap.String("addr", cfg.ServerAddr))
	if err := app.Listen(cfg.ServerAddr); err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
}
