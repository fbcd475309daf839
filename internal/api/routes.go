package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/societydesk/actbot/internal/ingest"
	"github.com/societydesk/actbot/internal/rag"
)

func RegisterRoutes(app *fiber.App, svc *rag.Service, pipeline *ingest.Pipeline, pdfDir string, logger *zap.Logger) {
	h := NewHandler(svc, pipeline, pdfDir, logger)

	app.Get("/", h.Root)
	app.Get("/api/health", h.Health)
	app.Post("/api/chat", h.Chat)
	app.Post("/api/report", h.Report)
	app.Post("/api/ingest", h.Ingest)
}
