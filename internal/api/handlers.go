package api

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/societydesk/actbot/internal/ingest"
	"github.com/societydesk/actbot/internal/model"
	"github.com/societydesk/actbot/internal/rag"
	"github.com/societydesk/actbot/internal/util"
)

// Handler holds the dependencies of the HTTP layer.
type Handler struct {
	rag      *rag.Service
	pipeline *ingest.Pipeline
	pdfDir   string
	logger   *zap.Logger
}

func NewHandler(svc *rag.Service, pipeline *ingest.Pipeline, pdfDir string, logger *zap.Logger) *Handler {
	return &Handler{rag: svc, pipeline: pipeline, pdfDir: pdfDir, logger: logger}
}

// Chat answers one question with retrieval-augmented generation.
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req model.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request, expected JSON: {\"question\":\"...\"}"})
	}

	resp, err := h.rag.Answer(c.UserContext(), req.Question)
	if err != nil {
		if errors.Is(err, rag.ErrEmptyQuestion) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "question cannot be empty"})
		}
		// detailed diagnostics stay server-side
		h.logger.Error("chat failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(resp)
}

// Report streams a downloadable report of the act sections relevant to a
// question.
func (h *Handler) Report(c *fiber.Ctx) error {
	var req model.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request, expected JSON: {\"question\":\"...\"}"})
	}

	rep, err := h.rag.BuildReport(c.UserContext(), req.Question)
	if err != nil {
		switch {
		case errors.Is(err, rag.ErrEmptyQuestion):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "question cannot be empty"})
		case errors.Is(err, rag.ErrNoDocuments):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no relevant information found for this query"})
		default:
			h.logger.Error("report failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=MCS_Act_Info.txt`)
	return c.SendString(rep.Render())
}

// Ingest accepts one uploaded PDF and runs it through the ingestion
// pipeline.
func (h *Handler) Ingest(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required (form field: file)"})
	}

	if err := os.MkdirAll(h.pdfDir, 0o755); err != nil {
		h.logger.Error("prepare upload dir failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to prepare storage"})
	}
	savePath := filepath.Join(h.pdfDir, util.Timestamped(file.Filename))
	if err := c.SaveFile(file, savePath); err != nil {
		h.logger.Error("save upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save file"})
	}

	res, err := h.pipeline.IngestFile(c.UserContext(), savePath)
	if err != nil {
		h.logger.Error("ingest failed", zap.String("file", file.Filename), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to extract text from pdf"})
	}

	return c.JSON(fiber.Map{
		"status":          "ok",
		"doc":             res.Filename,
		"chunks_total":    res.ChunksTotal,
		"chunks_uploaded": res.ChunksUploaded,
	})
}

// Health reports service liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}

// Root describes the API.
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "MCS Act Assistant API",
		"version": "1.0.0",
	})
}
