package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string
	PgConn     string

	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	GeminiAPIKey string
	GeminiModel  string

	EmbedModel string
	EmbedDim   int

	ChunkSize    int
	ChunkOverlap int
	TopK         int

	PDFDir string
}

// Load reads configuration from the environment after a best-effort .env
// load. Missing credentials and an unusable chunking setup are caught here,
// at startup, not mid-request.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr:   getenv("SERVER_ADDR", ":8080"),
		PgConn:       getenv("PG_CONN", "host=localhost port=5432 user=postgres password=postgres dbname=mcs_act sslmode=disable"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:  getenv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:    getenv("GROQ_MODEL", "llama-3.1-8b-instant"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getenv("GEMINI_MODEL", "gemini-1.5-flash-8b"),
		EmbedModel:   getenv("EMBED_MODEL", "text-embedding-004"),
		EmbedDim:     getenvInt("EMBED_DIM", 768),
		ChunkSize:    getenvInt("CHUNK_SIZE", 500),
		ChunkOverlap: getenvInt("CHUNK_OVERLAP", 50),
		TopK:         getenvInt("TOP_K", 3),
		PDFDir:       getenv("PDF_DIR", "data/pdfs"),
	}

	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", cfg.ChunkOverlap, cfg.ChunkSize)
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
