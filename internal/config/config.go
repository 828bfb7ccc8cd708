package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Groq (OpenAI-compatible) API
	GroqAPIKey     string
	GroqBaseURL    string
	ChatModel      string
	EmbeddingModel string

	// Upload limits
	MaxUploadBytes int64

	// Chunking
	ChunkSize    int
	ChunkOverlap int

	// Retrieval
	RetrievalK   int
	MaxCtxTokens int

	// Visual extraction
	OCRDPI int

	// Persistence
	StorageDir string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first, without overriding real env vars.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8000"),

		GroqAPIKey:     os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:    envOr("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		ChatModel:      envOr("CHAT_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
		EmbeddingModel: envOr("EMBEDDING_MODEL", "all-MiniLM-L6-v2"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10*1024*1024), // 10MB

		ChunkSize:    envInt("CHUNK_SIZE", 1500),
		ChunkOverlap: envInt("CHUNK_OVERLAP", 200),

		RetrievalK:   envInt("RETRIEVAL_K", 4),
		MaxCtxTokens: envInt("MAX_CONTEXT_TOKENS", 4000),

		OCRDPI: envInt("OCR_DPI", 300),

		StorageDir: envOr("STORAGE_DIR", "extracted_data"),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 * 1024 * 1024
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1500
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = 200
	}
	if cfg.RetrievalK <= 0 {
		cfg.RetrievalK = 4
	}
	if cfg.MaxCtxTokens <= 0 {
		cfg.MaxCtxTokens = 4000
	}
	if cfg.OCRDPI <= 0 {
		cfg.OCRDPI = 300
	}

	return cfg
}

func (c Config) Validate() error {
	if c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
