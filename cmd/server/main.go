package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VyomThaker-2154/Documind-ai/internal/api"
	"github.com/VyomThaker-2154/Documind-ai/internal/config"
	"github.com/VyomThaker-2154/Documind-ai/internal/llm"
	"github.com/VyomThaker-2154/Documind-ai/internal/ocr"
	"github.com/VyomThaker-2154/Documind-ai/internal/pdfio"
	"github.com/VyomThaker-2154/Documind-ai/internal/processor"
	"github.com/VyomThaker-2154/Documind-ai/internal/session"
	"github.com/VyomThaker-2154/Documind-ai/internal/store"
	"github.com/VyomThaker-2154/Documind-ai/internal/structure"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize clients and structurers.
	groq := llm.NewClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.ChatModel, cfg.EmbeddingModel)
	tables := structure.NewTableStructurer(groq, log)
	visual := structure.NewVisualStructurer(pdfio.RasterizePages, ocr.Tesseract{}, cfg.OCRDPI, log)

	proc := processor.New(processor.DefaultPageSource(), tables, visual, groq, groq, processor.Options{
		MaxFileBytes: cfg.MaxUploadBytes,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		RetrievalK:   cfg.RetrievalK,
		MaxCtxTokens: cfg.MaxCtxTokens,
	}, log)

	st, err := store.New(cfg.StorageDir)
	if err != nil {
		log.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}

	sess := session.New()

	// Initialize HTTP server.
	srv := api.NewServer(proc, sess, st, groq.Stats(), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting documind", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
