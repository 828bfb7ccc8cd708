package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/VyomThaker-2154/Documind-ai/internal/config"
	"github.com/VyomThaker-2154/Documind-ai/internal/llm"
	"github.com/VyomThaker-2154/Documind-ai/internal/processor"
	"github.com/VyomThaker-2154/Documind-ai/internal/session"
	"github.com/VyomThaker-2154/Documind-ai/internal/store"
)

// Server is the HTTP API for document processing and chat.
type Server struct {
	router    chi.Router
	processor *processor.Processor
	session   *session.Session
	store     *store.Store
	stats     *llm.Stats
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(proc *processor.Processor, sess *session.Session, st *store.Store,
	stats *llm.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		processor: proc,
		session:   sess,
		store:     st,
		stats:     stats,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/upload", s.handleUpload)
	r.Post("/chat", s.handleChat)
	r.Get("/api/history", s.handleHistory)
	r.Get("/api/stats/llm", s.handleLLMStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
