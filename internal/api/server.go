package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/svgpress/svgpress/internal/config"
	"github.com/svgpress/svgpress/internal/inkscape"
	"github.com/svgpress/svgpress/internal/pipeline"
)

// Server is the HTTP API for the conversion service.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	runner       *inkscape.Runner
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, runner *inkscape.Runner, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		runner:       runner,
		log:          log,
		cfg:          cfg,
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

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleDocs)

	// API endpoints, authenticated when a key is configured.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/convert", s.handleConvert)
		r.Get("/api/convert/{jobID}/status", s.handleConvertStatus)
		r.Get("/api/convert/{jobID}/pdf", s.handleConvertPDF)
		r.Get("/api/inkscape", s.handleInkscape)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleInkscape reports whether the external renderer is usable.
func (s *Server) handleInkscape(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"available": s.runner.IsAvailable(),
	}
	if version, err := s.runner.Version(r.Context()); err == nil {
		resp["version"] = version
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
