package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/yurist-tools/lawsplit/internal/api/handlers"
	"github.com/yurist-tools/lawsplit/internal/config"
	"github.com/yurist-tools/lawsplit/internal/core"
	"github.com/yurist-tools/lawsplit/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, svc *services.JobService, nlp core.Linguist) *Server {
	jobHandler := handlers.NewJobHandler(svc, nlp, cfg.MaxUploadMB)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Processing runs in background workers; the timeout only bounds
	// the synchronous part of a request (upload persist, file serve).
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Post("/upload", jobHandler.Upload)
	r.Get("/status/{job_id}", jobHandler.Status)
	r.Get("/download/{job_id}", jobHandler.Download)
	r.Get("/health", jobHandler.Health)
	r.Get("/api", jobHandler.Info)

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
