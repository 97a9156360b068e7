// Package server provides HTTP server management and lifecycle handling for
// the clinical API. It includes server setup, middleware configuration,
// route management, and graceful shutdown capabilities with proper error
// handling and logging.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/darwin-mfc/clinical-api/config"
	"github.com/darwin-mfc/clinical-api/handlers"
	"github.com/darwin-mfc/clinical-api/interfaces"
	"github.com/darwin-mfc/clinical-api/logging"
	"github.com/darwin-mfc/clinical-api/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server.
type Server struct {
	server  *http.Server
	router  chi.Router
	handler *handlers.Handler
	checker interfaces.HealthChecker
	config  *config.Config
}

// NewServer creates a new server instance wired to the given handler and
// health checker.
func NewServer(cfg *config.Config, handler *handlers.Handler, checker interfaces.HealthChecker) *Server {
	router := chi.NewRouter()

	server := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:  router,
		handler: handler,
		checker: checker,
		config:  cfg,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures all middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.DefaultLoggingService.Logger))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(RateLimitHandler)
	s.router.Use(metrics.Metrics)
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	s.router.Route("/diseases", func(r chi.Router) {
		r.Get("/", s.handler.ListDiseases)
		r.Get("/categories", s.handler.DiseaseCategories)
		r.Get("/{id}", s.handler.GetDisease)
		r.Get("/{id}/cross-references", s.handler.DiseaseCrossReferences)
	})

	s.router.Route("/medications", func(r chi.Router) {
		r.Get("/", s.handler.ListMedications)
		r.Get("/classes", s.handler.MedicationClasses)
		r.Post("/interactions", s.handler.CheckInteractions)
		r.Get("/{id}", s.handler.GetMedication)
		r.Get("/{id}/interactions", s.handler.MedicationInteractions)
		r.Get("/{id}/diseases", s.handler.MedicationDiseases)
	})

	s.router.Route("/protocols", func(r chi.Router) {
		r.Get("/", s.handler.ListProtocols)
		r.Get("/{id}", s.handler.GetProtocol)
	})

	s.router.Route("/calculators", func(r chi.Router) {
		r.Get("/", s.handler.ListCalculators)
		r.Get("/{id}", s.handler.GetCalculator)
	})

	s.router.Route("/screenings", func(r chi.Router) {
		r.Get("/", s.handler.ListScreenings)
		r.Get("/{id}", s.handler.GetScreening)
	})

	s.router.Get("/health", handlers.HealthHandler(s.checker))
	s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// Start starts the server.
func (s *Server) Start() error {
	// Start profiling server if in development mode
	if s.config.Env == "dev" {
		s.startProfilingServer()
	}

	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}

// startProfilingServer starts the pprof profiling server in development mode.
func (s *Server) startProfilingServer() {
	go func() {
		logging.Info("Profiling server started at http://localhost:6060/debug/pprof/")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			logging.Error("Profiling server failed", "error", err)
		}
	}()
}
