package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/savegress/vitalscope/internal/config"
	"github.com/savegress/vitalscope/internal/insights"
	"github.com/savegress/vitalscope/internal/population"
)

// Server represents the API server
type Server struct {
	config   *config.Config
	router   chi.Router
	handlers *Handlers
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, svc *insights.Service, pop *population.Analyzer, thresholds *config.Manager) *Server {
	s := &Server{
		config:   cfg,
		router:   chi.NewRouter(),
		handlers: NewHandlers(svc, pop, thresholds),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handlers.HealthCheck)

	s.router.Route("/api/v1/vitalscope", func(r chi.Router) {
		// Per-patient analytics
		r.Route("/insights", func(r chi.Router) {
			r.Post("/", s.handlers.PatientInsight)
			r.Post("/batch", s.handlers.BatchInsights)
		})

		r.Post("/statistics", s.handlers.Statistics)

		// Cohort analytics
		r.Post("/population", s.handlers.PopulationInsights)

		// Threshold configuration
		r.Route("/config", func(r chi.Router) {
			r.Get("/", s.handlers.GetConfiguration)
			r.Patch("/", s.handlers.UpdateConfiguration)
		})
	})
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.router
}
