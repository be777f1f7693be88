// Package server provides the JSON API HTTP server
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mealforge/v1/internal/application/household"
	"github.com/mealforge/v1/internal/application/planner"
	"github.com/mealforge/v1/internal/infrastructure/config"
	"github.com/mealforge/v1/internal/infrastructure/http/handlers"
	"github.com/mealforge/v1/internal/infrastructure/http/middleware"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	router  *chi.Mux
	server  *http.Server
	metrics *monitoring.Metrics

	plannerService   *planner.Service
	householdService *household.Service
	db               *gorm.DB
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	metrics *monitoring.Metrics,
	plannerService *planner.Service,
	householdService *household.Service,
	db *gorm.DB,
) *Server {
	s := &Server{
		config:           cfg,
		logger:           logger,
		metrics:          metrics,
		plannerService:   plannerService,
		householdService: householdService,
		db:               db,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupRoutes configures the JSON API routes
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.Metrics(s.metrics))
	r.Use(middleware.RateLimit(s.config.Server.RateLimitPerMin, s.config.Server.RateLimitBurst))
	r.Use(chimiddleware.Timeout(s.config.Server.WriteTimeout))
	r.Use(middleware.JSONOnly())

	healthH := handlers.NewHealthHandlers(s.db, s.logger)
	r.Get("/health", healthH.Health)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *Server) setupAPIV1Routes(r chi.Router) {
	plannerH := handlers.NewPlannerHandlers(s.plannerService, s.logger)
	planH := handlers.NewPlanHandlers(s.householdService, s.logger)
	inventoryH := handlers.NewInventoryHandlers(s.householdService, s.logger)
	trackingH := handlers.NewTrackingHandlers(s.householdService, s.config.Planner.DefaultCalorieGoal, s.logger)

	r.Post("/suggestions", plannerH.Suggest)

	r.Route("/plan", func(r chi.Router) {
		r.Post("/week", plannerH.GenerateWeek)
		r.Get("/week", planH.GetWeek)
		r.Delete("/week", planH.ClearWeek)
	})

	r.Route("/shopping-list", func(r chi.Router) {
		r.Get("/", planH.ListShopping)
		r.Post("/generate", plannerH.GenerateShopping)
		r.Post("/{name}/purchased", planH.SetPurchased)
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", inventoryH.List)
		r.Put("/", inventoryH.Upsert)
		r.Post("/{name}/adjust", inventoryH.Adjust)
		r.Delete("/{name}", inventoryH.Delete)
	})

	r.Route("/history", func(r chi.Router) {
		r.Get("/", trackingH.ListHistory)
		r.Post("/", trackingH.RecordMeal)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", trackingH.ListReviews)
		r.Put("/", trackingH.UpsertReview)
	})

	r.Route("/preferences", func(r chi.Router) {
		r.Get("/calorie-goal", trackingH.GetCalorieGoal)
		r.Put("/calorie-goal", trackingH.SetCalorieGoal)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("addr", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
