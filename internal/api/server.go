package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
	"github.com/rcrowley/go-metrics"
	"github.com/rcrowley/go-metrics/exp"
	httpSwagger "github.com/swaggo/http-swagger"

	api "historian/internal/api/application"
	"historian/internal/api/handlers"
	apimiddleware "historian/internal/api/middleware"
	configapp "historian/internal/config/application"
	configdomain "historian/internal/config/domain"
	sharedlogger "historian/internal/shared/logger"
	statsdomain "historian/internal/statistics/domain"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
	logger     sharedlogger.Logger
}

// NewServer creates a new API server. Every request is fed to recorder; the
// registry is exposed read-only under /api/v1/runtime.
func NewServer(
	logger sharedlogger.Logger,
	runtimeCfg *configapp.RuntimeConfig,
	statsCfg configdomain.StatisticsConfig,
	repo statsdomain.Repository,
	recorder apimiddleware.RequestRecorder,
	registry metrics.Registry,
) (*Server, error) {
	apiKey := runtimeCfg.APIKey
	if apiKey == "" && !runtimeCfg.DevMode {
		return nil, fmt.Errorf("API key is required (set HISTORIAN_API_KEY or use --api-key flag)")
	}

	// Initialize services
	statisticsService := api.NewStatisticsService(repo, statsCfg)

	// Initialize handlers
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService, logger)
	runtimeHandler := exp.ExpHandler(registry)

	// Setup chi router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(apimiddleware.Statistics(recorder))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	// HTTP logging middleware - need concrete slog.Logger for httplog
	var slogLogger *slog.Logger
	if infraLogger, ok := logger.(interface{ SLog() *slog.Logger }); ok {
		slogLogger = infraLogger.SLog()
	} else {
		slogLogger = slog.Default()
	}

	r.Use(httplog.RequestLogger(slogLogger, &httplog.Options{
		Level:             slog.LevelDebug,
		Schema:            httplog.SchemaECS.Concise(true),
		LogRequestHeaders: []string{}, // Log no headers by default to reduce verbosity
	}))

	r.With(apimiddleware.HandlerStart).Get("/healthz", handlers.Health)

	// Swagger UI (only in dev mode, no auth required)
	if runtimeCfg.DevMode {
		swaggerHandler := httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		)
		r.Handle("/swagger/*", swaggerHandler)
		r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
		})
	}

	// API v1 routes (with authentication)
	r.Route("/api/v1", func(r chi.Router) {
		if apiKey != "" {
			r.Use(apimiddleware.APIKeyAuthWithKey(apiKey))
		}
		r.Use(apimiddleware.HandlerStart)

		r.Get("/statistics/raw", statisticsHandler.ListRaw)
		r.Get("/statistics/per-second", statisticsHandler.ListPerSecond)
		r.Get("/statistics/window", statisticsHandler.ListWindow)
		r.Get("/statistics/settings", statisticsHandler.Settings)
		r.Get("/runtime", runtimeHandler.ServeHTTP)
	})

	httpServer := &http.Server{
		Addr:         ":" + runtimeCfg.APIPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Debug("Server configured",
		"port", runtimeCfg.APIPort,
		"dev_mode", runtimeCfg.DevMode,
		"auth", apiKey != "",
		"middleware", []string{"Statistics", "RequestID", "RealIP", "Recoverer", "GetHead", "httplog"},
	)

	return &Server{
		httpServer: httpServer,
		logger:     logger,
	}, nil
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.Error("Server error", "err", err)
	}
	return err
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Server shutdown error", "err", err)
	} else {
		s.logger.Info("Server shutdown complete")
	}
	return err
}
