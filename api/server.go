// Package api provides the HTTP API server for the valuation calculator.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"valuation-calc/decision/valuation"
	"valuation-calc/pkg/platform"
)

// Version is reported by /health and /version.
var Version = "dev"

// Server is the HTTP API server
type Server struct {
	httpServer *http.Server
	config     *Config
	logger     zerolog.Logger
	startedAt  time.Time
}

// Config holds server configuration
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	MaxRequestSize int64
	// APIKey, when set, is required in the X-API-Key header of /api/v1 calls.
	APIKey string
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		RequestTimeout: 10 * time.Second,
		MaxRequestSize: 1 << 20, // 1MB
	}
}

// ConfigFromEnv overlays VALUATION_* environment variables on DefaultConfig.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	cfg.Port = platform.GetEnvInt("PORT", cfg.Port)
	cfg.ReadTimeout = platform.GetEnvDuration("VALUATION_READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = platform.GetEnvDuration("VALUATION_WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.RequestTimeout = platform.GetEnvDuration("VALUATION_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.MaxRequestSize = int64(platform.GetEnvInt("VALUATION_MAX_REQUEST_SIZE", int(cfg.MaxRequestSize)))
	cfg.APIKey = platform.GetEnv("VALUATION_API_KEY", "")
	return cfg
}

// NewServer creates a new API server
func NewServer(config *Config, logger zerolog.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return &Server{
		config:    config,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Handler builds the routed handler with its middleware chain.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	if s.config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
	}

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(platform.APIKeyMiddleware(s.config.APIKey))
		r.Get("/analyses", s.handleListAnalyses)
		r.Post("/managerial", s.handleAnalysis(valuation.KindManagerial,
			analyzerFor(valuation.Managerial, "investment", "revenue", "opportunity_rate")))
		r.Post("/campaign", s.handleAnalysis(valuation.KindCampaign,
			analyzerFor(valuation.Campaign, "emails_sent", "clicks", "sales", "average_ticket", "investment", "gross_margin")))
		r.Post("/unit-economics", s.handleAnalysis(valuation.KindUnitEconomics,
			analyzerFor(valuation.UnitEconomics, "investment", "sale_price", "cost_price", "units_sold")))
	})

	return r
}

// Start starts the HTTP server
func (s *Server) Start() error {
	if s.httpServer == nil {
		s.httpServer = &http.Server{
			Addr:         fmt.Sprintf(":%d", s.config.Port),
			Handler:      s.Handler(),
			ReadTimeout:  s.config.ReadTimeout,
			WriteTimeout: s.config.WriteTimeout,
		}
	}

	s.logger.Info().Int("port", s.config.Port).Str("version", Version).Msg("Starting valuation API server")
	return s.httpServer.ListenAndServe()
}

// StartWithGracefulShutdown starts server with graceful shutdown handling
func (s *Server) StartWithGracefulShutdown() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		s.logger.Info().Str("signal", sig.String()).Msg("Shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

// =============================================================================
// HEALTH ENDPOINTS
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "valuation-api",
		"version": Version,
		"uptime":  time.Since(s.startedAt).Round(time.Second).String(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"version": Version,
		"service": "valuation-api",
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
