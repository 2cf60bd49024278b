// Package server exposes wallet history rounds over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"lendingScope/internal/history"
	"lendingScope/internal/metrics"
)

// Querier runs history rounds.
type Querier interface {
	Query(ctx context.Context, address string) (history.Result, error)
	Latest() history.Result
}

// Config holds the HTTP server configuration.
type Config struct {
	Listen string
	// Gatherer backs /metrics. Nil selects prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	querier    Querier
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// New creates a Server with every route registered.
func New(cfg Config, querier Querier, m *metrics.Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		querier: querier,
		metrics: m,
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", s.route("healthz", http.HandlerFunc(s.health)))
	mux.Handle("GET /v1/history/{address}", s.route("history", http.HandlerFunc(s.history)))
	mux.Handle("GET /v1/history", s.route("latest", http.HandlerFunc(s.latest)))
	mux.Handle("GET /metrics", s.route("metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	s.httpServer = &http.Server{
		Addr:              cfg.Listen,
		Handler:           logging(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the root handler, including middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until the server fails or is shut down.
func (s *Server) Start() error {
	s.logger.Info("server start", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown waits for in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutdown")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
