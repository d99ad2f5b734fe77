// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, calculator orchestration, output serialization.
// The API NEVER performs cost logic.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"aws-cost-calc/core/output"
	"aws-cost-calc/internal/config"
	"aws-cost-calc/internal/logging"
	"aws-cost-calc/internal/metrics"
)

const defaultShutdownTimeout = 5 * time.Second

// Server is the API server
type Server struct {
	router     chi.Router
	cfg        *config.Config
	version    string
	logger     *zap.Logger
	metrics    *metrics.Metrics
	formatters *output.Registry
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the server logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics shares a metrics instance with the caller
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, version string, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		cfg:        cfg,
		version:    version,
		logger:     zap.NewNop(),
		formatters: output.DefaultRegistry(true),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New("aws-cost-calc")
	}

	s.router = s.routes()
	return s
}

// routes builds the router and middleware chain
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(
		s.metrics.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.Server.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader, inputHashHeader},
			MaxAge:         300,
		}),
		requestID,
		logging.RequestLogger(s.logger, "http"),
		middleware.Recoverer,
	)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/archive/projection", s.handleArchive)
		r.Post("/endpoint/estimate", s.handleEndpoint)
		r.Post("/dedicated-line/estimate", s.handleDedicatedLine)
		r.Get("/dedicated-line/ports", s.handlePorts)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, ErrorResponse{Error: ErrorBody{
			Code:      "NOT_FOUND",
			Message:   "no route for " + r.Method + " " + r.URL.Path,
			RequestID: middleware.GetReqID(r.Context()),
		}}, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, ErrorResponse{Error: ErrorBody{
			Code:      "METHOD_NOT_ALLOWED",
			Message:   r.Method + " is not allowed on " + r.URL.Path,
			RequestID: middleware.GetReqID(r.Context()),
		}}, http.StatusMethodNotAllowed)
	})

	return r
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on the configured address until ctx is cancelled, then drains
// in-flight requests for at most the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := defaultShutdownTimeout
	if secs := s.cfg.Server.ShutdownTimeoutSeconds; secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}
	s.logger.Info("shutdown signal received", zap.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	srv.SetKeepAlivesEnabled(false)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("api server terminated")
	return <-errCh
}
