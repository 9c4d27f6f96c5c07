// Package api provides the CanonBridge read-only REST API server.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/FocuswithJustin/CanonBridge/internal/logging"
	"github.com/FocuswithJustin/CanonBridge/internal/server"
)

// Server serves comparison and navigation endpoints.
type Server struct {
	cfg     Config
	deps    Deps
	started time.Time
}

// NewServer creates a Server. It does not listen.
func NewServer(cfg Config, deps Deps) *Server {
	return &Server{cfg: cfg, deps: deps, started: time.Now()}
}

// Start listens on cfg.Port until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          slog.NewLogLogger(logging.GetLogger().Handler(), slog.LevelError),
	}

	logging.ServerStartup("rest_api", "http", s.cfg.Port,
		"result_cache", s.deps.Results != nil,
		"metrics", s.deps.Metrics != nil)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		logging.Error("rest_api stopped", "port", s.cfg.Port, "error", err.Error())
		return err
	case <-ctx.Done():
	}
	logging.InfoContext(ctx, "rest_api shutting down", "port", s.cfg.Port)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns the routes wrapped in the middleware chain. ctx bounds the
// rate limiter's background sweep.
func (s *Server) Handler(ctx context.Context) http.Handler {
	var handler http.Handler = s.Routes()

	handler = server.SecurityHeadersWithCSP(server.APICSPConfig(), handler)
	handler = server.RecoverMiddleware(handler)
	handler = server.TimingMiddleware(handler)

	if s.cfg.RateLimit.RequestsPerMinute > 0 {
		limiter := NewRateLimiter(ctx, s.cfg.RateLimit)
		handler = limiter.Middleware(handler)
		logging.Info("rate limiting enabled",
			"requests_per_minute", s.cfg.RateLimit.RequestsPerMinute,
			"burst_size", limiter.config.BurstSize,
			"trust_proxy", s.cfg.RateLimit.TrustProxy)
	}

	handler = server.ReadOnlyMiddleware(handler)

	// CORS sits outside the method filter so preflights are answered
	handler = server.CORSMiddlewareWithConfig(server.CORSConfig{
		AllowedOrigins: s.cfg.AllowedOrigins,
	}, handler)
	if len(s.cfg.AllowedOrigins) > 0 {
		logging.SecurityEvent("cors_configured", "api",
			"mode", "restricted",
			"allowed_origins_count", len(s.cfg.AllowedOrigins))
	} else {
		logging.SecurityEvent("cors_configured", "api",
			"mode", "permissive",
			"note", "allowing all origins (*)")
	}

	return logging.CombinedMiddleware(handler)
}

// Routes configures all HTTP routes.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	s.handle(mux, "/", s.handleRoot)
	s.handle(mux, "GET /health", s.handleHealth)
	s.handle(mux, "GET /corpora", s.handleCorpora)
	s.handle(mux, "GET /verse", s.handleVerse)
	s.handle(mux, "GET /chapter", s.handleChapter)
	s.handle(mux, "GET /book", s.handleBook)
	s.handle(mux, "GET /volumes", s.handleVolumes)
	s.handle(mux, "GET /books", s.handleBooks)
	s.handle(mux, "GET /chapters", s.handleChapters)
	s.handle(mux, "GET /read", s.handleRead)

	if s.deps.Metrics != nil {
		mux.Handle("GET /metrics", s.deps.Metrics.Handler())
	}
	return mux
}

// statusRecorder captures the status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// handle registers h, counting responses per pattern when metrics are on.
func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	if s.deps.Metrics == nil {
		mux.HandleFunc(pattern, h)
		return
	}
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		s.deps.Metrics.ObserveHTTP(pattern, rec.status)
	})
}

// requestContext applies the configured query timeout.
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.cfg.QueryTimeout > 0 {
		return context.WithTimeout(r.Context(), s.cfg.QueryTimeout)
	}
	return context.WithCancel(r.Context())
}
