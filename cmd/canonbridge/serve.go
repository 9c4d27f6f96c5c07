package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/FocuswithJustin/CanonBridge/internal/api"
	"github.com/FocuswithJustin/CanonBridge/internal/cache"
	"github.com/FocuswithJustin/CanonBridge/internal/logging"
)

// ServeCmd starts the REST API server.
type ServeCmd struct {
	Port int `help:"HTTP server port (overrides server.port)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	results := sess.results(ctx)
	defer results.Close()

	cfg := sess.cfg
	port := cfg.Server.Port
	if c.Port != 0 {
		port = c.Port
	}

	srv := api.NewServer(api.Config{
		Port:           port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimit: api.RateLimiterConfig{
			RequestsPerMinute: cfg.Server.RateLimitPerMinute,
			BurstSize:         cfg.Server.RateLimitBurst,
			TrustProxy:        cfg.Server.TrustProxy,
		},
		QueryTimeout: cfg.QueryTimeout(),
		CacheTTL:     cfg.CacheTTL(),
		Version:      version,
	}, api.Deps{
		Store:    sess.store,
		Comparer: sess.comparer,
		Results:  results,
		Metrics:  sess.metrics,
		Health:   sess.db,
	})
	return srv.Start(ctx)
}

// results returns the shared Redis result cache when one is configured and
// reachable, and an in-process cache otherwise.
func (s *session) results(ctx context.Context) cache.Results {
	if url := s.cfg.Cache.RedisURL; url != "" {
		r, err := cache.NewRedis(ctx, url)
		if err == nil {
			logging.Info("result cache", "backend", "redis")
			return r
		}
		logging.Warn("redis unavailable, using in-process result cache", "error", err.Error())
	}
	logging.Debug("result cache", "backend", "memory", "size", s.cfg.Cache.Size)
	return cache.NewMemory(s.cfg.Cache.Size)
}
