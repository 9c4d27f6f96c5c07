package api

import (
	"context"
	"time"

	"github.com/FocuswithJustin/CanonBridge/core/compare"
	"github.com/FocuswithJustin/CanonBridge/core/store"
	"github.com/FocuswithJustin/CanonBridge/internal/cache"
	"github.com/FocuswithJustin/CanonBridge/internal/metrics"
)

// Config holds server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string          // CORS allowed origins (empty = allow all)
	RateLimit      RateLimiterConfig // RequestsPerMinute 0 = disabled
	QueryTimeout   time.Duration     // per request; 0 = none
	CacheTTL       time.Duration     // result cache entry lifetime
	Version        string
}

// Pinger is implemented by stores that can check their connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the handlers call. Store and Comparer are
// required; Results, Metrics and Health are optional.
type Deps struct {
	Store    store.Store
	Comparer *compare.Comparer
	Results  cache.Results
	Metrics  *metrics.Metrics

	// Health is pinged by /health. Nil reports healthy without a check.
	Health Pinger
}
