// Package config loads CanonBridge settings from TOML files, .env files and
// CANONBRIDGE_ environment variables.
package config

import (
	"time"

	"github.com/FocuswithJustin/CanonBridge/core/store"
)

// Config is the full configuration tree.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Corpora  CorporaConfig  `mapstructure:"corpora"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`

	// QueryTimeoutSeconds bounds each comparison request. 0 disables the
	// deadline.
	QueryTimeoutSeconds int `mapstructure:"query_timeout_seconds"`
}

// DatabaseConfig selects the scripture store.
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"` // sqlite or postgres
	Path       string `mapstructure:"path"`
	DSN        string `mapstructure:"dsn"`
	Digest     string `mapstructure:"digest"` // expected BLAKE3 hex of path
	Compressed bool   `mapstructure:"compressed"`
	TempDir    string `mapstructure:"temp_dir"`
}

// CorporaConfig names the two corpus codes being compared.
type CorporaConfig struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
}

// CacheConfig sizes the in-process cache and optionally enables Redis.
type CacheConfig struct {
	Size       int    `mapstructure:"size"`
	RedisURL   string `mapstructure:"redis_url"` // empty disables the shared cache
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// RateLimitPerMinute is per client address; 0 disables limiting.
	RateLimitPerMinute int  `mapstructure:"rate_limit_per_minute"`
	RateLimitBurst     int  `mapstructure:"rate_limit_burst"`
	TrustProxy         bool `mapstructure:"trust_proxy"`
}

// LogConfig configures internal/logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StoreOptions converts the database section into store.Open options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Driver:     c.Database.Driver,
		Path:       c.Database.Path,
		Compressed: c.Database.Compressed,
		TempDir:    c.Database.TempDir,
		Digest:     c.Database.Digest,
		DSN:        c.Database.DSN,
	}
}

// QueryTimeout returns the per-request deadline, or 0 for none.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}

// CacheTTL returns the Redis entry lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
