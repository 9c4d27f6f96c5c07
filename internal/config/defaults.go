package config

import (
	"github.com/spf13/viper"
)

// Default values that other packages refer to.
const (
	DefaultDatabasePath = "scriptures.db"
	DefaultPort         = 8095
	DefaultCacheSize    = 4096
	DefaultCacheTTL     = 3600
	DefaultQueryTimeout = 10
)

// SetDefaults registers a default for every key. Keys without a default are
// invisible to AutomaticEnv during Unmarshal, so empty strings are set too.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.digest", "")
	v.SetDefault("database.compressed", false)
	v.SetDefault("database.temp_dir", "")

	v.SetDefault("corpora.primary", "LDS")
	v.SetDefault("corpora.secondary", "RLDS")

	v.SetDefault("cache.size", DefaultCacheSize)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl_seconds", DefaultCacheTTL)

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost",
		"http://127.0.0.1",
	})
	v.SetDefault("server.rate_limit_per_minute", 0)
	v.SetDefault("server.rate_limit_burst", 10)
	v.SetDefault("server.trust_proxy", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("query_timeout_seconds", DefaultQueryTimeout)
}
