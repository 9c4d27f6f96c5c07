package config

import (
	"strings"
	"unicode"

	"github.com/FocuswithJustin/CanonBridge/core/errors"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.NewValidation("database.path", "cannot be empty for the sqlite driver")
		}
		if err := validatePath("database.path", c.Database.Path); err != nil {
			return err
		}
	case "postgres":
		if c.Database.DSN == "" {
			return errors.NewValidation("database.dsn", "cannot be empty for the postgres driver")
		}
	default:
		return errors.NewValidation("database.driver", "must be sqlite or postgres, got "+c.Database.Driver)
	}

	if c.Database.TempDir != "" {
		if err := validatePath("database.temp_dir", c.Database.TempDir); err != nil {
			return err
		}
	}

	primary := strings.TrimSpace(c.Corpora.Primary)
	secondary := strings.TrimSpace(c.Corpora.Secondary)
	if primary == "" || secondary == "" {
		return errors.NewValidation("corpora", "primary and secondary codes are required")
	}
	if strings.EqualFold(primary, secondary) {
		return errors.NewValidation("corpora", "primary and secondary must differ")
	}

	if c.Cache.Size < 0 {
		return errors.NewValidation("cache.size", "must be >= 0")
	}
	if c.Cache.TTLSeconds < 0 {
		return errors.NewValidation("cache.ttl_seconds", "must be >= 0")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.NewValidation("server.port", "must be between 1 and 65535")
	}

	if c.Server.RateLimitPerMinute < 0 || c.Server.RateLimitBurst < 0 {
		return errors.NewValidation("server.rate_limit_per_minute", "rate limits must be >= 0")
	}

	if c.QueryTimeoutSeconds < 0 {
		return errors.NewValidation("query_timeout_seconds", "must be >= 0")
	}
	return nil
}

// MaxPathLength bounds configured file paths.
const MaxPathLength = 4096

// validatePath rejects paths that no filesystem accepts: overlong paths and
// paths carrying NUL or other control characters.
func validatePath(field, path string) error {
	if len(path) > MaxPathLength {
		return errors.NewValidation(field, "path too long")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return errors.NewValidation(field, "control characters not allowed")
		}
	}
	return nil
}
