// Package cache stores encoded comparison results so repeated requests skip
// the store. Two backends exist: an in-process map with per-entry expiry and
// Redis for sharing between API replicas.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Results is a byte-valued cache with expiry.
type Results interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for ttl. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Key joins the parts of a request into a cache key. The corpus code is
// case-insensitive so it is folded.
func Key(kind, from, input string) string {
	return fmt.Sprintf("%s|%s|%s", kind, strings.ToUpper(strings.TrimSpace(from)), input)
}

// Fetch returns the cached value for key, or computes, stores and returns
// it. Errors from compute are returned and nothing is stored. Cache backend
// errors are reported through onErr and otherwise ignored, so a dead Redis
// degrades to uncached reads.
func Fetch[T any](ctx context.Context, c Results, key string, ttl time.Duration, onErr func(error), compute func() (T, error)) (T, error) {
	if c == nil {
		return compute()
	}
	report := func(err error) {
		if onErr != nil {
			onErr(err)
		}
	}

	raw, ok, err := c.Get(ctx, key)
	if err != nil {
		report(err)
	}
	if ok {
		var v T
		decodeErr := json.Unmarshal(raw, &v)
		if decodeErr == nil {
			return v, nil
		}
		report(fmt.Errorf("decode cached %s: %w", key, decodeErr))
	}

	v, err := compute()
	if err != nil {
		return v, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		report(fmt.Errorf("encode %s: %w", key, err))
		return v, nil
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		report(err)
	}
	return v, nil
}
