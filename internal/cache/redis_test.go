package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func setupTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	r, err := NewRedis(context.Background(), "redis://"+s.Addr())
	if err != nil {
		t.Fatalf("failed to create redis cache: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r, s
}

func TestNewRedis(t *testing.T) {
	r, _ := setupTestRedis(t)
	if err := r.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestNewRedisBadURL(t *testing.T) {
	if _, err := NewRedis(context.Background(), "not a url"); err == nil {
		t.Error("NewRedis accepted a malformed url")
	}
}

func TestNewRedisUnreachable(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	if _, err := NewRedis(context.Background(), "redis://"+addr); err == nil {
		t.Error("NewRedis succeeded against a closed server")
	}
}

func TestRedisSetAndGet(t *testing.T) {
	r, s := setupTestRedis(t)
	ctx := context.Background()

	if err := r.Set(ctx, "verse|LDS|Alma 1:1", []byte(`{"outcome":"resolved"}`), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := r.Get(ctx, "verse|LDS|Alma 1:1")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if string(got) != `{"outcome":"resolved"}` {
		t.Errorf("Get = %q", got)
	}

	// Keys are namespaced.
	if !s.Exists(DefaultPrefix + "verse|LDS|Alma 1:1") {
		t.Errorf("key not stored under %q", DefaultPrefix)
	}
	if ttl := s.TTL(DefaultPrefix + "verse|LDS|Alma 1:1"); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}
}

func TestRedisMissAndExpiry(t *testing.T) {
	r, s := setupTestRedis(t)
	ctx := context.Background()

	if _, ok, err := r.Get(ctx, "absent"); ok || err != nil {
		t.Errorf("Get(absent) = %v, %v", ok, err)
	}

	r.Set(ctx, "short", []byte("x"), time.Second)
	s.FastForward(2 * time.Second)

	if _, ok, err := r.Get(ctx, "short"); ok || err != nil {
		t.Errorf("Get(expired) = %v, %v", ok, err)
	}
}

func TestRedisNoExpiry(t *testing.T) {
	r, s := setupTestRedis(t)
	r.Set(context.Background(), "k", []byte("v"), -time.Second)

	if ttl := s.TTL(DefaultPrefix + "k"); ttl != 0 {
		t.Errorf("TTL = %v, want none", ttl)
	}
}

func TestRedisServerError(t *testing.T) {
	r, s := setupTestRedis(t)
	s.SetError("ERR injected failure")

	if _, _, err := r.Get(context.Background(), "k"); err == nil {
		t.Error("Get ignored a server error")
	}
	if err := r.Set(context.Background(), "k", []byte("v"), 0); err == nil {
		t.Error("Set ignored a server error")
	}
}
