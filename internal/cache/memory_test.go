package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemorySetAndGet(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()

	if err := m.Set(ctx, "key1", []byte("42"), time.Minute); err != nil {
		t.Fatal(err)
	}

	value, ok, err := m.Get(ctx, "key1")
	if err != nil || !ok {
		t.Fatalf("Get returned ok=%v err=%v for existing key", ok, err)
	}
	if string(value) != "42" {
		t.Errorf("Get returned wrong value: got %q, want 42", value)
	}

	if _, ok, _ := m.Get(ctx, "nonexistent"); ok {
		t.Error("Get returned ok=true for non-existent key")
	}
}

func TestMemorySetCopiesValue(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()

	buf := []byte("abc")
	m.Set(ctx, "k", buf, 0)
	buf[0] = 'x'

	got, _, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value changed with caller's buffer: %q", got)
	}
}

func TestMemoryExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(0)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	m.Set(ctx, "short", []byte("1"), time.Second)
	m.Set(ctx, "forever", []byte("2"), 0)

	now = now.Add(time.Second)

	if _, ok, _ := m.Get(ctx, "short"); ok {
		t.Error("entry still present at its expiry time")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d after lazy removal, want 1", m.Len())
	}
	if _, ok, _ := m.Get(ctx, "forever"); !ok {
		t.Error("entry without ttl expired")
	}
}

func TestMemoryLimit(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(2)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	m.Set(ctx, "a", []byte("a"), time.Second)
	m.Set(ctx, "b", []byte("b"), 0)
	now = now.Add(2 * time.Second)

	// The expired entry makes room.
	m.Set(ctx, "c", []byte("c"), 0)
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	if _, ok, _ := m.Get(ctx, "b"); !ok {
		t.Error("live entry evicted while an expired one existed")
	}

	// Nothing expired: one arbitrary entry goes.
	m.Set(ctx, "d", []byte("d"), 0)
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}

	// Overwriting an existing key never evicts.
	m.Set(ctx, "d", []byte("d2"), 0)
	if m.Len() != 2 {
		t.Errorf("Len() = %d after overwrite, want 2", m.Len())
	}
}

func TestMemoryInvalidate(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()
	m.Set(ctx, "a", []byte("1"), 0)
	m.Set(ctx, "b", []byte("2"), 0)

	m.Invalidate()

	if m.Len() != 0 {
		t.Errorf("Len() = %d after Invalidate", m.Len())
	}
	if _, ok, _ := m.Get(ctx, "a"); ok {
		t.Error("Get found an entry after Invalidate")
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory(50)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d-%d", id, j%20)
				m.Set(ctx, key, []byte{byte(j)}, time.Minute)
				m.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	if m.Len() > 50 {
		t.Errorf("Len() = %d exceeds limit", m.Len())
	}
}
