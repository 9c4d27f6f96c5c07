package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLRU_BasicOperations(t *testing.T) {
	c := NewLRU(Config[string, int]{MaxSize: 3})

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		if v, ok := c.Get(key); !ok || v != want {
			t.Errorf("Get(%s) = %d, %v; want %d, true", key, v, ok, want)
		}
	}
	if _, ok := c.Get("d"); ok {
		t.Error("Get(d) should return false")
	}
	if n := c.Len(); n != 3 {
		t.Errorf("Len() = %d; want 3", n)
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU(Config[string, int]{MaxSize: 2})

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")    // "b" is now oldest
	c.Put("c", 3) // evicts "b"

	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) should return false after eviction")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d; want 1", got)
	}
}

func TestLRU_Update(t *testing.T) {
	c := NewLRU(Config[string, int]{MaxSize: 2})
	c.Put("a", 1)
	c.Put("a", 10)

	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("Get(a) = %d; want 10", v)
	}
	if n := c.Len(); n != 1 {
		t.Errorf("Len() = %d; want 1", n)
	}
}

func TestLRU_RemoveAndPurge(t *testing.T) {
	c := NewLRU(Config[string, int]{})
	c.Put("a", 1)
	c.Put("b", 2)

	c.Remove("a")
	c.Remove("missing")
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) should return false after Remove")
	}

	c.Purge()
	if n := c.Len(); n != 0 {
		t.Errorf("Len() after Purge = %d; want 0", n)
	}
}

func TestLRU_TTL(t *testing.T) {
	now := time.Unix(1000, 0)
	c := NewLRU(Config[string, int]{TTL: time.Minute}).(*lru[string, int])
	c.now = func() time.Time { return now }

	c.Put("a", 1)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) should hit before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) should miss after expiry")
	}
	if n := c.Len(); n != 0 {
		t.Errorf("expired entry not removed, Len() = %d", n)
	}
}

func TestLRU_OnEvict(t *testing.T) {
	var evicted []string
	c := NewLRU(Config[string, int]{
		MaxSize: 1,
		OnEvict: func(key string, _ int) { evicted = append(evicted, key) },
	})

	c.Put("a", 1)
	c.Put("b", 2)
	c.Remove("b")

	if fmt.Sprint(evicted) != "[a b]" {
		t.Errorf("evicted = %v; want [a b]", evicted)
	}
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU(Config[string, int]{MaxSize: 5})
	c.Put("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("x")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Size != 1 || s.MaxSize != 5 {
		t.Errorf("Stats() = %+v", s)
	}
	if r := s.HitRatio(); r < 0.66 || r > 0.67 {
		t.Errorf("HitRatio() = %f; want ~0.667", r)
	}
	if r := (Stats{}).HitRatio(); r != 0 {
		t.Errorf("empty HitRatio() = %f; want 0", r)
	}
}

func TestLRU_GetOrLoad(t *testing.T) {
	c := NewLRU(Config[string, int]{})
	calls := 0
	load := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad("k", load)
		if err != nil || v != 42 {
			t.Fatalf("GetOrLoad() = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("load called %d times; want 1", calls)
	}
}

func TestLRU_GetOrLoadDoesNotStoreErrors(t *testing.T) {
	c := NewLRU(Config[string, int]{})
	boom := errors.New("boom")

	if _, err := c.GetOrLoad("k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("GetOrLoad() error = %v; want boom", err)
	}
	if n := c.Len(); n != 0 {
		t.Errorf("failed load was cached, Len() = %d", n)
	}
}

func TestNewLRU_NegativeMaxSize(t *testing.T) {
	c := NewLRU(Config[int, int]{MaxSize: -1})
	for i := 0; i < 100; i++ {
		c.Put(i, i)
	}
	if n := c.Len(); n != 100 {
		t.Errorf("Len() = %d; want 100 (unlimited)", n)
	}
}

func TestLRU_Concurrency(t *testing.T) {
	c := NewLRU(Config[int, int]{MaxSize: 100})

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				key := (g*1000 + i) % 150
				c.Put(key, i)
				c.Get(key)
				_, _ = c.GetOrLoad(key+1, func() (int, error) { return i, nil })
			}
		}(g)
	}
	wg.Wait()

	if n := c.Len(); n > 100 {
		t.Errorf("Len() = %d; exceeds MaxSize", n)
	}
}

func BenchmarkLRU_PutGet(b *testing.B) {
	c := NewLRU(Config[int, int]{MaxSize: 1000})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(i%2000, i)
		c.Get(i % 2000)
	}
}
