package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type result struct {
	Outcome string `json:"outcome"`
	Target  string `json:"target"`
}

func TestKey(t *testing.T) {
	if got := Key("verse", " lds ", "Alma 1:1"); got != "verse|LDS|Alma 1:1" {
		t.Errorf("Key() = %q", got)
	}
}

func TestFetch(t *testing.T) {
	backends := map[string]func(t *testing.T) Results{
		"memory": func(t *testing.T) Results { return NewMemory(0) },
		"redis": func(t *testing.T) Results {
			r, _ := setupTestRedis(t)
			return r
		},
	}

	for name, newBackend := range backends {
		t.Run(name, func(t *testing.T) {
			c := newBackend(t)
			ctx := context.Background()
			calls := 0
			compute := func() (result, error) {
				calls++
				return result{Outcome: "resolved", Target: "Alma 1:1"}, nil
			}

			for i := 0; i < 3; i++ {
				got, err := Fetch(ctx, c, "k", time.Minute, nil, compute)
				if err != nil {
					t.Fatalf("Fetch() error = %v", err)
				}
				if got.Target != "Alma 1:1" {
					t.Errorf("Fetch() = %+v", got)
				}
			}
			if calls != 1 {
				t.Errorf("compute called %d times, want 1", calls)
			}
		})
	}
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	c := NewMemory(0)
	ctx := context.Background()
	boom := errors.New("store down")

	calls := 0
	compute := func() (result, error) {
		calls++
		return result{}, boom
	}

	for i := 0; i < 2; i++ {
		if _, err := Fetch(ctx, c, "k", 0, nil, compute); !errors.Is(err, boom) {
			t.Fatalf("Fetch() error = %v", err)
		}
	}
	if calls != 2 || c.Len() != 0 {
		t.Errorf("calls = %d, Len() = %d", calls, c.Len())
	}
}

func TestFetchNilCache(t *testing.T) {
	got, err := Fetch(context.Background(), nil, "k", 0, nil, func() (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Errorf("Fetch(nil cache) = %d, %v", got, err)
	}
}

func TestFetchSurvivesBackendFailure(t *testing.T) {
	r, s := setupTestRedis(t)
	s.SetError("ERR injected failure")

	var reported []error
	onErr := func(err error) { reported = append(reported, err) }

	got, err := Fetch(context.Background(), Results(r), "k", 0, onErr, func() (int, error) { return 3, nil })
	if err != nil || got != 3 {
		t.Fatalf("Fetch() = %d, %v", got, err)
	}
	// One failed Get and one failed Set.
	if len(reported) != 2 {
		t.Errorf("reported %d backend errors, want 2: %v", len(reported), reported)
	}
}

func TestFetchCorruptEntryRecomputes(t *testing.T) {
	c := NewMemory(0)
	ctx := context.Background()
	c.Set(ctx, "k", []byte("{not json"), 0)

	var reported int
	got, err := Fetch(ctx, c, "k", 0, func(error) { reported++ }, func() (result, error) {
		return result{Outcome: "resolved"}, nil
	})
	if err != nil || got.Outcome != "resolved" || reported != 1 {
		t.Errorf("Fetch() = %+v, %v, reported %d", got, err, reported)
	}

	raw, _, _ := c.Get(ctx, "k")
	if string(raw) != `{"outcome":"resolved","target":""}` {
		t.Errorf("entry not replaced: %q", raw)
	}
}
