package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStartStopsOnCancel(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- srv.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Start() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}
}

func TestRequestContextTimeout(t *testing.T) {
	srv, _ := newTestServer(t, func(c *Config, _ *Deps) { c.QueryTimeout = time.Second })

	ctx, cancel := srv.requestContext(httptest.NewRequest(http.MethodGet, "/", nil))
	defer cancel()
	deadline, ok := ctx.Deadline()
	if !ok || time.Until(deadline) > time.Second {
		t.Errorf("deadline = %v, %v", deadline, ok)
	}

	srv, _ = newTestServer(t, func(c *Config, _ *Deps) { c.QueryTimeout = 0 })
	ctx, cancel = srv.requestContext(httptest.NewRequest(http.MethodGet, "/", nil))
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Error("zero timeout should not set a deadline")
	}
}

func TestPanicRecovered(t *testing.T) {
	srv, _ := newTestServer(t, func(_ *Config, d *Deps) { d.Comparer = nil })

	w := httptest.NewRecorder()
	srv.Handler(t.Context()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
