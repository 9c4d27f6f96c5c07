package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/FocuswithJustin/CanonBridge/core/compare"
	"github.com/FocuswithJustin/CanonBridge/core/errors"
	"github.com/FocuswithJustin/CanonBridge/core/store"
	"github.com/FocuswithJustin/CanonBridge/internal/cache"
	"github.com/FocuswithJustin/CanonBridge/internal/logging"
	"github.com/FocuswithJustin/CanonBridge/internal/server"
)

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Error codes.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeMissingParameter  = "MISSING_PARAMETER"
	CodeInvalidParameter  = "INVALID_PARAMETER"
	CodeInvalidReference  = "INVALID_REFERENCE"
	CodeDataIntegrity     = "DATA_INTEGRITY"
	CodeStoreUnavailable  = "STORE_UNAVAILABLE"
	CodeInternal          = "INTERNAL_ERROR"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, CodeNotFound, "Endpoint not found")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"name":    "CanonBridge API",
		"version": s.cfg.Version,
		"endpoints": []string{
			"GET /health",
			"GET /corpora",
			"GET /verse?ref=&from=",
			"GET /chapter?ref=&from=",
			"GET /book?title=&from=",
			"GET /volumes?corpus=",
			"GET /books?corpus=|volume=",
			"GET /chapters?book=",
			"GET /read?chapter=&from=",
			"GET /metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	if s.deps.Health != nil {
		if err := s.deps.Health.Ping(ctx); err != nil {
			logging.StoreFault(ctx, "ping", err)
			respondError(w, http.StatusServiceUnavailable, CodeStoreUnavailable, "Scripture database is unreachable")
			return
		}
	}

	primary, secondary := s.deps.Comparer.Codes()
	respond(w, http.StatusOK, HealthInfo{
		Status:    "healthy",
		Version:   s.cfg.Version,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Primary:   primary,
		Secondary: secondary,
	})
}

func (s *Server) handleCorpora(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	list, err := s.deps.Store.Corpora(ctx)
	if err != nil {
		s.fail(ctx, w, "corpora", err)
		return
	}
	respondList(w, list, len(list))
}

func (s *Server) handleVerse(w http.ResponseWriter, r *http.Request) {
	raw := server.QueryParam(r, "ref")
	if raw == "" {
		respondError(w, http.StatusBadRequest, CodeMissingParameter, "ref is required")
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	from := s.from(r, "from")

	start := time.Now()
	res, err := cache.Fetch(ctx, s.deps.Results, cache.Key("verse", from, raw), s.cfg.CacheTTL, s.cacheError(ctx),
		func() (*compare.VerseComparison, error) {
			return s.deps.Comparer.Verse(ctx, raw, from)
		})
	if err != nil {
		s.fail(ctx, w, "verse", err)
		return
	}
	s.finish(ctx, "verse", raw, from, res.Outcome, start, "target", res.TargetRef)
	respondOutcome(w, res.Outcome, res, `reference must look like "Book Chapter:Verse"`)
}

func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	raw := server.QueryParam(r, "ref")
	if raw == "" {
		respondError(w, http.StatusBadRequest, CodeMissingParameter, "ref is required")
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	from := s.from(r, "from")

	start := time.Now()
	res, err := cache.Fetch(ctx, s.deps.Results, cache.Key("chapter", from, raw), s.cfg.CacheTTL, s.cacheError(ctx),
		func() (*compare.ChapterComparison, error) {
			return s.deps.Comparer.Chapter(ctx, raw, from)
		})
	if err != nil {
		s.fail(ctx, w, "chapter", err)
		return
	}
	s.finish(ctx, "chapter", raw, from, res.Outcome, start, "range", res.Range)
	respondOutcome(w, res.Outcome, res, `reference must look like "Book Chapter"`)
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	title := server.QueryParam(r, "title")
	if title == "" {
		respondError(w, http.StatusBadRequest, CodeMissingParameter, "title is required")
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	from := s.from(r, "from")

	start := time.Now()
	res, err := cache.Fetch(ctx, s.deps.Results, cache.Key("book", from, title), s.cfg.CacheTTL, s.cacheError(ctx),
		func() (*compare.BookComparison, error) {
			return s.deps.Comparer.Book(ctx, title, from)
		})
	if err != nil {
		s.fail(ctx, w, "book", err)
		return
	}
	s.finish(ctx, "book", title, from, res.Outcome, start, "rows", len(res.Rows))
	respondOutcome(w, res.Outcome, res, "title is blank")
}

func (s *Server) handleVolumes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	dir, err := s.deps.Comparer.Direction(ctx, s.from(r, "corpus"))
	if err != nil {
		s.fail(ctx, w, "volumes", err)
		return
	}
	list, err := s.deps.Store.ListVolumes(ctx, dir.Source.ID)
	if err != nil {
		s.fail(ctx, w, "volumes", err)
		return
	}
	respondList(w, list, len(list))
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	volume, ok, err := parseID(r, "volume")
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidParameter, err.Error())
		return
	}

	var list []store.Book
	if ok {
		list, err = s.deps.Store.ListVolumeBooks(ctx, store.VolumeID(volume))
	} else {
		var dir compare.Direction
		dir, err = s.deps.Comparer.Direction(ctx, s.from(r, "corpus"))
		if err == nil {
			list, err = s.deps.Store.ListBooks(ctx, dir.Source.ID)
		}
	}
	if err != nil {
		s.fail(ctx, w, "books", err)
		return
	}
	respondList(w, list, len(list))
}

func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request) {
	book, ok, err := parseID(r, "book")
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidParameter, err.Error())
		return
	}
	if !ok {
		respondError(w, http.StatusBadRequest, CodeMissingParameter, "book is required")
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	list, err := s.deps.Store.ListChapters(ctx, store.BookID(book))
	if err != nil {
		s.fail(ctx, w, "chapters", err)
		return
	}
	respondList(w, list, len(list))
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	chapter, ok, err := parseID(r, "chapter")
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidParameter, err.Error())
		return
	}
	if !ok {
		respondError(w, http.StatusBadRequest, CodeMissingParameter, "chapter is required")
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	from := s.from(r, "from")

	start := time.Now()
	res, err := s.deps.Comparer.ChapterByID(ctx, store.ChapterID(chapter), from)
	if err != nil {
		s.fail(ctx, w, "read", err)
		return
	}
	s.finish(ctx, "read", strconv.FormatInt(chapter, 10), from, res.Outcome, start)
	respondOutcome(w, res.Outcome, res, "")
}

// from returns the corpus code named by the query parameter, defaulting to
// the primary corpus.
func (s *Server) from(r *http.Request, param string) string {
	if code := server.QueryParam(r, param); code != "" {
		return code
	}
	primary, _ := s.deps.Comparer.Codes()
	return primary
}

// cacheError logs result-cache failures; requests continue uncached.
func (s *Server) cacheError(ctx context.Context) func(error) {
	return func(err error) {
		logging.WarnContext(ctx, "result_cache_error", "error", err.Error())
	}
}

// finish records a completed comparison.
func (s *Server) finish(ctx context.Context, kind, input, from string, outcome compare.Outcome, start time.Time, args ...any) {
	logging.Lookup(ctx, kind, input, from, string(outcome), time.Since(start), args...)
	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveOutcome(kind, string(outcome))
	}
}

// fail maps an error to a response. Faults are logged; their details never
// reach the client.
func (s *Server) fail(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	switch {
	case errors.Is(err, errors.ErrInvalidInput):
		logging.DebugContext(ctx, "request_rejected", "operation", operation, "error", err.Error())
		respondError(w, http.StatusBadRequest, CodeInvalidParameter, err.Error())
	case errors.Is(err, errors.ErrIntegrity):
		logging.StoreFault(ctx, operation, err, "class", "integrity")
		respondError(w, http.StatusInternalServerError, CodeDataIntegrity, "The scripture database is inconsistent")
	case errors.Is(err, errors.ErrStore):
		logging.StoreFault(ctx, operation, err, "class", "store")
		respondError(w, http.StatusServiceUnavailable, CodeStoreUnavailable, "The scripture database is unavailable")
	default:
		logging.ErrorContext(ctx, "request_failed", "operation", operation, "error", err.Error())
		respondError(w, http.StatusInternalServerError, CodeInternal, "Internal error")
	}
}

// respondOutcome writes a comparison. Absence and malformed input are errors
// to the client; a missing cross-reference is still a successful lookup.
func respondOutcome(w http.ResponseWriter, outcome compare.Outcome, data interface{}, invalidMessage string) {
	switch outcome {
	case compare.InvalidInput:
		respondError(w, http.StatusBadRequest, CodeInvalidReference, invalidMessage)
	case compare.SourceNotFound:
		respondError(w, http.StatusNotFound, CodeNotFound, "No such book, chapter or verse in the source corpus")
	default:
		respond(w, http.StatusOK, data)
	}
}

// parseID reads a positive integer id parameter. ok is false when the
// parameter is absent.
func parseID(r *http.Request, name string) (int64, bool, error) {
	raw := server.QueryParam(r, name)
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, true, nil
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondList(w http.ResponseWriter, data interface{}, total int) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Total:     total,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
