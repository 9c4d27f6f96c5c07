package store

import (
	"context"
	"fmt"

	"github.com/FocuswithJustin/CanonBridge/core/cache"
	"github.com/FocuswithJustin/CanonBridge/core/ref"
)

// Cached memoizes the point lookups of another Store in an in-process LRU.
// Absence is cached along with hits; errors never are. Methods that return
// whole books or listings pass straight through.
type Cached struct {
	Store
	lru cache.Cache[string, cachedResult]
}

type cachedResult struct {
	value any
	found bool
}

// NewCached wraps s with an LRU of at most size entries.
func NewCached(s Store, size int) *Cached {
	if size <= 0 {
		size = cache.DefaultMaxSize
	}
	return &Cached{
		Store: s,
		lru:   cache.NewLRU(cache.Config[string, cachedResult]{MaxSize: size}),
	}
}

// Stats reports cache effectiveness.
func (c *Cached) Stats() cache.Stats {
	return c.lru.Stats()
}

func (c *Cached) ResolveVerse(ctx context.Context, book string, chapter, verse int, corpus CorpusID) (Verse, bool, error) {
	key := fmt.Sprintf("rv|%d|%s|%d|%d", corpus, book, chapter, verse)
	r, err := c.lru.GetOrLoad(key, func() (cachedResult, error) {
		v, ok, err := c.Store.ResolveVerse(ctx, book, chapter, verse, corpus)
		return cachedResult{v, ok}, err
	})
	if err != nil || !r.found {
		return Verse{}, false, err
	}
	return r.value.(Verse), true, nil
}

func (c *Cached) ResolveChapterBounds(ctx context.Context, book string, chapter int, corpus CorpusID) (ChapterBounds, bool, error) {
	key := fmt.Sprintf("cb|%d|%s|%d", corpus, book, chapter)
	r, err := c.lru.GetOrLoad(key, func() (cachedResult, error) {
		b, ok, err := c.Store.ResolveChapterBounds(ctx, book, chapter, corpus)
		return cachedResult{b, ok}, err
	})
	if err != nil || !r.found {
		return ChapterBounds{}, false, err
	}
	return r.value.(ChapterBounds), true, nil
}

func (c *Cached) FetchComponents(ctx context.Context, id VerseID, corpus CorpusID) (ref.Components, bool, error) {
	key := fmt.Sprintf("fc|%d|%d", corpus, id)
	r, err := c.lru.GetOrLoad(key, func() (cachedResult, error) {
		comp, ok, err := c.Store.FetchComponents(ctx, id, corpus)
		return cachedResult{comp, ok}, err
	})
	if err != nil || !r.found {
		return ref.Components{}, false, err
	}
	return r.value.(ref.Components), true, nil
}

func (c *Cached) CrossReference(ctx context.Context, source VerseID) (VerseID, bool, error) {
	key := fmt.Sprintf("xr|%d", source)
	r, err := c.lru.GetOrLoad(key, func() (cachedResult, error) {
		target, ok, err := c.Store.CrossReference(ctx, source)
		return cachedResult{target, ok}, err
	})
	if err != nil || !r.found {
		return 0, false, err
	}
	return r.value.(VerseID), true, nil
}

func (c *Cached) Corpora(ctx context.Context) ([]Corpus, error) {
	r, err := c.lru.GetOrLoad("corpora", func() (cachedResult, error) {
		list, err := c.Store.Corpora(ctx)
		return cachedResult{list, true}, err
	})
	if err != nil {
		return nil, err
	}
	return r.value.([]Corpus), nil
}
