package metrics

import (
	"context"
	"time"

	"github.com/FocuswithJustin/CanonBridge/core/ref"
	"github.com/FocuswithJustin/CanonBridge/core/store"
)

// Store times every call on the wrapped store and counts faults. Absence is
// not a fault and is not counted.
type Store struct {
	next store.Store
	m    *Metrics
}

// InstrumentStore wraps s.
func (m *Metrics) InstrumentStore(s store.Store) *Store {
	return &Store{next: s, m: m}
}

func (s *Store) observe(operation string, start time.Time, err error) {
	s.m.queryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		s.m.queryFaults.WithLabelValues(operation, FaultClass(err)).Inc()
	}
}

func (s *Store) Corpora(ctx context.Context) ([]store.Corpus, error) {
	start := time.Now()
	list, err := s.next.Corpora(ctx)
	s.observe("corpora", start, err)
	return list, err
}

func (s *Store) ResolveVerse(ctx context.Context, book string, chapter, verse int, corpus store.CorpusID) (store.Verse, bool, error) {
	start := time.Now()
	v, ok, err := s.next.ResolveVerse(ctx, book, chapter, verse, corpus)
	s.observe("resolve_verse", start, err)
	return v, ok, err
}

func (s *Store) ResolveChapterBounds(ctx context.Context, book string, chapter int, corpus store.CorpusID) (store.ChapterBounds, bool, error) {
	start := time.Now()
	b, ok, err := s.next.ResolveChapterBounds(ctx, book, chapter, corpus)
	s.observe("resolve_chapter_bounds", start, err)
	return b, ok, err
}

func (s *Store) FetchContiguous(ctx context.Context, first, last store.VerseID) ([]store.VerseRecord, error) {
	start := time.Now()
	list, err := s.next.FetchContiguous(ctx, first, last)
	s.observe("fetch_contiguous", start, err)
	return list, err
}

func (s *Store) FetchComponents(ctx context.Context, id store.VerseID, corpus store.CorpusID) (ref.Components, bool, error) {
	start := time.Now()
	c, ok, err := s.next.FetchComponents(ctx, id, corpus)
	s.observe("fetch_components", start, err)
	return c, ok, err
}

func (s *Store) CrossReference(ctx context.Context, source store.VerseID) (store.VerseID, bool, error) {
	start := time.Now()
	target, ok, err := s.next.CrossReference(ctx, source)
	s.observe("cross_reference", start, err)
	return target, ok, err
}

func (s *Store) ListVolumes(ctx context.Context, corpus store.CorpusID) ([]store.Volume, error) {
	start := time.Now()
	list, err := s.next.ListVolumes(ctx, corpus)
	s.observe("list_volumes", start, err)
	return list, err
}

func (s *Store) ListBooks(ctx context.Context, corpus store.CorpusID) ([]store.Book, error) {
	start := time.Now()
	list, err := s.next.ListBooks(ctx, corpus)
	s.observe("list_books", start, err)
	return list, err
}

func (s *Store) ListVolumeBooks(ctx context.Context, volume store.VolumeID) ([]store.Book, error) {
	start := time.Now()
	list, err := s.next.ListVolumeBooks(ctx, volume)
	s.observe("list_volume_books", start, err)
	return list, err
}

func (s *Store) ListChapters(ctx context.Context, book store.BookID) ([]store.Chapter, error) {
	start := time.Now()
	list, err := s.next.ListChapters(ctx, book)
	s.observe("list_chapters", start, err)
	return list, err
}

func (s *Store) FindBook(ctx context.Context, title string, corpus store.CorpusID) (store.Book, bool, error) {
	start := time.Now()
	b, ok, err := s.next.FindBook(ctx, title, corpus)
	s.observe("find_book", start, err)
	return b, ok, err
}

func (s *Store) BookPairs(ctx context.Context, book store.BookID) ([]store.VersePair, error) {
	start := time.Now()
	list, err := s.next.BookPairs(ctx, book)
	s.observe("book_pairs", start, err)
	return list, err
}

func (s *Store) ChapterPairs(ctx context.Context, chapter store.ChapterID) ([]store.VersePair, error) {
	start := time.Now()
	list, err := s.next.ChapterPairs(ctx, chapter)
	s.observe("chapter_pairs", start, err)
	return list, err
}

func (s *Store) ChapterInfo(ctx context.Context, chapter store.ChapterID, corpus store.CorpusID) (store.Book, store.Chapter, bool, error) {
	start := time.Now()
	b, c, ok, err := s.next.ChapterInfo(ctx, chapter, corpus)
	s.observe("chapter_info", start, err)
	return b, c, ok, err
}
