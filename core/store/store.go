// Package store reads the corpus → volume → book → chapter → verse hierarchy
// and the cross-reference edges between the two canons.
//
// Every lookup distinguishes absence from failure: a missing row is reported
// as (zero, false, nil), while a driver failure is an *errors.StoreError and a
// violated data invariant (duplicate rows, more than one edge) is an
// *errors.IntegrityError. Nothing in this package writes.
package store

import (
	"context"

	"github.com/FocuswithJustin/CanonBridge/core/ref"
)

// Store is the read-only query surface over a loaded corpus database.
// Implementations must be safe for concurrent use.
type Store interface {
	// Corpora lists every corpus in id order.
	Corpora(ctx context.Context) ([]Corpus, error)

	// ResolveVerse finds the verse with the given chapter and verse numbers in
	// the book whose full or short title matches book case-insensitively,
	// scoped to corpus.
	ResolveVerse(ctx context.Context, book string, chapter, verse int, corpus CorpusID) (Verse, bool, error)

	// ResolveChapterBounds finds a chapter and its first and last verse ids.
	// A chapter with no verses is reported as absent.
	ResolveChapterBounds(ctx context.Context, book string, chapter int, corpus CorpusID) (ChapterBounds, bool, error)

	// FetchContiguous returns every verse with first <= id <= last in id
	// order. The bounds are swapped when first > last.
	FetchContiguous(ctx context.Context, first, last VerseID) ([]VerseRecord, error)

	// FetchComponents returns the book title, chapter number and verse
	// number of id, provided the verse belongs to corpus.
	FetchComponents(ctx context.Context, id VerseID, corpus CorpusID) (ref.Components, bool, error)

	// CrossReference returns the single target of the edge leaving source.
	CrossReference(ctx context.Context, source VerseID) (VerseID, bool, error)

	ListVolumes(ctx context.Context, corpus CorpusID) ([]Volume, error)
	ListBooks(ctx context.Context, corpus CorpusID) ([]Book, error)
	ListVolumeBooks(ctx context.Context, volume VolumeID) ([]Book, error)
	ListChapters(ctx context.Context, book BookID) ([]Chapter, error)

	// FindBook finds a book within corpus by full or short title, ignoring
	// case.
	FindBook(ctx context.Context, title string, corpus CorpusID) (Book, bool, error)

	// BookPairs returns every verse of book joined with its cross-reference
	// target, ordered by source verse id.
	BookPairs(ctx context.Context, book BookID) ([]VersePair, error)

	// ChapterPairs is BookPairs restricted to one chapter.
	ChapterPairs(ctx context.Context, chapter ChapterID) ([]VersePair, error)

	// ChapterInfo returns a chapter together with its book. The chapter must
	// belong to corpus.
	ChapterInfo(ctx context.Context, chapter ChapterID, corpus CorpusID) (Book, Chapter, bool, error)
}
