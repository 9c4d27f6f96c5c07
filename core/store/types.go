package store

import "github.com/FocuswithJustin/CanonBridge/core/ref"

// Identifiers are opaque integers assigned at load time. Verse ids are
// monotonic in canonical reading order across a whole corpus; the range
// operations depend on that and never check it.
type (
	CorpusID  int64
	VolumeID  int64
	BookID    int64
	ChapterID int64
	VerseID   int64
)

// Corpus is one canon.
type Corpus struct {
	ID   CorpusID `json:"id"`
	Code string   `json:"code"`
}

// Volume is a top-level grouping of books within a corpus.
type Volume struct {
	ID     VolumeID `json:"id"`
	Corpus CorpusID `json:"corpus_id,omitempty"`
	Title  string   `json:"title"`
}

// Book belongs to exactly one volume. ShortTitle is empty when the book has
// none.
type Book struct {
	ID         BookID   `json:"id"`
	Volume     VolumeID `json:"volume_id,omitempty"`
	Title      string   `json:"title"`
	ShortTitle string   `json:"short_title,omitempty"`
}

// Chapter belongs to exactly one book.
type Chapter struct {
	ID     ChapterID `json:"id"`
	Book   BookID    `json:"book_id,omitempty"`
	Number int       `json:"number"`
}

// Verse is the atomic text unit.
type Verse struct {
	ID      VerseID   `json:"id"`
	Chapter ChapterID `json:"chapter_id,omitempty"`
	Number  int       `json:"number"`
	Text    string    `json:"text"`
}

// VerseRecord is a verse with its book title and chapter number, as returned
// by range reads.
type VerseRecord struct {
	Verse
	BookTitle     string `json:"book"`
	ChapterNumber int    `json:"chapter"`
}

// Components returns the record's location.
func (r VerseRecord) Components() ref.Components {
	return ref.Components{Book: r.BookTitle, Chapter: r.ChapterNumber, Verse: r.Number}
}

// ChapterBounds is a chapter id with the smallest and largest verse ids in
// that chapter.
type ChapterBounds struct {
	Chapter ChapterID `json:"chapter_id"`
	First   VerseID   `json:"first_verse_id"`
	Last    VerseID   `json:"last_verse_id"`
}

// VersePair is one source verse joined with its cross-reference target, if
// any. Target is nil for unmapped source verses.
type VersePair struct {
	SourceID      VerseID      `json:"source_id"`
	SourceChapter int          `json:"source_chapter"`
	SourceVerse   int          `json:"source_verse"`
	SourceText    string       `json:"source_text"`
	Target        *VerseRecord `json:"target,omitempty"`
}
