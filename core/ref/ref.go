// Package ref parses, normalizes, and formats human scripture references.
//
// It holds no state beyond the immutable book-name table and the compiled
// grammars, so every function is safe for concurrent use.
package ref

import (
	"fmt"
	"strconv"
)

// VerseRef is a parsed "Book Chapter:Verse" reference.
type VerseRef struct {
	// Book is the normalized book title, or the raw book text when the
	// normalizer had no entry for it.
	Book string `json:"book"`

	// Chapter is the chapter number.
	Chapter int `json:"chapter"`

	// Verse is the verse token as typed: digits plus any trailing text
	// such as a letter suffix ("7a") or a range tail ("7-9").
	Verse string `json:"verse"`
}

// Number returns the leading integer of the verse token, or 0 if the token
// does not start with a digit.
func (r VerseRef) Number() int {
	end := 0
	for end < len(r.Verse) && r.Verse[end] >= '0' && r.Verse[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(r.Verse[:end])
	if err != nil {
		return 0
	}
	return n
}

// String returns the reference in "Book C:V" form.
func (r VerseRef) String() string {
	return fmt.Sprintf("%s %d:%s", r.Book, r.Chapter, r.Verse)
}

// ChapterRef is a parsed "Book Chapter" reference.
type ChapterRef struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
}

// String returns the reference in "Book C" form.
func (r ChapterRef) String() string {
	return fmt.Sprintf("%s %d", r.Book, r.Chapter)
}

// Components is a resolved verse location as stored: canonical book title,
// chapter number, verse number.
type Components struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

// String returns the components in "Book C:V" form.
func (c Components) String() string {
	return fmt.Sprintf("%s %d:%d", c.Book, c.Chapter, c.Verse)
}

// SameChapter reports whether c and other share book and chapter.
func (c Components) SameChapter(other Components) bool {
	return c.Book == other.Book && c.Chapter == other.Chapter
}
