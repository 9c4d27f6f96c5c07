package ref

import "fmt"

// rangeDash separates range endpoints (U+2013 EN DASH).
const rangeDash = "–"

// FormatRange renders the shortest unambiguous description of the span from
// start to end:
//
//	Alma 5:3              identical endpoints
//	Alma 5:3–9            same book and chapter
//	Alma 5:3–6:2          same book
//	Mosiah 29:47–Alma 1:4 different books
//
// Either endpoint nil reports false; a partial range is never formatted.
func FormatRange(start, end *Components) (string, bool) {
	if start == nil || end == nil {
		return "", false
	}

	switch {
	case *start == *end:
		return start.String(), true
	case start.SameChapter(*end):
		return fmt.Sprintf("%s %d:%d%s%d", start.Book, start.Chapter, start.Verse, rangeDash, end.Verse), true
	case start.Book == end.Book:
		return fmt.Sprintf("%s %d:%d%s%d:%d", start.Book, start.Chapter, start.Verse, rangeDash, end.Chapter, end.Verse), true
	default:
		return start.String() + rangeDash + end.String(), true
	}
}
