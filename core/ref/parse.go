package ref

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// verseGrammar matches "Book Chapter:Verse". The book is every token
// before the locator, so numerals may appear anywhere in it.
// Examples: "Genesis 1:1", "1 Ne. 3:7", "D&C 76:22-24", "OD 1 1:1"
//
//nolint:govet // participle grammar tags are not standard struct tags
type verseGrammar struct {
	Book    []string `@(Word | Int)+`
	Locator string   `@Locator`
}

// chapterGrammar matches "Book Chapter" with nothing after the chapter. The
// repetition cannot stop short of the final Int, so the chapter is split
// off in ParseChapterRef.
// Examples: "Gen 1", "1 Nephi 3", "Official Declaration 1 1"
//
//nolint:govet // participle grammar tags are not standard struct tags
type chapterGrammar struct {
	Tokens []string `@(Word | Int)+`
}

// refLexer tokenizes human references. Rule order matters: Locator must be
// tried before Int so "3:7" is not split. Word cannot start with a digit or
// contain a colon, which forces whitespace between book text and numbers
// ("Gen1:1" does not lex).
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Locator", Pattern: `[0-9]+:[0-9].*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Word", Pattern: `[^\s0-9:][^\s:]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var verseParser = participle.MustBuild[verseGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

var chapterParser = participle.MustBuild[chapterGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// ParseVerseRef parses a "Book Chapter:Verse" reference. The verse token is
// kept as text so suffixes survive ("7a", "7-9"). The book is passed through
// Normalize. A string that does not match reports false; that is an input
// problem for the caller to phrase, not a fault.
func ParseVerseRef(raw string) (VerseRef, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return VerseRef{}, false
	}

	parsed, err := verseParser.ParseString("", s)
	if err != nil {
		return VerseRef{}, false
	}

	if !hasWord(parsed.Book) {
		return VerseRef{}, false
	}

	colon := strings.IndexByte(parsed.Locator, ':')
	chapter, err := strconv.Atoi(parsed.Locator[:colon])
	if err != nil {
		return VerseRef{}, false
	}

	return VerseRef{
		Book:    Normalize(strings.Join(parsed.Book, " ")),
		Chapter: chapter,
		Verse:   strings.TrimSpace(parsed.Locator[colon+1:]),
	}, true
}

// ParseChapterRef parses a "Book Chapter" reference. Input containing a
// chapter:verse locator does not match; callers branch on the colon and pick
// the grammar themselves.
func ParseChapterRef(raw string) (ChapterRef, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ChapterRef{}, false
	}

	parsed, err := chapterParser.ParseString("", s)
	if err != nil {
		return ChapterRef{}, false
	}

	// Word tokens never start with a digit, so only an Int converts.
	last := len(parsed.Tokens) - 1
	chapter, err := strconv.Atoi(parsed.Tokens[last])
	if err != nil || !hasWord(parsed.Tokens[:last]) {
		return ChapterRef{}, false
	}

	return ChapterRef{
		Book:    Normalize(strings.Join(parsed.Tokens[:last], " ")),
		Chapter: chapter,
	}, true
}

// HasVerse reports whether raw carries a chapter:verse locator, which is how
// callers choose between ParseVerseRef and ParseChapterRef.
func HasVerse(raw string) bool {
	return strings.Contains(raw, ":")
}

// hasWord reports whether a book segment holds any non-numeric token. A
// bare number is never a book.
func hasWord(tokens []string) bool {
	for _, tok := range tokens {
		if _, err := strconv.Atoi(tok); err != nil {
			return true
		}
	}
	return false
}
