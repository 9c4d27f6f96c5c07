package compare

import (
	"context"
	"strings"

	"github.com/FocuswithJustin/CanonBridge/core/crossref"
	"github.com/FocuswithJustin/CanonBridge/core/ref"
	"github.com/FocuswithJustin/CanonBridge/core/store"
)

// ChapterComparison is a chapter viewed as a range: where its first and last
// verses land in the other corpus, the target verses in between, and the
// verse-by-verse rows.
type ChapterComparison struct {
	Input   string    `json:"input"`
	Outcome Outcome   `json:"outcome"`
	Corpora Direction `json:"corpora"`

	Parsed *ref.ChapterRef      `json:"parsed,omitempty"`
	Bounds *store.ChapterBounds `json:"bounds,omitempty"`

	// Range is set when both chapter boundaries map.
	Range      string              `json:"range,omitempty"`
	RangeStart *ref.Components     `json:"range_start,omitempty"`
	RangeEnd   *ref.Components     `json:"range_end,omitempty"`
	Span       *crossref.Span      `json:"span,omitempty"`
	Targets    []store.VerseRecord `json:"targets,omitempty"`

	Rows []Row `json:"rows,omitempty"`
}

// Chapter compares a "Book Chapter" reference. Outcome is Resolved when both
// boundaries map, NoCrossReference when either does not; rows are filled in
// both cases.
func (c *Comparer) Chapter(ctx context.Context, raw, from string) (*ChapterComparison, error) {
	dir, err := c.Direction(ctx, from)
	if err != nil {
		return nil, err
	}
	res := &ChapterComparison{Input: raw, Corpora: dir}

	parsed, ok := ref.ParseChapterRef(raw)
	if !ok {
		res.Outcome = InvalidInput
		return res, nil
	}
	res.Parsed = &parsed

	bounds, ok, err := c.store.ResolveChapterBounds(ctx, parsed.Book, parsed.Chapter, dir.Source.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		res.Outcome = SourceNotFound
		return res, nil
	}
	res.Bounds = &bounds

	if err := c.fillRange(ctx, res, bounds, dir.Target); err != nil {
		return nil, err
	}

	pairs, err := c.store.ChapterPairs(ctx, bounds.Chapter)
	if err != nil {
		return nil, err
	}
	res.Rows = annotate(pairs)
	return res, nil
}

func (c *Comparer) fillRange(ctx context.Context, res *ChapterComparison, bounds store.ChapterBounds, target store.Corpus) error {
	span, ok, err := c.resolver.ResolveChapter(ctx, bounds)
	if err != nil {
		return err
	}
	if !ok {
		res.Outcome = NoCrossReference
		return nil
	}

	start, err := c.targetComponents(ctx, span.First, target)
	if err != nil {
		return err
	}
	end, err := c.targetComponents(ctx, span.Last, target)
	if err != nil {
		return err
	}
	if span.First > span.Last {
		start, end = end, start
	}

	targets, err := c.store.FetchContiguous(ctx, span.First, span.Last)
	if err != nil {
		return err
	}

	res.Span = &span
	res.RangeStart, res.RangeEnd = &start, &end
	res.Range, _ = ref.FormatRange(&start, &end)
	res.Targets = targets
	res.Outcome = Resolved
	return nil
}

// ChapterView is a chapter read by id, as a navigation-driven reader does.
type ChapterView struct {
	Outcome Outcome   `json:"outcome"`
	Corpora Direction `json:"corpora"`

	Book    *store.Book    `json:"book,omitempty"`
	Chapter *store.Chapter `json:"chapter,omitempty"`
	Title   string         `json:"title,omitempty"`
	Rows    []Row          `json:"rows,omitempty"`
}

// ChapterByID returns the rows of a chapter chosen from the navigation
// listings. from names the corpus the chapter belongs to; a chapter of the
// other corpus is SourceNotFound.
func (c *Comparer) ChapterByID(ctx context.Context, id store.ChapterID, from string) (*ChapterView, error) {
	dir, err := c.Direction(ctx, from)
	if err != nil {
		return nil, err
	}
	res := &ChapterView{Corpora: dir}

	book, chapter, ok, err := c.store.ChapterInfo(ctx, id, dir.Source.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		res.Outcome = SourceNotFound
		return res, nil
	}
	res.Book, res.Chapter = &book, &chapter
	res.Title = ref.ChapterRef{Book: book.Title, Chapter: chapter.Number}.String()

	pairs, err := c.store.ChapterPairs(ctx, id)
	if err != nil {
		return nil, err
	}
	res.Rows = annotate(pairs)
	res.Outcome = Resolved
	return res, nil
}

// BookComparison is every verse of a book next to its counterpart.
type BookComparison struct {
	Input   string      `json:"input"`
	Outcome Outcome     `json:"outcome"`
	Corpora Direction   `json:"corpora"`
	Book    *store.Book `json:"book,omitempty"`
	Rows    []Row       `json:"rows,omitempty"`
}

// Book compares an entire book. title is matched exactly first, then through
// the book-name normalizer, so both "1 Nephi" and "1 Ne." work.
func (c *Comparer) Book(ctx context.Context, title, from string) (*BookComparison, error) {
	dir, err := c.Direction(ctx, from)
	if err != nil {
		return nil, err
	}
	res := &BookComparison{Input: title, Corpora: dir}

	title = strings.TrimSpace(title)
	if title == "" {
		res.Outcome = InvalidInput
		return res, nil
	}

	book, ok, err := c.store.FindBook(ctx, title, dir.Source.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		if canonical, hit := ref.Lookup(title); hit && canonical != title {
			book, ok, err = c.store.FindBook(ctx, canonical, dir.Source.ID)
			if err != nil {
				return nil, err
			}
		}
	}
	if !ok {
		res.Outcome = SourceNotFound
		return res, nil
	}
	res.Book = &book

	pairs, err := c.store.BookPairs(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	res.Rows = annotate(pairs)
	res.Outcome = Resolved
	return res, nil
}
