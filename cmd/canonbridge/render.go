package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/FocuswithJustin/CanonBridge/core/compare"
)

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outcomeError turns the outcomes that mean "nothing to show" into errors so
// the process exits non-zero.
func outcomeError(outcome compare.Outcome, input, source, usage string) error {
	switch outcome {
	case compare.InvalidInput:
		return fmt.Errorf("invalid format %q: use %s", input, usage)
	case compare.SourceNotFound:
		return fmt.Errorf("could not find %q in the %s canon", input, source)
	}
	return nil
}

func renderVerse(out io.Writer, res *compare.VerseComparison) error {
	source, target := res.Corpora.Source.Code, res.Corpora.Target.Code
	if err := outcomeError(res.Outcome, res.Input, source, `"Book Chapter:Verse" (e.g. 1 Nephi 3:7)`); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %s\n", source, res.Parsed)
	if res.Source != nil {
		fmt.Fprintf(out, "    %s\n", res.Source.Text)
	}
	if res.Outcome == compare.NoCrossReference {
		fmt.Fprintf(out, "%s was found, but no cross-reference exists.\n", res.Input)
		return nil
	}
	fmt.Fprintf(out, "%s: %s\n", target, res.TargetRef)
	fmt.Fprintf(out, "    %s\n", res.TargetText)
	return nil
}

func renderChapter(out io.Writer, res *compare.ChapterComparison) error {
	source, target := res.Corpora.Source.Code, res.Corpora.Target.Code
	if err := outcomeError(res.Outcome, res.Input, source, `"Book Chapter" (e.g. Alma 5)`); err != nil {
		return err
	}

	switch res.Outcome {
	case compare.NoCrossReference:
		fmt.Fprintf(out, "%s: %s was found, but its last verse has no cross-reference.\n", source, res.Parsed)
	default:
		fmt.Fprintf(out, "%s: %s\n%s: %s\n", source, res.Parsed, target, res.Range)
	}
	fmt.Fprintln(out)
	renderRows(out, res.Rows)
	return nil
}

func renderBook(out io.Writer, res *compare.BookComparison) error {
	source, target := res.Corpora.Source.Code, res.Corpora.Target.Code
	if err := outcomeError(res.Outcome, res.Input, source, "a book title"); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %s (cross-references in %s)\n", source, res.Book.Title, target)
	if len(res.Rows) == 0 {
		fmt.Fprintf(out, "No data found for %s.\n", res.Book.Title)
		return nil
	}
	renderRows(out, res.Rows)
	return nil
}

func renderView(out io.Writer, res *compare.ChapterView) error {
	if res.Outcome == compare.SourceNotFound {
		return fmt.Errorf("no such chapter in the %s canon", res.Corpora.Source.Code)
	}

	fmt.Fprintf(out, "%s: %s (cross-references in %s)\n", res.Corpora.Source.Code, res.Title, res.Corpora.Target.Code)
	renderRows(out, res.Rows)
	return nil
}

// renderRows prints each source verse followed by its counterpart. Chapter
// and target-group headings come from the row annotations.
func renderRows(out io.Writer, rows []compare.Row) {
	for _, r := range rows {
		if r.NewSourceChapter {
			fmt.Fprintf(out, "\nChapter %d\n", r.SourceChapter)
		}
		fmt.Fprintf(out, "%4d  %s\n", r.SourceVerse, r.SourceText)

		if !r.Mapped() {
			fmt.Fprintf(out, "      -> No cross-reference\n")
			continue
		}
		if r.NewTargetGroup {
			fmt.Fprintf(out, "      -- %s --\n", r.TargetGroup())
		}
		fmt.Fprintf(out, "      -> %s  %s\n", r.TargetRef, r.Target.Text)
	}
}
