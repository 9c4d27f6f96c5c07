package compare

import (
	"github.com/FocuswithJustin/CanonBridge/core/ref"
	"github.com/FocuswithJustin/CanonBridge/core/store"
)

// Row is one source verse beside its counterpart, annotated for display.
type Row struct {
	SourceChapter int    `json:"source_chapter"`
	SourceVerse   int    `json:"source_verse"`
	SourceText    string `json:"source_text"`

	// Target is nil when the source verse has no cross-reference.
	Target    *store.VerseRecord `json:"target,omitempty"`
	TargetRef string             `json:"target_ref,omitempty"`

	// NewSourceChapter marks the first row of each source chapter.
	NewSourceChapter bool `json:"new_source_chapter"`

	// NewTargetGroup marks a mapped row whose target book and chapter differ
	// from the previous mapped row. Unmapped rows in between do not reset
	// the grouping.
	NewTargetGroup bool `json:"new_target_group"`
}

// Mapped reports whether the row has a counterpart.
func (r Row) Mapped() bool {
	return r.Target != nil
}

// TargetGroup returns the "Book Chapter" heading of the row's target, or ""
// for an unmapped row.
func (r Row) TargetGroup() string {
	if r.Target == nil {
		return ""
	}
	return ref.ChapterRef{Book: r.Target.BookTitle, Chapter: r.Target.ChapterNumber}.String()
}

// annotate turns ordered pairs into display rows.
func annotate(pairs []store.VersePair) []Row {
	rows := make([]Row, 0, len(pairs))

	var (
		lastChapter int
		lastGroup   string
	)
	for i, p := range pairs {
		row := Row{
			SourceChapter:    p.SourceChapter,
			SourceVerse:      p.SourceVerse,
			SourceText:       p.SourceText,
			Target:           p.Target,
			NewSourceChapter: i == 0 || p.SourceChapter != lastChapter,
		}
		lastChapter = p.SourceChapter

		if p.Target != nil {
			row.TargetRef = p.Target.Components().String()
			if group := row.TargetGroup(); group != lastGroup {
				row.NewTargetGroup = true
				lastGroup = group
			}
		}
		rows = append(rows, row)
	}
	return rows
}
