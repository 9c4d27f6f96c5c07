package compare

import (
	"context"

	"github.com/FocuswithJustin/CanonBridge/core/ref"
	"github.com/FocuswithJustin/CanonBridge/core/store"
)

// VerseComparison is the result of converting one verse reference.
type VerseComparison struct {
	Input   string    `json:"input"`
	Outcome Outcome   `json:"outcome"`
	Corpora Direction `json:"corpora"`

	// Parsed is set unless Outcome is InvalidInput.
	Parsed *ref.VerseRef `json:"parsed,omitempty"`

	// Source is set when the verse exists in the source corpus.
	Source *store.Verse `json:"source,omitempty"`

	// Target fields are set when Outcome is Resolved.
	Target     *ref.Components `json:"target,omitempty"`
	TargetRef  string          `json:"target_ref,omitempty"`
	TargetText string          `json:"target_text,omitempty"`
}

// Verse converts a "Book Chapter:Verse" reference from the corpus named by
// from into the other corpus. Store lookups use the leading digits of the
// verse token, so "7a" resolves verse 7.
func (c *Comparer) Verse(ctx context.Context, raw, from string) (*VerseComparison, error) {
	dir, err := c.Direction(ctx, from)
	if err != nil {
		return nil, err
	}
	res := &VerseComparison{Input: raw, Corpora: dir}

	parsed, ok := ref.ParseVerseRef(raw)
	if !ok {
		res.Outcome = InvalidInput
		return res, nil
	}
	res.Parsed = &parsed

	src, ok, err := c.store.ResolveVerse(ctx, parsed.Book, parsed.Chapter, parsed.Number(), dir.Source.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		res.Outcome = SourceNotFound
		return res, nil
	}
	res.Source = &src

	targetID, ok, err := c.resolver.ResolveTarget(ctx, src.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		res.Outcome = NoCrossReference
		return res, nil
	}

	comp, err := c.targetComponents(ctx, targetID, dir.Target)
	if err != nil {
		return nil, err
	}
	res.Target = &comp
	res.TargetRef, _ = ref.FormatRange(&comp, &comp)

	records, err := c.store.FetchContiguous(ctx, targetID, targetID)
	if err != nil {
		return nil, err
	}
	if len(records) == 1 {
		res.TargetText = records[0].Text
	}

	res.Outcome = Resolved
	return res, nil
}
