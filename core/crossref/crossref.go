// Package crossref follows cross-reference edges from one canon into the
// other.
//
// The mapping is a sparse partial function: an edge maps one source verse to
// at most one target verse. The resolver follows exactly one edge per
// request. It never chains through a target's own edge and never looks for
// an edge pointing back, because the mapping is neither symmetric nor
// injective.
package crossref

import (
	"context"

	"github.com/FocuswithJustin/CanonBridge/core/store"
)

// EdgeLookup is the slice of store.Store the resolver needs.
type EdgeLookup interface {
	CrossReference(ctx context.Context, source store.VerseID) (store.VerseID, bool, error)
}

// Span is a contiguous run of target verse ids. First may be greater than
// Last when the mapping reverses order; readers of the span swap as needed.
type Span struct {
	First store.VerseID `json:"first"`
	Last  store.VerseID `json:"last"`
}

// Single reports whether the span covers one verse.
func (s Span) Single() bool {
	return s.First == s.Last
}

// Resolver maps source verses to target verses.
type Resolver struct {
	edges EdgeLookup
}

// NewResolver creates a resolver over edges.
func NewResolver(edges EdgeLookup) *Resolver {
	return &Resolver{edges: edges}
}

// ResolveTarget follows the edge leaving source. No edge reports false.
func (r *Resolver) ResolveTarget(ctx context.Context, source store.VerseID) (store.VerseID, bool, error) {
	return r.edges.CrossReference(ctx, source)
}

// ResolveChapter maps a chapter to a target span by resolving its first and
// last verses independently. Intermediate verses are not consulted. If either
// boundary has no edge the chapter has no span; a partial range is never
// produced.
func (r *Resolver) ResolveChapter(ctx context.Context, bounds store.ChapterBounds) (Span, bool, error) {
	first, ok, err := r.ResolveTarget(ctx, bounds.First)
	if err != nil || !ok {
		return Span{}, false, err
	}

	last, ok, err := r.ResolveTarget(ctx, bounds.Last)
	if err != nil || !ok {
		return Span{}, false, err
	}

	return Span{First: first, Last: last}, true, nil
}
