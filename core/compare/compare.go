// Package compare assembles side-by-side views of the two canons: a single
// verse converted across, a chapter treated as a range, and whole books or
// chapters read row by row next to their counterparts.
//
// Results carry an Outcome that separates malformed input and plain absence
// from success. Only faults (store or integrity) come back as errors.
package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/CanonBridge/core/crossref"
	"github.com/FocuswithJustin/CanonBridge/core/errors"
	"github.com/FocuswithJustin/CanonBridge/core/ref"
	"github.com/FocuswithJustin/CanonBridge/core/store"
)

// Outcome classifies a comparison request.
type Outcome string

const (
	// InvalidInput means the reference matched no grammar.
	InvalidInput Outcome = "invalid_input"
	// SourceNotFound means the reference parsed but names nothing in the
	// source corpus.
	SourceNotFound Outcome = "source_not_found"
	// NoCrossReference means the source exists but has no mapping.
	NoCrossReference Outcome = "no_cross_reference"
	// Resolved means the source and its counterpart were both found.
	Resolved Outcome = "resolved"
)

// Default corpus codes.
const (
	DefaultPrimary   = "LDS"
	DefaultSecondary = "RLDS"
)

// Comparer answers comparison requests against a store. It holds no mutable
// state and is safe for concurrent use.
type Comparer struct {
	store     store.Store
	resolver  *crossref.Resolver
	primary   string
	secondary string
}

// New creates a Comparer for the two corpus codes. Empty codes fall back to
// DefaultPrimary and DefaultSecondary.
func New(s store.Store, primary, secondary string) *Comparer {
	if primary == "" {
		primary = DefaultPrimary
	}
	if secondary == "" {
		secondary = DefaultSecondary
	}
	return &Comparer{
		store:     s,
		resolver:  crossref.NewResolver(s),
		primary:   primary,
		secondary: secondary,
	}
}

// Codes returns the primary and secondary corpus codes.
func (c *Comparer) Codes() (string, string) {
	return c.primary, c.secondary
}

// Direction is the pair of corpora a request reads from and maps into.
type Direction struct {
	Source store.Corpus `json:"source"`
	Target store.Corpus `json:"target"`
}

// Direction resolves from (a corpus code, compared case-insensitively) to
// the source corpus and the opposite target corpus. Both configured codes
// must exist in the store; a missing one is an integrity fault. An unknown
// from is a validation error.
func (c *Comparer) Direction(ctx context.Context, from string) (Direction, error) {
	corpora, err := c.store.Corpora(ctx)
	if err != nil {
		return Direction{}, err
	}

	var primary, secondary *store.Corpus
	for i := range corpora {
		switch {
		case strings.EqualFold(corpora[i].Code, c.primary):
			primary = &corpora[i]
		case strings.EqualFold(corpora[i].Code, c.secondary):
			secondary = &corpora[i]
		}
	}
	if primary == nil || secondary == nil {
		return Direction{}, errors.NewIntegrity("corpus", c.primary+","+c.secondary,
			fmt.Sprintf("corpus table must contain both %s and %s", c.primary, c.secondary))
	}

	switch {
	case strings.EqualFold(from, c.primary):
		return Direction{Source: *primary, Target: *secondary}, nil
	case strings.EqualFold(from, c.secondary):
		return Direction{Source: *secondary, Target: *primary}, nil
	default:
		return Direction{}, errors.NewValidation("from",
			fmt.Sprintf("unknown corpus %q, expected %s or %s", from, c.primary, c.secondary))
	}
}

// targetComponents reconstructs a target verse's location. The edge was
// followed from the source corpus, so a target outside the target corpus
// means the edge table is corrupt.
func (c *Comparer) targetComponents(ctx context.Context, id store.VerseID, target store.Corpus) (ref.Components, error) {
	comp, ok, err := c.store.FetchComponents(ctx, id, target.ID)
	if err != nil {
		return ref.Components{}, err
	}
	if !ok {
		return ref.Components{}, errors.NewIntegrity("cross_reference", fmt.Sprintf("target verse %d", id),
			"target is not in corpus "+target.Code)
	}
	return comp, nil
}
