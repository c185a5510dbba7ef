package leitner

import (
	"context"

	"github.com/imhonza/cranky-language-tutor/internal/phrase"
	"github.com/imhonza/cranky-language-tutor/internal/store"
)

// Repository is durable phrase storage partitioned by owner.
type Repository interface {
	// CountPhrases counts the owner's phrases matching filter.
	CountPhrases(ctx context.Context, owner string, filter phrase.Filter) (int, error)

	// FetchPhrases returns up to limit matching phrases in no particular
	// order. A limit of 0 means no limit.
	FetchPhrases(ctx context.Context, owner string, filter phrase.Filter, limit int) ([]*phrase.Phrase, error)

	// SampleRandomPhrase returns one matching phrase chosen uniformly at
	// random, or nil if nothing matches.
	SampleRandomPhrase(ctx context.Context, owner string, filter phrase.Filter) (*phrase.Phrase, error)

	// GetPhrase returns the owner's phrase by ID, or nil if there is none.
	GetPhrase(ctx context.Context, owner, id string) (*phrase.Phrase, error)

	// UpsertPhrase creates or replaces the phrase keyed by its ID.
	UpsertPhrase(ctx context.Context, owner string, p *phrase.Phrase) error
}

// Generator produces new phrase texts in a target language.
type Generator interface {
	// GenerateBatch returns up to count phrase texts. Malformed or
	// unparseable output is reported as an error.
	GenerateBatch(ctx context.Context, language string, count int) ([]string, error)
}

// Translator fills in the translation of a freshly created phrase.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// EventSink records drill outcomes. Failures are logged, never returned.
type EventSink interface {
	AppendReview(ctx context.Context, data store.ReviewEventData) error
}
