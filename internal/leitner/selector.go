package leitner

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/imhonza/cranky-language-tutor/internal/phrase"
)

// DefaultReviewProbability is the chance that a draw resurfaces a mastered
// phrase instead of drilling the active set.
const DefaultReviewProbability = 0.2

// Selector picks the next phrase to present. It never mutates phrases.
type Selector struct {
	repo              Repository
	rnd               *rand.Rand
	reviewProbability float64
	logger            *slog.Logger
}

// NewSelector creates a selector. A nil rnd uses a randomly seeded source.
func NewSelector(repo Repository, rnd *rand.Rand, reviewProbability float64, logger *slog.Logger) *Selector {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{
		repo:              repo,
		rnd:               rnd,
		reviewProbability: reviewProbability,
		logger:            orDefault(logger),
	}
}

// Select chooses one phrase. With a non-empty active set it usually picks
// uniformly from it and occasionally draws a mastered phrase for review,
// falling back to the active set when no mastered phrase can be fetched.
// With an empty active set it samples any active phrase from storage and
// returns nil if there is none.
func (s *Selector) Select(ctx context.Context, owner string, active []*phrase.Phrase) (*phrase.Phrase, error) {
	if len(active) == 0 {
		p, err := s.repo.SampleRandomPhrase(ctx, owner, phrase.ActiveOnly())
		if err != nil {
			return nil, fmt.Errorf("sample active phrase: %w", err)
		}
		return p, nil
	}

	if s.rnd.Float64() < s.reviewProbability {
		p, err := s.repo.SampleRandomPhrase(ctx, owner, phrase.AtStage(phrase.StageMastered))
		switch {
		case err != nil:
			s.logger.Warn("review draw failed, using active set", "owner", owner, "err", err)
		case p != nil:
			s.logger.Debug("review draw", "owner", owner, "phrase_id", p.ID)
			return p, nil
		}
	}

	return active[s.rnd.IntN(len(active))], nil
}
