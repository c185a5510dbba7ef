// Package leitner schedules phrase drills for one learner using a five
// stage Leitner system with a bounded active working set.
//
// A Scheduler owns the learner's in-memory active set. When the set drops
// below its floor it is topped up, first from the learner's backlog and
// then from the content generator. Otherwise the next phrase is drawn at
// random from the active set, occasionally swapped for a mastered phrase
// so old material resurfaces.
package leitner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/imhonza/cranky-language-tutor/internal/phrase"
)

// Options configures a Scheduler.
type Options struct {
	// Owner is the learner whose phrases are scheduled.
	Owner string

	// Language is the target language used when generating new phrases.
	Language string

	Capacity Capacity

	// ReviewProbability is the chance of drawing a mastered phrase.
	ReviewProbability float64

	Repository Repository

	// Generator produces new phrases once the backlog is exhausted.
	// Nil disables generation.
	Generator Generator

	// Translator fills translations of generated phrases. Optional.
	Translator Translator

	// Events receives one review event per recorded outcome. Optional.
	Events EventSink

	// Rand drives selection. Tests inject a seeded source.
	Rand *rand.Rand

	Logger *slog.Logger
	Now    func() time.Time
}

// Stats is a read-only aggregate over all of a learner's phrases.
type Stats struct {
	Total     int `json:"total"`
	Practiced int `json:"practiced"`
	Mastered  int `json:"mastered"`
}

// Scheduler decides which phrase a learner drills next and records the
// outcome. All methods are safe for concurrent use; calls are serialized.
type Scheduler struct {
	mu sync.Mutex

	owner    string
	language string
	capacity Capacity
	active   activeSet

	repo       Repository
	activator  *BacklogActivator
	refiller   *GenerationRefiller
	selector   *Selector
	recorder   *Recorder
	translator Translator
	logger     *slog.Logger
	now        func() time.Time
}

// New validates opts and loads the learner's active set from storage.
func New(ctx context.Context, opts Options) (*Scheduler, error) {
	if opts.Owner == "" {
		return nil, errors.New("scheduler owner is required")
	}
	if opts.Repository == nil {
		return nil, errors.New("scheduler repository is required")
	}
	if err := opts.Capacity.Validate(); err != nil {
		return nil, err
	}
	if opts.ReviewProbability < 0 || opts.ReviewProbability > 1 {
		return nil, fmt.Errorf("review probability %.2f outside [0,1]", opts.ReviewProbability)
	}

	logger := orDefault(opts.Logger).With("owner", opts.Owner)
	now := orNow(opts.Now)

	s := &Scheduler{
		owner:      opts.Owner,
		language:   opts.Language,
		capacity:   opts.Capacity,
		repo:       opts.Repository,
		activator:  NewBacklogActivator(opts.Repository, logger, now),
		selector:   NewSelector(opts.Repository, opts.Rand, opts.ReviewProbability, logger),
		recorder:   NewRecorder(opts.Repository, opts.Events, logger, now),
		translator: opts.Translator,
		logger:     logger,
		now:        now,
	}
	if opts.Generator != nil {
		s.refiller = NewGenerationRefiller(opts.Repository, opts.Generator, opts.Translator, logger, now)
	}

	if err := s.loadActive(ctx); err != nil {
		return nil, err
	}
	logger.Debug("scheduler ready", "active", s.active.len(), "language", s.language)
	return s, nil
}

// Owner returns the learner this scheduler belongs to.
func (s *Scheduler) Owner() string { return s.owner }

// Language returns the learner's target language.
func (s *Scheduler) Language() string { return s.language }

// ActiveCount returns the size of the in-memory active set.
func (s *Scheduler) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.len()
}

// NextItem returns the phrase the learner should drill next, refilling the
// active set first when it has fallen below the floor.
//
// It returns ErrRefillFailed when a refill was needed, generation failed
// and nothing could be activated, and ErrNoItemsAvailable when the backlog
// is empty and no generator is configured.
func (s *Scheduler) NextItem(ctx context.Context) (*phrase.Phrase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activeCount := s.active.len()
	if activeCount == 0 {
		n, err := s.repo.CountPhrases(ctx, s.owner, phrase.ActiveOnly())
		if err != nil {
			return nil, fmt.Errorf("count active phrases: %w", err)
		}
		activeCount = n
		if n > 0 {
			if err := s.loadActive(ctx); err != nil {
				return nil, err
			}
		}
	}

	if s.capacity.NeedsRefill(activeCount) {
		return s.refill(ctx, activeCount)
	}

	p, err := s.selector.Select(ctx, s.owner, s.active.phrases)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoItemsAvailable
	}
	return p.Clone(), nil
}

// refill tops the active set up to capacity and returns the first newly
// activated phrase.
func (s *Scheduler) refill(ctx context.Context, activeCount int) (*phrase.Phrase, error) {
	deficit, err := s.capacity.Deficit(activeCount)
	if err != nil {
		s.logger.Error("capacity check failed", "active", activeCount, "err", err)
		return nil, err
	}
	s.logger.Info("active set below floor", "active", activeCount, "min", s.capacity.Min, "deficit", deficit)

	added := s.activator.Activate(ctx, s.owner, deficit)
	s.active.add(added...)

	var genErr error
	if short := deficit - len(added); short > 0 && s.refiller != nil {
		generated, err := s.refiller.Refill(ctx, s.owner, s.language, short)
		s.active.add(generated...)
		added = append(added, generated...)
		genErr = err
	}

	if len(added) > 0 {
		if genErr != nil {
			s.logger.Warn("partial refill", "added", len(added), "deficit", deficit, "err", genErr)
		}
		return added[0].Clone(), nil
	}
	if genErr != nil {
		return nil, genErr
	}
	return nil, ErrNoItemsAvailable
}

// RecordCorrect advances a phrase of the active set by one stage.
func (s *Scheduler) RecordCorrect(ctx context.Context, id string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.RecordCorrect(ctx, s.owner, &s.active, id)
}

// RecordIncorrect sends a phrase of the active set back to stage 1.
func (s *Scheduler) RecordIncorrect(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.RecordIncorrect(ctx, s.owner, &s.active, id)
}

// Stats counts the learner's phrases straight from storage.
func (s *Scheduler) Stats(ctx context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total, err := s.repo.CountPhrases(ctx, s.owner, phrase.All())
	if err != nil {
		return Stats{}, fmt.Errorf("count phrases: %w", err)
	}
	backlog, err := s.repo.CountPhrases(ctx, s.owner, phrase.AtStage(phrase.StageBacklog))
	if err != nil {
		return Stats{}, fmt.Errorf("count backlog phrases: %w", err)
	}
	mastered, err := s.repo.CountPhrases(ctx, s.owner, phrase.AtStage(phrase.StageMastered))
	if err != nil {
		return Stats{}, fmt.Errorf("count mastered phrases: %w", err)
	}

	return Stats{
		Total:     total,
		Practiced: total - backlog,
		Mastered:  mastered,
	}, nil
}

// Phrase looks up one of the learner's phrases, active or not. It returns
// nil when the ID is unknown.
func (s *Scheduler) Phrase(ctx context.Context, id string) (*phrase.Phrase, error) {
	if p := s.activePhrase(id); p != nil {
		return p, nil
	}
	p, err := s.repo.GetPhrase(ctx, s.owner, id)
	if err != nil {
		return nil, fmt.Errorf("get phrase: %w", err)
	}
	return p, nil
}

func (s *Scheduler) activePhrase(id string) *phrase.Phrase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.active.index(id); i >= 0 {
		return s.active.phrases[i].Clone()
	}
	return nil
}

func (s *Scheduler) loadActive(ctx context.Context) error {
	phrases, err := s.repo.FetchPhrases(ctx, s.owner, phrase.ActiveOnly(), 0)
	if err != nil {
		return fmt.Errorf("load active phrases: %w", err)
	}
	s.active.reset(phrases)
	return nil
}
