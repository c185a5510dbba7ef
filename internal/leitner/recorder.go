package leitner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/imhonza/cranky-language-tutor/internal/phrase"
	"github.com/imhonza/cranky-language-tutor/internal/store"
)

// Outcome describes what a correct answer did to a phrase.
type Outcome int

const (
	// OutcomeContinued means the phrase moved up a stage and stays active.
	OutcomeContinued Outcome = iota

	// OutcomeMastered means the phrase reached stage 5 and left the active set.
	OutcomeMastered
)

func (o Outcome) String() string {
	if o == OutcomeMastered {
		return "mastered"
	}
	return "continued"
}

// Recorder applies drill outcomes to phrases in an active set. Each
// transition is persisted before it becomes visible in memory, so a failed
// write leaves the active set unchanged.
type Recorder struct {
	repo   Repository
	events EventSink
	logger *slog.Logger
	now    func() time.Time
}

// NewRecorder creates a recorder. events may be nil.
func NewRecorder(repo Repository, events EventSink, logger *slog.Logger, now func() time.Time) *Recorder {
	return &Recorder{repo: repo, events: events, logger: orDefault(logger), now: orNow(now)}
}

// RecordCorrect advances the phrase one stage. Mastered phrases are removed
// from the active set.
func (r *Recorder) RecordCorrect(ctx context.Context, owner string, active *activeSet, id string) (Outcome, error) {
	i := active.index(id)
	if i < 0 {
		return OutcomeContinued, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	current := active.phrases[i]
	next := current.Clone()
	mastered := next.MarkCorrect(r.now())

	if err := r.repo.UpsertPhrase(ctx, owner, next); err != nil {
		return OutcomeContinued, fmt.Errorf("persist correct answer for %s: %w", id, err)
	}

	outcome := OutcomeContinued
	if mastered {
		active.removeAt(i)
		outcome = OutcomeMastered
		r.logger.Info("phrase mastered", "owner", owner, "phrase_id", id)
	} else {
		active.phrases[i] = next
	}

	r.appendEvent(ctx, owner, current, next, true, mastered)
	return outcome, nil
}

// RecordIncorrect sends the phrase back to stage 1. It stays active.
func (r *Recorder) RecordIncorrect(ctx context.Context, owner string, active *activeSet, id string) error {
	i := active.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	current := active.phrases[i]
	next := current.Clone()
	next.MarkMistake(r.now())

	if err := r.repo.UpsertPhrase(ctx, owner, next); err != nil {
		return fmt.Errorf("persist mistake for %s: %w", id, err)
	}
	active.phrases[i] = next

	r.appendEvent(ctx, owner, current, next, false, false)
	return nil
}

func (r *Recorder) appendEvent(ctx context.Context, owner string, before, after *phrase.Phrase, correct, mastered bool) {
	if r.events == nil {
		return
	}
	err := r.events.AppendReview(ctx, store.ReviewEventData{
		Owner:     owner,
		PhraseID:  after.ID,
		Correct:   correct,
		FromStage: int(before.Stage),
		ToStage:   int(after.Stage),
		Mastered:  mastered,
	})
	if err != nil {
		r.logger.Warn("record review event", "owner", owner, "phrase_id", after.ID, "err", err)
	}
}
