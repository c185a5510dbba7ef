package leitner

import (
	"context"
	"log/slog"
	"time"

	"github.com/imhonza/cranky-language-tutor/internal/phrase"
)

// BacklogActivator promotes stage-0 phrases into the active set.
type BacklogActivator struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewBacklogActivator creates an activator over repo.
func NewBacklogActivator(repo Repository, logger *slog.Logger, now func() time.Time) *BacklogActivator {
	return &BacklogActivator{repo: repo, logger: orDefault(logger), now: orNow(now)}
}

// Activate moves up to count backlog phrases of owner to stage 1 and
// persists each one. Phrases whose write fails are logged and skipped;
// phrases already written stay activated. The returned slice holds only
// the phrases that were persisted.
func (a *BacklogActivator) Activate(ctx context.Context, owner string, count int) []*phrase.Phrase {
	if count <= 0 {
		return nil
	}

	backlog, err := a.repo.FetchPhrases(ctx, owner, phrase.AtStage(phrase.StageBacklog), count)
	if err != nil {
		a.logger.Error("fetch backlog phrases", "owner", owner, "count", count, "err", err)
		return nil
	}
	if len(backlog) > count {
		backlog = backlog[:count]
	}

	activated := make([]*phrase.Phrase, 0, len(backlog))
	for _, p := range backlog {
		if ctx.Err() != nil {
			a.logger.Warn("backlog activation interrupted", "owner", owner, "activated", len(activated), "err", ctx.Err())
			break
		}
		candidate := p.Clone()
		if err := candidate.Activate(a.now()); err != nil {
			a.logger.Warn("skip backlog phrase", "owner", owner, "phrase_id", p.ID, "err", err)
			continue
		}
		if err := a.repo.UpsertPhrase(ctx, owner, candidate); err != nil {
			a.logger.Error("persist activated phrase", "owner", owner, "phrase_id", p.ID, "err", err)
			continue
		}
		activated = append(activated, candidate)
	}

	a.logger.Info("activated backlog phrases", "owner", owner, "requested", count, "activated", len(activated))
	return activated
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func orNow(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
