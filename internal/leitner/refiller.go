package leitner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/imhonza/cranky-language-tutor/internal/phrase"
)

// GenerationRefiller asks the content generator for brand new phrases and
// activates them immediately. It is the only component that talks to the
// generator, and it does so at most once per call.
type GenerationRefiller struct {
	repo       Repository
	generator  Generator
	translator Translator
	logger     *slog.Logger
	now        func() time.Time
}

// NewGenerationRefiller creates a refiller. translator may be nil.
func NewGenerationRefiller(repo Repository, generator Generator, translator Translator, logger *slog.Logger, now func() time.Time) *GenerationRefiller {
	return &GenerationRefiller{
		repo:       repo,
		generator:  generator,
		translator: translator,
		logger:     orDefault(logger),
		now:        orNow(now),
	}
}

// Refill generates up to count phrases in language for owner, activates and
// persists them. Generator failures and empty batches are reported as
// ErrRefillFailed; nothing is created in that case.
func (r *GenerationRefiller) Refill(ctx context.Context, owner, language string, count int) ([]*phrase.Phrase, error) {
	if count <= 0 {
		return nil, nil
	}

	texts, err := r.generator.GenerateBatch(ctx, language, count)
	if err != nil {
		r.logger.Error("generate phrases", "owner", owner, "language", language, "count", count, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrRefillFailed, err)
	}
	if len(texts) == 0 {
		r.logger.Error("generator returned no phrases", "owner", owner, "language", language, "count", count)
		return nil, fmt.Errorf("%w: empty batch", ErrRefillFailed)
	}
	if len(texts) > count {
		texts = texts[:count]
	}

	created := make([]*phrase.Phrase, 0, len(texts))
	for _, text := range texts {
		if ctx.Err() != nil {
			r.logger.Warn("refill interrupted", "owner", owner, "created", len(created), "err", ctx.Err())
			break
		}
		p, err := phrase.New(text, r.now())
		if err != nil {
			r.logger.Warn("skip generated phrase", "owner", owner, "err", err)
			continue
		}
		r.translate(ctx, owner, p)
		if err := p.Activate(r.now()); err != nil {
			r.logger.Warn("skip generated phrase", "owner", owner, "phrase_id", p.ID, "err", err)
			continue
		}
		if err := r.repo.UpsertPhrase(ctx, owner, p); err != nil {
			r.logger.Error("persist generated phrase", "owner", owner, "phrase_id", p.ID, "err", err)
			continue
		}
		created = append(created, p)
	}

	r.logger.Info("refilled from generator", "owner", owner, "language", language, "requested", count, "created", len(created))
	return created, nil
}

// translate fills p.Translation when a translator is configured. A failed
// translation leaves the phrase untranslated.
func (r *GenerationRefiller) translate(ctx context.Context, owner string, p *phrase.Phrase) {
	if r.translator == nil || p.Translation != "" {
		return
	}
	tr, err := r.translator.Translate(ctx, p.Text)
	if err != nil {
		r.logger.Warn("translate generated phrase", "owner", owner, "phrase_id", p.ID, "err", err)
		return
	}
	p.Translation = tr
}
