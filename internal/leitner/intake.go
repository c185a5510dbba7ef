package leitner

import (
	"context"
	"fmt"
	"strings"

	"github.com/imhonza/cranky-language-tutor/internal/phrase"
)

// AddPhrase stores a learner-supplied phrase in the backlog (stage 0). It
// joins the active set on a later refill. An empty translation is filled
// by the Translator when one is configured; a translation failure is logged
// and the phrase is stored untranslated.
func (s *Scheduler) AddPhrase(ctx context.Context, text, translation string) (*phrase.Phrase, error) {
	p, err := phrase.New(text, s.now())
	if err != nil {
		return nil, err
	}
	p.Translation = strings.TrimSpace(translation)

	if p.Translation == "" && s.translator != nil {
		tr, err := s.translator.Translate(ctx, p.Text)
		if err != nil {
			s.logger.Warn("translate added phrase", "phrase_id", p.ID, "err", err)
		} else {
			p.Translation = tr
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.UpsertPhrase(ctx, s.owner, p); err != nil {
		return nil, fmt.Errorf("store added phrase: %w", err)
	}
	s.logger.Info("phrase added", "phrase_id", p.ID)
	return p.Clone(), nil
}
