package phrasegen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imhonza/cranky-language-tutor/internal/llm"
)

// ErrEmptyTranslation is returned when the model replies with nothing.
var ErrEmptyTranslation = errors.New("phrasegen: empty translation")

// LLMTranslator translates phrases into the configured base language.
type LLMTranslator struct {
	provider llm.Provider
	config   Config
}

// NewTranslator creates an LLMTranslator.
func NewTranslator(provider llm.Provider, cfg Config) *LLMTranslator {
	if cfg.BaseLanguage == "" {
		cfg.BaseLanguage = DefaultConfig().BaseLanguage
	}
	return &LLMTranslator{provider: provider, config: cfg}
}

// Translate returns text in the base language. Text already in the base
// language comes back unchanged.
func (t *LLMTranslator) Translate(ctx context.Context, text string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeTranslate)

	resp, err := t.provider.Generate(ctx, llm.Request{
		System:    translationSystemPrompt(t.config.BaseLanguage),
		Messages:  llm.UserPrompt(translationUserPrompt(text)),
		MaxTokens: t.config.TranslateMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("translate phrase: %w", err)
	}

	out := unquote(strings.TrimSpace(resp.Text()))
	if out == "" {
		return "", ErrEmptyTranslation
	}
	return out, nil
}

var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
	{"„", "“"},
	{"«", "»"},
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) string {
	for _, q := range quotePairs {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			return strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
		}
	}
	return s
}
