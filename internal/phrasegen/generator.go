// Package phrasegen produces new practice phrases and their translations
// with an LLM provider.
package phrasegen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/imhonza/cranky-language-tutor/internal/llm"
)

// ErrEmptyBatch is returned when no generated phrase survives cleanup.
var ErrEmptyBatch = errors.New("phrasegen: no usable phrases in response")

// LLMGenerator produces phrase batches using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates an LLMGenerator. A nil logger uses slog.Default().
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *LLMGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger}
}

// GenerateBatch asks the model for count phrases in language and returns
// the ones that pass cleanup, at most count of them.
func (g *LLMGenerator) GenerateBatch(ctx context.Context, language string, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}
	ctx = llm.WithPurpose(ctx, llm.PurposePhraseGen)

	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages:    llm.UserPrompt(buildGenerationPrompt(language, count, g.config)),
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate phrases: %w", err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse phrase batch: %w", err)
	}

	kept, rejected := clean(out.Phrases, g.config.MaxWords)
	for _, r := range rejected {
		g.logger.Debug("dropped generated phrase", "phrase", r.Phrase, "reason", r.Reason)
	}
	if len(kept) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(kept) > count {
		kept = kept[:count]
	}
	g.logger.Debug("generated phrases", "language", language, "requested", count, "count", len(kept))
	return kept, nil
}

// Rejection records a generated phrase dropped during cleanup.
type Rejection struct {
	Phrase string
	Reason string
}

// clean trims every phrase and drops blanks, repeats and phrases over
// maxWords, keeping the model's order.
func clean(phrases []string, maxWords int) (kept []string, rejected []Rejection) {
	seen := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		text := strings.TrimSpace(p)
		switch {
		case text == "":
			rejected = append(rejected, Rejection{Phrase: p, Reason: "blank"})
		case seen[strings.ToLower(text)]:
			rejected = append(rejected, Rejection{Phrase: text, Reason: "duplicate"})
		case maxWords > 0 && len(strings.Fields(text)) > maxWords:
			rejected = append(rejected, Rejection{Phrase: text, Reason: fmt.Sprintf("longer than %d words", maxWords)})
		default:
			seen[strings.ToLower(text)] = true
			kept = append(kept, text)
		}
	}
	return kept, rejected
}
