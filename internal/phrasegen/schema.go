package phrasegen

import "github.com/imhonza/cranky-language-tutor/internal/llm"

// BatchSchema is the JSON shape requested for a batch of new phrases.
var BatchSchema = &llm.Schema{
	Name:        "phrase-batch",
	Description: "A batch of short practice phrases in the target language",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"phrases": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "New practice phrases, one sentence each, in the target language",
			},
		},
		"required":             []any{"phrases"},
		"additionalProperties": false,
	},
}

// batchOutput is the decoded generation reply.
type batchOutput struct {
	Phrases []string `json:"phrases"`
}
