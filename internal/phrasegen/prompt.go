package phrasegen

import (
	"fmt"
	"strings"
)

// buildGenerationPrompt asks for count phrases in language at level.
func buildGenerationPrompt(language string, count int, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d new phrases in %s at level %s.\n", count, language, cfg.Level)
	if cfg.MaxWords > 0 {
		fmt.Fprintf(&b, "Each phrase is at most %d words long.\n", cfg.MaxWords)
	}
	b.WriteString("Cover common topics like work, food, or travel.\n")
	b.WriteString("Include a mix of questions, statements, and commands.\n")
	fmt.Fprintf(&b, "Use vocabulary and grammar that match the %s proficiency level.\n", cfg.Level)
	b.WriteString(`Respond with JSON: {"phrases": ["phrase1", "phrase2", ...]}.`)
	return b.String()
}

func translationSystemPrompt(base string) string {
	return fmt.Sprintf("You are an assistant that generates translations for language learning purposes, "+
		"by translating an input phrase to %[1]s. If the input is already in %[1]s, just respond with the same phrase. "+
		"Respond with the translation only.", base)
}

func translationUserPrompt(text string) string {
	return fmt.Sprintf("Input Phrase: %q\nTranslation:", text)
}
