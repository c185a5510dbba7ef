package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(testPhraseSchema.Definition)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(schema.Properties))
	}
	phrases := schema.Properties["phrases"]
	if phrases.Type != genai.TypeArray || phrases.Items == nil || phrases.Items.Type != genai.TypeString {
		t.Fatalf("expected ARRAY of STRING for phrases, got %+v", phrases)
	}
	if got := schema.Properties["topic"].Enum; len(got) != 3 {
		t.Fatalf("expected 3 enum values, got %v", got)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "phrases" {
		t.Fatalf("unexpected required %v", schema.Required)
	}
}

func TestBuildGeminiSchema_GoLiterals(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]any{
			"text": map[string]any{"type": "string", "description": "the phrase"},
		},
	})
	if len(schema.Required) != 1 {
		t.Fatalf("expected []string required to be kept, got %v", schema.Required)
	}
	if schema.Properties["text"].Description != "the phrase" {
		t.Fatalf("expected description kept, got %q", schema.Properties["text"].Description)
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(t.Context(), GeminiConfig{Model: "gemini-flash"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
