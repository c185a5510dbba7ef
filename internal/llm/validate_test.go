package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var testPhraseSchema = Schema{
	Name:        "test-phrase-batch",
	Description: "A batch of practice phrases",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"phrases": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string", "minLength": 1},
				"minItems": 1,
			},
			"topic": map[string]any{"type": "string", "enum": []any{"travel", "food", "work"}},
		},
		"required":             []any{"phrases"},
		"additionalProperties": false,
	},
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"phrases":["Guten Morgen!","Wie spät ist es?"]}`, false},
		{"valid with optional", `{"phrases":["Noch ein Bier, bitte."],"topic":"food"}`, false},
		{"missing required", `{"topic":"travel"}`, true},
		{"wrong item type", `{"phrases":[1,2]}`, true},
		{"empty list", `{"phrases":[]}`, true},
		{"empty string item", `{"phrases":[""]}`, true},
		{"bad enum", `{"phrases":["Hallo"],"topic":"sports"}`, true},
		{"extra field", `{"phrases":["Hallo"],"translation":"Hello"}`, true},
		{"malformed", `{phrases:`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(&testPhraseSchema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
				if string(inv.Content) != tt.raw {
					t.Fatalf("expected offending content to be kept, got %q", inv.Content)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`Where is the station?`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	if err := validateResponse(&testPhraseSchema, json.RawMessage(`{"phrases":["Tschüss"]}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	schemas.Lock()
	_, ok := schemas.byName[testPhraseSchema.Name]
	schemas.Unlock()
	if !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}
