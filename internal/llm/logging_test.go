package llm

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imhonza/cranky-language-tutor/internal/store"
)

func openEvents(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

// failingEvents rejects every LLM event write.
type failingEvents struct {
	store.EventRepo
}

func (failingEvents) AppendLLMRequest(context.Context, store.LLMRequestEventData) error {
	return errors.New("disk full")
}

func TestLogging_RecordsSuccess(t *testing.T) {
	events := openEvents(t)
	mock := NewMockProvider(MockResponse{
		Content: []byte(`{"phrases":["Guten Abend"]}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(mock, events, nil)

	ctx := WithPurpose(context.Background(), PurposePhraseGen)
	req := Request{System: "be cranky", Messages: UserPrompt("one phrase"), Schema: &testPhraseSchema}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := events.QueryLLMEvents(ctx, store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	ev := got[0]
	if ev.Provider != "mock" || ev.Model != "mock" || ev.Purpose != PurposePhraseGen {
		t.Fatalf("unexpected event identity: %+v", ev.LLMRequestEventData)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 7 {
		t.Fatalf("unexpected event outcome: %+v", ev.LLMRequestEventData)
	}
	if !strings.Contains(ev.RequestBody, "[system]\nbe cranky") || !strings.Contains(ev.RequestBody, "[schema: test-phrase-batch]") {
		t.Fatalf("unexpected request body:\n%s", ev.RequestBody)
	}
	if ev.ResponseBody != `{"phrases":["Guten Abend"]}` {
		t.Fatalf("unexpected response body %q", ev.ResponseBody)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	events := openEvents(t)
	p := WithLogging(NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}), events, nil)

	if _, err := p.Generate(context.Background(), Request{Messages: UserPrompt("x")}); err == nil {
		t.Fatal("expected error")
	}

	got, err := events.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].Success || !strings.Contains(got[0].ErrorMessage, "down") {
		t.Fatalf("expected one failed event, got %+v", got)
	}
	if got[0].Purpose != "unknown" {
		t.Fatalf("expected unknown purpose, got %q", got[0].Purpose)
	}
}

func TestLogging_EventWriteFailureIsNotFatal(t *testing.T) {
	p := WithLogging(NewMockProvider(okBatch), failingEvents{}, nil)
	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil {
		t.Fatal("expected a response")
	}
}

func TestProviderName(t *testing.T) {
	tests := []struct {
		p    Provider
		want string
	}{
		{&OpenAIProvider{}, "openai"},
		{&OpenRouterProvider{}, "openrouter"},
		{&AnthropicProvider{}, "anthropic"},
		{&GeminiProvider{}, "gemini"},
		{NewMockProvider(), "mock"},
		{WithRetry(NewMockProvider(), RetryConfig{}), "unknown"},
	}
	for _, tt := range tests {
		if got := providerName(tt.p); got != tt.want {
			t.Errorf("providerName(%T) = %q, want %q", tt.p, got, tt.want)
		}
	}
}
