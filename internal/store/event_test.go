package store

import (
	"context"
	"testing"
)

func TestLLMEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "phrase-gen", InputTokens: 100, OutputTokens: 40, LatencyMs: 300, Success: true, RequestBody: "[user]\nhi", ResponseBody: `{"phrases":[]}`},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "translate", InputTokens: 20, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "phrase-gen", InputTokens: 50, OutputTokens: 0, LatencyMs: 500, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("AppendLLMRequest: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QueryLLMEvents: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("events = %d, want 3", len(got))
	}
	if got[0].Sequence <= got[1].Sequence {
		t.Errorf("events not newest first: %d, %d", got[0].Sequence, got[1].Sequence)
	}
	if got[0].ErrorMessage != "rate limited" || got[0].Success {
		t.Errorf("newest event = %+v", got[0])
	}

	limited, _ := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("limit ignored: %d", len(limited))
	}
	after, _ := repo.QueryLLMEvents(ctx, QueryOpts{After: got[1].Sequence})
	if len(after) != 1 {
		t.Errorf("After filter returned %d, want 1", len(after))
	}

	first, err := repo.GetLLMEvent(ctx, got[2].ID)
	if err != nil || first == nil {
		t.Fatalf("GetLLMEvent = %v, %v", first, err)
	}
	if first.RequestBody != "[user]\nhi" || first.ResponseBody != `{"phrases":[]}` {
		t.Errorf("bodies = %q / %q", first.RequestBody, first.ResponseBody)
	}
	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("GetLLMEvent(missing) = %v, %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("LLMUsageByPurpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "phrase-gen" {
		t.Fatalf("by purpose = %+v", byPurpose)
	}
	if pg := byPurpose[0]; pg.Calls != 2 || pg.InputTokens != 150 || pg.OutputTokens != 40 || pg.AvgLatencyMs != 400 {
		t.Errorf("phrase-gen usage = %+v", pg)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("LLMUsageByModel: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Calls != 3 || byModel[0].InputTokens != 170 {
		t.Errorf("by model = %+v", byModel)
	}
}

func TestReviewEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	reviews := []ReviewEventData{
		{Owner: "ana", PhraseID: "p1", Correct: true, FromStage: 1, ToStage: 2},
		{Owner: "bob", PhraseID: "p9", Correct: false, FromStage: 3, ToStage: 1},
		{Owner: "ana", PhraseID: "p2", Correct: true, FromStage: 4, ToStage: 5, Mastered: true},
	}
	for _, r := range reviews {
		if err := repo.AppendReview(ctx, r); err != nil {
			t.Fatalf("AppendReview: %v", err)
		}
	}

	got, err := repo.QueryReviews(ctx, QueryOpts{Owner: "ana"})
	if err != nil {
		t.Fatalf("QueryReviews: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ana reviews = %d, want 2", len(got))
	}
	if got[0].PhraseID != "p2" || !got[0].Mastered || got[0].ToStage != 5 {
		t.Errorf("newest = %+v", got[0])
	}
	if got[0].Timestamp.IsZero() {
		t.Error("timestamp not stored")
	}

	all, _ := repo.QueryReviews(ctx, QueryOpts{})
	if len(all) != 3 {
		t.Errorf("all reviews = %d, want 3", len(all))
	}
}

func TestSequenceSharedAcrossEventTypes(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	if err := repo.AppendReview(ctx, ReviewEventData{Owner: "ana", PhraseID: "p1", Correct: true, FromStage: 1, ToStage: 2}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "x", Model: "m", Purpose: "p", Success: true}); err != nil {
		t.Fatal(err)
	}

	reviews, _ := repo.QueryReviews(ctx, QueryOpts{})
	llm, _ := repo.QueryLLMEvents(ctx, QueryOpts{})
	if reviews[0].Sequence != 1 || llm[0].Sequence != 2 {
		t.Errorf("sequences = %d / %d, want 1 / 2", reviews[0].Sequence, llm[0].Sequence)
	}
}
