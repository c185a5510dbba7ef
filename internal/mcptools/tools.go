package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/imhonza/cranky-language-tutor/internal/leitner"
	"github.com/imhonza/cranky-language-tutor/internal/phrase"
	"github.com/imhonza/cranky-language-tutor/internal/voice"
)

// phraseView is the JSON shape of a phrase handed to the assistant.
type phraseView struct {
	ID          string `json:"phrase_id"`
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
	Stage       int    `json:"stage"`
}

// NextPhraseTool handles the next_phrase MCP tool.
type NextPhraseTool struct {
	base
}

func (t *NextPhraseTool) Definition() mcp.Tool {
	return mcp.NewTool("next_phrase",
		mcp.WithDescription("Pick the next phrase the learner should drill. Tops up the active set when it runs low."),
		learnerParam(),
	)
}

func (t *NextPhraseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tutor, errRes := t.tutor(ctx, req)
	if errRes != nil {
		return errRes, nil
	}
	p, err := tutor.NextItem(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(phraseView{ID: p.ID, Text: p.Text, Translation: p.Translation, Stage: int(p.Stage)})
}

// RecordAnswerTool handles the record_answer MCP tool.
type RecordAnswerTool struct {
	base
}

func (t *RecordAnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("record_answer",
		mcp.WithDescription("Record whether the learner answered a phrase correctly. Correct answers move it up a box; mistakes send it back to box one. Mastered phrases drawn for review stay mastered."),
		learnerParam(),
		mcp.WithString("phrase_id",
			mcp.Required(),
			mcp.Description("The phrase_id returned by next_phrase"),
		),
		mcp.WithBoolean("correct",
			mcp.Required(),
			mcp.Description("True if the learner knew it"),
		),
	)
}

func (t *RecordAnswerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("phrase_id", "")
	if id == "" {
		return mcp.NewToolResultError("'phrase_id' is required"), nil
	}
	tutor, errRes := t.tutor(ctx, req)
	if errRes != nil {
		return errRes, nil
	}
	correct := req.GetBool("correct", false)

	// Review draws of mastered phrases are answered but never recorded.
	p, err := tutor.Phrase(ctx, id)
	if err != nil {
		return errorResult(err), nil
	}
	if p != nil && p.Stage == phrase.StageMastered {
		return mcp.NewToolResultText(voice.ForReview(correct)), nil
	}

	if !correct {
		if err := tutor.RecordIncorrect(ctx, id); err != nil {
			return errorResult(err), nil
		}
		return mcp.NewToolResultText(voice.Incorrect), nil
	}

	outcome, err := tutor.RecordCorrect(ctx, id)
	if err != nil {
		return errorResult(err), nil
	}
	if outcome == leitner.OutcomeMastered {
		return mcp.NewToolResultText(voice.Mastered), nil
	}
	return mcp.NewToolResultText(voice.Correct), nil
}

// AddPhraseTool handles the add_phrase MCP tool.
type AddPhraseTool struct {
	base
}

func (t *AddPhraseTool) Definition() mcp.Tool {
	return mcp.NewTool("add_phrase",
		mcp.WithDescription("Add a phrase to the learner's backlog. It enters rotation when the active set next has room."),
		learnerParam(),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The phrase in the target language"),
		),
		mcp.WithString("translation",
			mcp.Description("Translation in the base language (filled automatically when omitted)"),
		),
	)
}

func (t *AddPhraseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}
	tutor, errRes := t.tutor(ctx, req)
	if errRes != nil {
		return errRes, nil
	}
	p, err := tutor.AddPhrase(ctx, text, req.GetString("translation", ""))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(struct {
		Message string     `json:"message"`
		Phrase  phraseView `json:"phrase"`
	}{voice.Added, phraseView{ID: p.ID, Text: p.Text, Translation: p.Translation, Stage: int(p.Stage)}})
}

// StatsTool handles the phrase_stats MCP tool.
type StatsTool struct {
	base
}

func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("phrase_stats",
		mcp.WithDescription("Learner totals plus the active phrases in each box."),
		learnerParam(),
	)
}

type stageView struct {
	Stage   int      `json:"stage"`
	Phrases []string `json:"phrases"`
}

func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tutor, errRes := t.tutor(ctx, req)
	if errRes != nil {
		return errRes, nil
	}
	st, err := tutor.Stats(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	report := tutor.Report()
	stages := make([]stageView, 0, len(report.Stages))
	for _, s := range report.Stages {
		names := make([]string, 0, len(s.Entries))
		for _, e := range s.Entries {
			names = append(names, e.Text)
		}
		stages = append(stages, stageView{Stage: int(s.Stage), Phrases: names})
	}

	return jsonResult(struct {
		Learner string `json:"learner"`
		leitner.Stats
		Stages []stageView `json:"stages"`
	}{tutor.Owner(), st, stages})
}
