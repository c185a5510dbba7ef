package mcptools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imhonza/cranky-language-tutor/internal/leitner"
	"github.com/imhonza/cranky-language-tutor/internal/phrase"
	"github.com/imhonza/cranky-language-tutor/internal/voice"
)

type fakeTutor struct {
	owner     string
	next      *phrase.Phrase
	nextErr   error
	outcome   leitner.Outcome
	recordErr error
	known     map[string]*phrase.Phrase

	correct   []string
	incorrect []string
	added     []string
}

func (f *fakeTutor) Owner() string { return f.owner }
func (f *fakeTutor) NextItem(context.Context) (*phrase.Phrase, error) {
	return f.next, f.nextErr
}
func (f *fakeTutor) Phrase(_ context.Context, id string) (*phrase.Phrase, error) {
	return f.known[id], nil
}
func (f *fakeTutor) RecordCorrect(_ context.Context, id string) (leitner.Outcome, error) {
	f.correct = append(f.correct, id)
	return f.outcome, f.recordErr
}
func (f *fakeTutor) RecordIncorrect(_ context.Context, id string) error {
	f.incorrect = append(f.incorrect, id)
	return f.recordErr
}
func (f *fakeTutor) AddPhrase(_ context.Context, text, translation string) (*phrase.Phrase, error) {
	f.added = append(f.added, text+"|"+translation)
	return &phrase.Phrase{ID: "new", Text: text, Translation: translation}, nil
}
func (f *fakeTutor) Stats(context.Context) (leitner.Stats, error) {
	return leitner.Stats{Total: 10, Practiced: 4, Mastered: 1}, nil
}
func (f *fakeTutor) Report() leitner.Report {
	return leitner.Report{Owner: f.owner, Stages: []leitner.StageReport{
		{Stage: 1, Entries: []leitner.ReportEntry{{ID: "p1", Text: "hola"}}},
	}}
}

// testBase resolves only "ana".
func testBase(tutor *fakeTutor) base {
	return base{
		defaultLearner: "ana",
		resolve: func(_ context.Context, name string) (Tutor, error) {
			if name != "ana" {
				return nil, leitner.ErrUnknownLearner
			}
			return tutor, nil
		},
	}
}

func makeReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestNextPhrase(t *testing.T) {
	tutor := &fakeTutor{owner: "ana", next: &phrase.Phrase{ID: "p1", Text: "hola", Translation: "hello", Stage: 2}}
	tool := &NextPhraseTool{base: testBase(tutor)}

	res, err := tool.Handle(t.Context(), makeReq(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got phraseView
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
	assert.Equal(t, phraseView{ID: "p1", Text: "hola", Translation: "hello", Stage: 2}, got)
}

func TestNextPhrase_NoItems(t *testing.T) {
	tool := &NextPhraseTool{base: testBase(&fakeTutor{owner: "ana", nextErr: leitner.ErrNoItemsAvailable})}

	res, err := tool.Handle(t.Context(), makeReq(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), voice.ForError(leitner.ErrNoItemsAvailable))
}

func TestUnknownLearner(t *testing.T) {
	tool := &NextPhraseTool{base: testBase(&fakeTutor{owner: "ana"})}

	res, err := tool.Handle(t.Context(), makeReq(map[string]any{"learner": "mallory"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "Shoo")
}

func TestRecordAnswer(t *testing.T) {
	tests := []struct {
		name    string
		correct bool
		outcome leitner.Outcome
		want    string
	}{
		{"correct", true, leitner.OutcomeContinued, voice.Correct},
		{"mastered", true, leitner.OutcomeMastered, voice.Mastered},
		{"incorrect", false, leitner.OutcomeContinued, voice.Incorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tutor := &fakeTutor{owner: "ana", outcome: tt.outcome}
			tool := &RecordAnswerTool{base: testBase(tutor)}

			res, err := tool.Handle(t.Context(), makeReq(map[string]any{"phrase_id": "p1", "correct": tt.correct}))
			require.NoError(t, err)
			assert.False(t, res.IsError)
			assert.Equal(t, tt.want, resultText(res))
			if tt.correct {
				assert.Equal(t, []string{"p1"}, tutor.correct)
			} else {
				assert.Equal(t, []string{"p1"}, tutor.incorrect)
			}
		})
	}
}

func TestRecordAnswer_MasteredReview(t *testing.T) {
	for _, correct := range []bool{true, false} {
		tutor := &fakeTutor{owner: "ana", known: map[string]*phrase.Phrase{
			"m1": {ID: "m1", Text: "buenas noches", Stage: phrase.StageMastered},
		}}
		tool := &RecordAnswerTool{base: testBase(tutor)}

		res, err := tool.Handle(t.Context(), makeReq(map[string]any{"phrase_id": "m1", "correct": correct}))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Equal(t, voice.ForReview(correct), resultText(res))
		assert.Empty(t, tutor.correct)
		assert.Empty(t, tutor.incorrect)
	}
}

func TestRecordAnswer_Validation(t *testing.T) {
	tool := &RecordAnswerTool{base: testBase(&fakeTutor{owner: "ana"})}

	res, err := tool.Handle(t.Context(), makeReq(map[string]any{"correct": true}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "phrase_id")
}

func TestRecordAnswer_StaleItem(t *testing.T) {
	tool := &RecordAnswerTool{base: testBase(&fakeTutor{owner: "ana", recordErr: leitner.ErrItemNotFound})}

	res, err := tool.Handle(t.Context(), makeReq(map[string]any{"phrase_id": "gone", "correct": true}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), voice.ForError(leitner.ErrItemNotFound))
}

func TestAddPhrase(t *testing.T) {
	tutor := &fakeTutor{owner: "ana"}
	tool := &AddPhraseTool{base: testBase(tutor)}

	res, err := tool.Handle(t.Context(), makeReq(map[string]any{"text": "gato", "translation": "cat"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, []string{"gato|cat"}, tutor.added)
	assert.Contains(t, resultText(res), voice.Added)

	res, err = tool.Handle(t.Context(), makeReq(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestStats(t *testing.T) {
	tool := &StatsTool{base: testBase(&fakeTutor{owner: "ana"})}

	res, err := tool.Handle(t.Context(), makeReq(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got struct {
		Learner  string `json:"learner"`
		Total    int    `json:"total"`
		Mastered int    `json:"mastered"`
		Stages   []struct {
			Stage   int      `json:"stage"`
			Phrases []string `json:"phrases"`
		} `json:"stages"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
	assert.Equal(t, "ana", got.Learner)
	assert.Equal(t, 10, got.Total)
	assert.Equal(t, 1, got.Mastered)
	require.Len(t, got.Stages, 1)
	assert.Equal(t, []string{"hola"}, got.Stages[0].Phrases)
}

func TestDefinitions(t *testing.T) {
	b := testBase(&fakeTutor{owner: "ana"})
	defs := []mcp.Tool{
		(&NextPhraseTool{base: b}).Definition(),
		(&RecordAnswerTool{base: b}).Definition(),
		(&AddPhraseTool{base: b}).Definition(),
		(&StatsTool{base: b}).Definition(),
	}
	var names []string
	for _, d := range defs {
		names = append(names, d.Name)
		_, ok := d.InputSchema.Properties["learner"]
		assert.True(t, ok, "%s should accept a learner", d.Name)
	}
	assert.Equal(t, "next_phrase,record_answer,add_phrase,phrase_stats", strings.Join(names, ","))
	assert.ElementsMatch(t, []string{"phrase_id", "correct"}, defs[1].InputSchema.Required)
}

func TestNewServer(t *testing.T) {
	s := NewServer("test", testBase(&fakeTutor{owner: "ana"}).resolve, "ana")
	require.NotNil(t, s)
}
