package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/imhonza/cranky-language-tutor/internal/leitner"
	"github.com/imhonza/cranky-language-tutor/internal/phrase"
	"github.com/imhonza/cranky-language-tutor/internal/router"
)

type fakeTutor struct {
	report   leitner.Report
	stats    leitner.Stats
	statsErr error
}

func (f *fakeTutor) Owner() string    { return "ana" }
func (f *fakeTutor) Language() string { return "Spanish" }
func (f *fakeTutor) ActiveCount() int { return f.report.Total() }
func (f *fakeTutor) NextItem(context.Context) (*phrase.Phrase, error) {
	return nil, leitner.ErrNoItemsAvailable
}
func (f *fakeTutor) RecordCorrect(context.Context, string) (leitner.Outcome, error) {
	return leitner.OutcomeContinued, nil
}
func (f *fakeTutor) RecordIncorrect(context.Context, string) error { return nil }
func (f *fakeTutor) AddPhrase(context.Context, string, string) (*phrase.Phrase, error) {
	return nil, nil
}
func (f *fakeTutor) Stats(context.Context) (leitner.Stats, error) { return f.stats, f.statsErr }
func (f *fakeTutor) Report() leitner.Report                       { return f.report }

func load(t *testing.T, s *ReportScreen) *ReportScreen {
	t.Helper()
	updated, _ := s.Update(s.Init()())
	return updated.(*ReportScreen)
}

func TestViewListsStagesAndMarks(t *testing.T) {
	tutor := &fakeTutor{
		report: leitner.Report{Owner: "ana", Stages: []leitner.StageReport{
			{Stage: 1, Entries: []leitner.ReportEntry{{ID: "a", Text: "hola", HasMistakes: true}}},
			{Stage: 2, Entries: []leitner.ReportEntry{{ID: "b", Text: "gracias", HasCorrect: true}}},
			{Stage: 3},
			{Stage: 4},
		}},
		stats: leitner.Stats{Total: 12, Practiced: 5, Mastered: 3},
	}
	view := load(t, New(tutor)).View(80, 30)

	for _, want := range []string{"12 phrases", "3 mastered", "Stage 1", "Stage 4", "✗", "hola", "✓", "gracias"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEmptyReport(t *testing.T) {
	view := load(t, New(&fakeTutor{})).View(80, 30)
	if !strings.Contains(view, "Nothing in rotation") {
		t.Error("expected empty-set message")
	}
}

func TestStatsErrorShown(t *testing.T) {
	view := load(t, New(&fakeTutor{statsErr: errors.New("db locked")})).View(80, 30)
	if !strings.Contains(view, "db locked") {
		t.Error("expected stats error in view")
	}
}

func TestEnterPops(t *testing.T) {
	s := load(t, New(&fakeTutor{}))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("enter should pop the screen")
	}
}
