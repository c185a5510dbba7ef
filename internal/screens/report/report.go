// Package report shows where each active phrase sits in the boxes.
package report

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/imhonza/cranky-language-tutor/internal/leitner"
	"github.com/imhonza/cranky-language-tutor/internal/router"
	"github.com/imhonza/cranky-language-tutor/internal/screen"
	"github.com/imhonza/cranky-language-tutor/internal/ui/components"
	"github.com/imhonza/cranky-language-tutor/internal/ui/layout"
	"github.com/imhonza/cranky-language-tutor/internal/ui/theme"
)

type reportLoadedMsg struct {
	Report leitner.Report
	Stats  leitner.Stats
	Err    error
}

// ReportScreen renders the per-stage breakdown of the active set.
type ReportScreen struct {
	tutor  screen.Tutor
	report leitner.Report
	stats  leitner.Stats
	loaded bool
	errMsg string
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

func New(tutor screen.Tutor) *ReportScreen {
	return &ReportScreen{tutor: tutor}
}

func (s *ReportScreen) Init() tea.Cmd {
	tutor := s.tutor
	return func() tea.Msg {
		st, err := tutor.Stats(context.Background())
		return reportLoadedMsg{Report: tutor.Report(), Stats: st, Err: err}
	}
}

func (s *ReportScreen) Title() string {
	return "Progress"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.report = msg.Report
		s.stats = msg.Stats
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ReportScreen) View(width, height int) string {
	if !s.loaded {
		return layout.Centered(theme.Hint.Render("Counting your failures..."), width)
	}

	var b strings.Builder
	b.WriteString("\n")
	if s.errMsg != "" {
		b.WriteString(theme.Incorrect.Render("  Stats unavailable: " + s.errMsg))
		b.WriteString("\n\n")
	} else {
		b.WriteString(theme.Body.Render(fmt.Sprintf("  %d phrases in total, %d practiced, %d mastered",
			s.stats.Total, s.stats.Practiced, s.stats.Mastered)))
		b.WriteString("\n\n")
	}

	total := s.report.Total()
	if total == 0 {
		b.WriteString(theme.Tutor.Render("  Nothing in rotation. Go practice and I'll have something to judge."))
		return lipgloss.NewStyle().Height(height).Render(b.String())
	}

	barWidth := min(width-4, 60)
	for _, st := range s.report.Stages {
		bar := components.ProgressBar{
			Label:   fmt.Sprintf("Stage %d", int(st.Stage)),
			Percent: float64(len(st.Entries)) / float64(total),
			Count:   len(st.Entries),
			Width:   barWidth,
			Color:   theme.StageColor(st.Stage),
		}
		b.WriteString("  " + bar.View() + "\n")
		for _, e := range st.Entries {
			b.WriteString("    " + entryLine(e) + "\n")
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Height(height).Render(b.String())
}

// entryLine marks phrases with a wrong answer in red and those answered
// right at least once in green.
func entryLine(e leitner.ReportEntry) string {
	switch {
	case e.HasMistakes:
		return theme.Incorrect.Render("✗ ") + theme.Body.Render(e.Text)
	case e.HasCorrect:
		return theme.Correct.Render("✓ ") + theme.Body.Render(e.Text)
	default:
		return theme.Hint.Render("· ") + theme.Body.Render(e.Text)
	}
}
