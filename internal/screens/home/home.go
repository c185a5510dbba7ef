// Package home is the root screen: the tutor's face, the learner's totals
// and the main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/imhonza/cranky-language-tutor/internal/leitner"
	"github.com/imhonza/cranky-language-tutor/internal/router"
	"github.com/imhonza/cranky-language-tutor/internal/screen"
	"github.com/imhonza/cranky-language-tutor/internal/screens/history"
	"github.com/imhonza/cranky-language-tutor/internal/screens/practice"
	"github.com/imhonza/cranky-language-tutor/internal/screens/report"
	"github.com/imhonza/cranky-language-tutor/internal/ui/components"
	"github.com/imhonza/cranky-language-tutor/internal/ui/layout"
	"github.com/imhonza/cranky-language-tutor/internal/ui/theme"
	"github.com/imhonza/cranky-language-tutor/internal/voice"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	tutor  screen.Tutor
	menu   components.Menu
	stats  leitner.Stats
	active int
	loaded bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. reviews may be nil, which disables the
// history entry.
func New(tutor screen.Tutor, reviews history.ReviewSource) *HomeScreen {
	h := &HomeScreen{tutor: tutor}

	historyItem := components.MenuItem{Label: "History", Action: func() tea.Cmd {
		return push(history.New(tutor.Owner(), reviews, phraseTexts(tutor.Report())))
	}}
	if reviews == nil {
		historyItem.Disabled = true
		historyItem.Note = "no event log"
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Practice", Action: func() tea.Cmd { return push(practice.New(tutor)) }},
		{Label: "Progress", Action: func() tea.Cmd { return push(report.New(tutor)) }},
		historyItem,
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// phraseTexts indexes active phrase texts for the history screen.
func phraseTexts(r leitner.Report) map[string]string {
	texts := make(map[string]string)
	for _, st := range r.Stages {
		for _, e := range st.Entries {
			texts[e.ID] = e.Text
		}
	}
	return texts
}

// Init refreshes the totals; the shell also picks up the message for the
// header.
func (h *HomeScreen) Init() tea.Cmd {
	tutor := h.tutor
	return func() tea.Msg {
		st, err := tutor.Stats(context.Background())
		if err != nil {
			return nil
		}
		return screen.StatsChangedMsg{Stats: st, Active: tutor.ActiveCount()}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(screen.StatsChangedMsg); ok {
		h.stats = msg.Stats
		h.active = msg.Active
		h.loaded = true
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, layout.Centered(theme.Title.Render(fmt.Sprintf("%s for %s", h.tutor.Language(), h.tutor.Owner())), width))
	if height >= 20 {
		sections = append(sections, layout.Centered(RenderFace(moodFor(h.stats.Practiced, h.stats.Mastered)), width))
	}
	sections = append(sections, layout.Centered(theme.Tutor.Render(h.greeting()), width))
	if h.loaded {
		sections = append(sections, layout.Centered(theme.Hint.Render(fmt.Sprintf(
			"%d phrases · %d in rotation · %d practiced · %d mastered",
			h.stats.Total, h.active, h.stats.Practiced, h.stats.Mastered)), width))
	}
	sections = append(sections, layout.Centered(h.menu.View(), width))

	return lipgloss.NewStyle().Height(height).Render("\n" + strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) greeting() string {
	if h.loaded && h.stats.Practiced > 0 {
		return voice.NextPrompt
	}
	return voice.Greeting
}

func (h *HomeScreen) Title() string {
	return "Home"
}
