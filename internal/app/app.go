// Package app is the Bubble Tea shell: it owns the router, the frame and
// the header counters.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/imhonza/cranky-language-tutor/internal/router"
	"github.com/imhonza/cranky-language-tutor/internal/screen"
	"github.com/imhonza/cranky-language-tutor/internal/screens/history"
	"github.com/imhonza/cranky-language-tutor/internal/screens/home"
	"github.com/imhonza/cranky-language-tutor/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	info   layout.HeaderInfo
	width  int
	height int
}

// NewAppModel creates the shell with the home screen at the root.
func NewAppModel(tutor screen.Tutor, reviews history.ReviewSource) AppModel {
	return AppModel{
		router: router.New(home.New(tutor, reviews)),
		info: layout.HeaderInfo{
			Learner:  tutor.Owner(),
			Language: tutor.Language(),
			Active:   tutor.ActiveCount(),
		},
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StatsChangedMsg:
		m.info.Active = msg.Active
		m.info.Mastered = msg.Stats.Mastered

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.info, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the program and blocks until the learner quits or ctx is
// cancelled.
func Run(ctx context.Context, tutor screen.Tutor, reviews history.ReviewSource) error {
	p := tea.NewProgram(NewAppModel(tutor, reviews), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
