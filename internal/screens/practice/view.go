package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/imhonza/cranky-language-tutor/internal/ui/layout"
	"github.com/imhonza/cranky-language-tutor/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(s.renderLine(), width))
	b.WriteString("\n\n")

	switch s.phase {
	case phaseLoading:
		b.WriteString(layout.Centered(theme.Hint.Render("Thinking of something to torment you with..."), width))
	case phaseStuck:
		b.WriteString(layout.Centered(theme.Hint.Render("Press R to try again, or A to add a phrase yourself."), width))
	case phaseAdding:
		b.WriteString(layout.Centered(s.renderCard(width), width))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(s.input.View(), width))
	default:
		b.WriteString(layout.Centered(s.renderCard(width), width))
	}

	if s.reviewed > 0 {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(theme.Hint.Render(fmt.Sprintf("%d reviewed this sitting", s.reviewed)), width))
	}

	return lipgloss.NewStyle().Height(height).Render(b.String())
}

func (s *PracticeScreen) renderLine() string {
	if s.line == "" {
		return ""
	}
	if s.good {
		return theme.Correct.Render(s.line)
	}
	return theme.Tutor.Render(s.line)
}

func (s *PracticeScreen) renderCard(width int) string {
	if s.current == nil {
		return ""
	}
	p := s.current

	var b strings.Builder
	b.WriteString(theme.StageBadge(p.Stage))
	b.WriteString("  ")
	b.WriteString(theme.Title.Render(p.Text))
	b.WriteString("\n\n")

	switch {
	case s.phase != phaseRevealed:
		b.WriteString(theme.Hint.Render("(space to reveal)"))
	case p.Translation == "":
		b.WriteString(theme.Hint.Render("no translation on file, you're on your own"))
	default:
		b.WriteString(theme.Body.Render(p.Translation))
	}

	if p.Mistakes > 0 || p.CorrectAnswers > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%d right, %d wrong so far", p.CorrectAnswers, p.Mistakes)))
	}

	return theme.Card.Width(min(width-4, 64)).Align(lipgloss.Center).Render(b.String())
}
