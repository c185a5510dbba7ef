// Package theme holds the shared lipgloss palette and styles.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/imhonza/cranky-language-tutor/internal/phrase"
)

// Palette: muted chalkboard tones with one loud accent for the tutor.
var (
	Primary   = lipgloss.Color("#F59E0B") // Amber
	Secondary = lipgloss.Color("#38BDF8") // Sky
	Accent    = lipgloss.Color("#EF4444") // Red, the tutor's voice
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#E5E7EB")
	TextDim   = lipgloss.Color("#9CA3AF")
	BgCard    = lipgloss.Color("#1F2937")
	Border    = lipgloss.Color("#374151")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Tutor = lipgloss.NewStyle().
		Foreground(Accent).
		Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 4)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// stageColors runs cold to warm as a phrase climbs the boxes.
var stageColors = map[phrase.Stage]color.Color{
	phrase.StageBacklog:  TextDim,
	1:                    lipgloss.Color("#F87171"),
	2:                    lipgloss.Color("#FB923C"),
	3:                    lipgloss.Color("#FACC15"),
	4:                    lipgloss.Color("#A3E635"),
	phrase.StageMastered: Success,
}

// StageColor returns the color used for a Leitner stage.
func StageColor(s phrase.Stage) color.Color {
	if c, ok := stageColors[s]; ok {
		return c
	}
	return Text
}

// StageBadge renders a short colored label such as "[2]" or "[★]".
func StageBadge(s phrase.Stage) string {
	label := fmt.Sprintf("[%d]", int(s))
	if s == phrase.StageMastered {
		label = "[★]"
	}
	return lipgloss.NewStyle().Foreground(StageColor(s)).Bold(true).Render(label)
}
