package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/imhonza/cranky-language-tutor/internal/ui/theme"
)

// ProgressBar displays a labelled horizontal bar.
type ProgressBar struct {
	Label   string
	Percent float64
	Count   int
	Width   int
	Color   color.Color
}

// View renders the bar followed by the raw count.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label))
		b.WriteString("  ")
	}

	barWidth := max(p.Width-lipgloss.Width(b.String())-6, 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}
	b.WriteString(lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(theme.Hint.Render(fmt.Sprintf(" %4d", p.Count)))
	return b.String()
}
