package home

import (
	"charm.land/lipgloss/v2"

	"github.com/imhonza/cranky-language-tutor/internal/ui/theme"
)

// Mood selects the tutor's face.
type Mood int

const (
	MoodGrumpy  Mood = iota // default
	MoodSmug                // something was mastered
	MoodFurious             // nothing practiced yet
)

const faceGrumpy = `┌─────┐
│ ─ ─ │
│  ~  │
│ ¿?¡ │
└─────┘`

const faceSmug = `┌─────┐
│ ◔ ◔ │
│  ‿  │
│ ¿?¡ │
└─────┘`

const faceFurious = `┌─────┐
│ ╲ ╱ │ !
│  ▭  │
│ ¿?¡ │
└─────┘`

// moodFor picks a face from the learner's totals.
func moodFor(practiced, mastered int) Mood {
	switch {
	case practiced == 0:
		return MoodFurious
	case mastered > 0:
		return MoodSmug
	default:
		return MoodGrumpy
	}
}

// RenderFace returns the tutor art for mood.
func RenderFace(mood Mood) string {
	art, fg := faceGrumpy, theme.Primary
	switch mood {
	case MoodSmug:
		art, fg = faceSmug, theme.Success
	case MoodFurious:
		art, fg = faceFurious, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
