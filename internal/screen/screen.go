// Package screen defines the contracts between the app shell and its
// screens.
package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/imhonza/cranky-language-tutor/internal/leitner"
	"github.com/imhonza/cranky-language-tutor/internal/phrase"
	"github.com/imhonza/cranky-language-tutor/internal/ui/layout"
)

// Screen is one page of the app.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that own the keyboard while a
// text field is focused, so Esc reaches them instead of closing them.
type InputCapturer interface {
	CapturingInput() bool
}

// Tutor is the scheduler surface the screens drive. *leitner.Scheduler
// implements it.
type Tutor interface {
	Owner() string
	Language() string
	ActiveCount() int
	NextItem(ctx context.Context) (*phrase.Phrase, error)
	RecordCorrect(ctx context.Context, id string) (leitner.Outcome, error)
	RecordIncorrect(ctx context.Context, id string) error
	AddPhrase(ctx context.Context, text, translation string) (*phrase.Phrase, error)
	Stats(ctx context.Context) (leitner.Stats, error)
	Report() leitner.Report
}

var _ Tutor = (*leitner.Scheduler)(nil)

// StatsChangedMsg tells the shell to refresh the header counters.
type StatsChangedMsg struct {
	Stats  leitner.Stats
	Active int
}
