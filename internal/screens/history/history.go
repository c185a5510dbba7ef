// Package history lists a learner's past reviews grouped by day.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/imhonza/cranky-language-tutor/internal/router"
	"github.com/imhonza/cranky-language-tutor/internal/screen"
	"github.com/imhonza/cranky-language-tutor/internal/store"
	"github.com/imhonza/cranky-language-tutor/internal/ui/layout"
	"github.com/imhonza/cranky-language-tutor/internal/ui/theme"
)

// reviewLimit bounds how far back the screen reads.
const reviewLimit = 500

// ReviewSource is the slice of store.EventRepo the screen reads.
type ReviewSource interface {
	QueryReviews(ctx context.Context, opts store.QueryOpts) ([]store.ReviewEventRecord, error)
}

// Day aggregates the reviews of one calendar day, newest first.
type Day struct {
	Date     time.Time
	Reviews  []store.ReviewEventRecord
	Correct  int
	Mastered int
}

// Accuracy returns the share of correct answers, 0 to 100.
func (d Day) Accuracy() float64 {
	if len(d.Reviews) == 0 {
		return 0
	}
	return float64(d.Correct) / float64(len(d.Reviews)) * 100
}

type historyLoadedMsg struct {
	Days []Day
	Err  error
}

// HistoryScreen displays past reviews.
type HistoryScreen struct {
	owner    string
	reviews  ReviewSource
	texts    map[string]string
	days     []Day
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a history screen for owner. texts maps phrase IDs to their
// text for display; unknown IDs are shown as is.
func New(owner string, reviews ReviewSource, texts map[string]string) *HistoryScreen {
	return &HistoryScreen{
		owner:    owner,
		reviews:  reviews,
		texts:    texts,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	owner, reviews := s.owner, s.reviews
	return func() tea.Msg {
		records, err := reviews.QueryReviews(context.Background(), store.QueryOpts{Owner: owner, Limit: reviewLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Days: GroupByDay(records, time.Local)}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.days = msg.Days
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.days)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

// GroupByDay buckets records (newest first) by calendar day in loc.
func GroupByDay(records []store.ReviewEventRecord, loc *time.Location) []Day {
	var days []Day
	for _, r := range records {
		y, m, d := r.Timestamp.In(loc).Date()
		date := time.Date(y, m, d, 0, 0, 0, 0, loc)
		if len(days) == 0 || !days[len(days)-1].Date.Equal(date) {
			days = append(days, Day{Date: date})
		}
		day := &days[len(days)-1]
		day.Reviews = append(day.Reviews, r)
		if r.Correct {
			day.Correct++
		}
		if r.Mastered {
			day.Mastered++
		}
	}
	return days
}

func (s *HistoryScreen) View(width, height int) string {
	msgStyle := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return msgStyle.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return msgStyle.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.days) == 0 {
		return msgStyle.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No reviews yet. What are you waiting for?")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, day := range s.days {
		prefix := "  "
		style := theme.Body
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s  %d reviews  %.0f%% correct", prefix,
			day.Date.Format("Jan 02, 2006"), len(day.Reviews), day.Accuracy())
		if day.Mastered > 0 {
			line += fmt.Sprintf("  %d mastered", day.Mastered)
		}
		b.WriteString(layout.Centered(style.Render(line), width))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, r := range day.Reviews {
				b.WriteString(layout.Centered(s.reviewLine(r), width))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (s *HistoryScreen) reviewLine(r store.ReviewEventRecord) string {
	text := s.texts[r.PhraseID]
	if text == "" {
		text = r.PhraseID
	}
	mark := theme.Correct.Render("✓")
	if !r.Correct {
		mark = theme.Incorrect.Render("✗")
	}
	move := fmt.Sprintf("%d→%d", r.FromStage, r.ToStage)
	if r.Mastered {
		move += " ★"
	}
	return fmt.Sprintf("    %s %s  %s  %s", r.Timestamp.Local().Format("15:04"), mark,
		theme.Body.Render(text), theme.Hint.Render(move))
}
