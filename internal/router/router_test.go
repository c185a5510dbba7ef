package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/imhonza/cranky-language-tutor/internal/screen"
)

type stubScreen struct {
	title string
	inits int
	seen  []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	practice := &stubScreen{title: "practice"}
	r.Push(practice)

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "practice" {
		t.Errorf("active = %q, want practice", r.Active().Title())
	}
	if practice.inits != 1 {
		t.Errorf("practice Init ran %d times, want 1", practice.inits)
	}
}

func TestPopReinitsUncoveredScreen(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Push(&stubScreen{title: "practice"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
	if r.Active() != home {
		t.Errorf("active = %q, want home", r.Active().Title())
	}
	if home.inits != 1 {
		t.Errorf("home Init ran %d times after pop, want 1", home.inits)
	}
}

func TestPopKeepsRoot(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	if cmd := r.Pop(); cmd != nil {
		t.Error("pop at root should be a no-op")
	}
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "practice"})

	report := &stubScreen{title: "report"}
	r.Update(ReplaceScreenMsg{Screen: report})

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "report" {
		t.Errorf("active = %q, want report", r.Active().Title())
	}
	if report.inits != 1 {
		t.Error("expected Init on replaced screen")
	}
}

func TestUpdateForwardsToActiveOnly(t *testing.T) {
	home := &stubScreen{title: "home"}
	practice := &stubScreen{title: "practice"}
	r := New(home)
	r.Update(PushScreenMsg{Screen: practice})

	r.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if len(practice.seen) != 1 {
		t.Errorf("practice saw %d messages, want 1", len(practice.seen))
	}
	if len(home.seen) != 0 {
		t.Errorf("home saw %d messages, want 0", len(home.seen))
	}
	if got := r.View(80, 24); got != "practice" {
		t.Errorf("View = %q, want practice", got)
	}
}
