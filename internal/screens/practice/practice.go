// Package practice is the drill screen: show a phrase, let the learner
// reveal the translation and grade themselves.
package practice

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/imhonza/cranky-language-tutor/internal/leitner"
	"github.com/imhonza/cranky-language-tutor/internal/phrase"
	"github.com/imhonza/cranky-language-tutor/internal/router"
	"github.com/imhonza/cranky-language-tutor/internal/screen"
	"github.com/imhonza/cranky-language-tutor/internal/screens/report"
	"github.com/imhonza/cranky-language-tutor/internal/ui/components"
	"github.com/imhonza/cranky-language-tutor/internal/ui/layout"
	"github.com/imhonza/cranky-language-tutor/internal/voice"
)

type phase int

const (
	phaseLoading phase = iota
	phaseAsking
	phaseRevealed
	phaseAdding
	phaseStuck
)

// PracticeScreen drives one learner's drill loop.
type PracticeScreen struct {
	tutor   screen.Tutor
	phase   phase
	current *phrase.Phrase

	// line is what the tutor last said; good colours it.
	line string
	good bool

	input     components.PhraseInput
	prevPhase phase
	reviewed  int

	// answeredIn is the phase an answer was given in, restored when the
	// answer could not be saved.
	answeredIn phase
}

var (
	_ screen.Screen          = (*PracticeScreen)(nil)
	_ screen.KeyHintProvider = (*PracticeScreen)(nil)
	_ screen.InputCapturer   = (*PracticeScreen)(nil)
)

func New(tutor screen.Tutor) *PracticeScreen {
	return &PracticeScreen{
		tutor: tutor,
		line:  voice.Greeting,
		input: components.NewPhraseInput("phrase = translation (translation optional)", 200),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	s.phase = phaseLoading
	return s.nextCmd()
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) CapturingInput() bool {
	return s.phase == phaseAdding
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseAdding:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Add"},
			{Key: "Esc", Description: "Cancel"},
		}
	case phaseStuck:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "A", Description: "Add phrase"},
			{Key: "Q", Description: "Back"},
		}
	case phaseAsking:
		return []layout.KeyHint{
			{Key: "Space", Description: "Reveal"},
			{Key: "Y/N", Description: "Knew it / Didn't"},
			{Key: "A", Description: "Add"},
			{Key: "S", Description: "Stats"},
			{Key: "Q", Description: "Back"},
		}
	case phaseRevealed:
		return []layout.KeyHint{
			{Key: "Y", Description: "Knew it"},
			{Key: "N", Description: "Didn't"},
			{Key: "A", Description: "Add"},
			{Key: "S", Description: "Stats"},
			{Key: "Q", Description: "Back"},
		}
	}
	return nil
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case phraseReadyMsg:
		return s.handlePhraseReady(msg)
	case answerRecordedMsg:
		return s.handleAnswerRecorded(msg)
	case phraseAddedMsg:
		return s.handlePhraseAdded(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAdding {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.phase == phaseAdding {
		switch key {
		case "esc":
			s.phase = s.prevPhase
			s.line = voice.NotAdded
			s.good = false
			s.input.Reset()
			return s, nil
		case "enter":
			text, translation := s.input.Parse()
			if text == "" {
				s.line = voice.AskPhrase
				return s, nil
			}
			s.input.Reset()
			s.phase = s.prevPhase
			return s, s.addCmd(text, translation)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "s":
		r := report.New(s.tutor)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: r} }
	case "a":
		if s.phase == phaseLoading {
			return s, nil
		}
		s.prevPhase = s.phase
		s.phase = phaseAdding
		s.line = voice.AskPhrase
		return s, s.input.Focus()
	}

	switch s.phase {
	case phaseAsking, phaseRevealed:
		switch key {
		case "space", "enter":
			if s.phase == phaseAsking {
				s.phase = phaseRevealed
			} else {
				s.phase = phaseAsking
			}
		case "y":
			return s, s.answer(true)
		case "n":
			return s, s.answer(false)
		}
	case phaseStuck:
		if key == "r" {
			s.phase = phaseLoading
			return s, s.nextCmd()
		}
	}
	return s, nil
}

func (s *PracticeScreen) handlePhraseReady(msg phraseReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase = phaseStuck
		s.current = nil
		s.line = voice.ForError(msg.Err)
		s.good = false
		return s, nil
	}
	s.current = msg.Phrase
	s.phase = phaseAsking
	return s, s.statsCmd()
}

func (s *PracticeScreen) handleAnswerRecorded(msg answerRecordedMsg) (screen.Screen, tea.Cmd) {
	switch {
	case errors.Is(msg.Err, leitner.ErrItemNotFound):
		// Stale card: apologise and move on.
		s.line = voice.ForError(msg.Err)
		s.good = false
	case msg.Err != nil:
		s.line = voice.ForError(msg.Err)
		s.good = false
		s.phase = s.answeredIn
		return s, nil
	case msg.Outcome == leitner.OutcomeMastered:
		s.line, s.good = voice.Mastered, true
		s.reviewed++
	case msg.Correct:
		s.line, s.good = voice.Correct, true
		s.reviewed++
	default:
		s.line, s.good = voice.Incorrect, false
		s.reviewed++
	}
	s.phase = phaseLoading
	return s, s.nextCmd()
}

func (s *PracticeScreen) handlePhraseAdded(msg phraseAddedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.line = voice.ForError(msg.Err)
		s.good = false
		return s, nil
	}
	s.line, s.good = voice.Added, true
	if s.phase == phaseStuck {
		s.phase = phaseLoading
		return s, tea.Batch(s.statsCmd(), s.nextCmd())
	}
	return s, s.statsCmd()
}

func (s *PracticeScreen) nextCmd() tea.Cmd {
	tutor := s.tutor
	return func() tea.Msg {
		p, err := tutor.NextItem(context.Background())
		return phraseReadyMsg{Phrase: p, Err: err}
	}
}

// answer grades the current phrase. Mastered phrases drawn for review
// are not in the active set and stay mastered, so nothing is recorded.
func (s *PracticeScreen) answer(correct bool) tea.Cmd {
	if s.current == nil {
		return nil
	}
	if s.current.Stage == phrase.StageMastered {
		s.line, s.good = voice.ForReview(correct), correct
		s.reviewed++
		s.phase = phaseLoading
		return s.nextCmd()
	}
	return s.recordCmd(correct)
}

func (s *PracticeScreen) recordCmd(correct bool) tea.Cmd {
	tutor, id := s.tutor, s.current.ID
	s.answeredIn = s.phase
	s.phase = phaseLoading
	return func() tea.Msg {
		ctx := context.Background()
		if correct {
			outcome, err := tutor.RecordCorrect(ctx, id)
			return answerRecordedMsg{Correct: true, Outcome: outcome, Err: err}
		}
		err := tutor.RecordIncorrect(ctx, id)
		return answerRecordedMsg{Correct: false, Err: err}
	}
}

func (s *PracticeScreen) addCmd(text, translation string) tea.Cmd {
	tutor := s.tutor
	return func() tea.Msg {
		p, err := tutor.AddPhrase(context.Background(), text, translation)
		return phraseAddedMsg{Phrase: p, Err: err}
	}
}

func (s *PracticeScreen) statsCmd() tea.Cmd {
	tutor := s.tutor
	return func() tea.Msg {
		st, err := tutor.Stats(context.Background())
		if err != nil {
			return nil
		}
		return screen.StatsChangedMsg{Stats: st, Active: tutor.ActiveCount()}
	}
}
