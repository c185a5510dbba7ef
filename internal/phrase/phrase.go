// Package phrase defines the unit a learner drills on and its Leitner
// lifecycle: backlog (stage 0), active working stages 1-4, and mastered
// (stage 5). Mastered phrases are retained for occasional review and are
// never deleted.
package phrase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stage is the Leitner box a phrase currently sits in.
type Stage int

const (
	// StageBacklog holds phrases that have never been activated.
	StageBacklog Stage = 0

	// StageFirst is where activation and every mistake put a phrase.
	StageFirst Stage = 1

	// StageLastActive is the highest stage that is still drilled regularly.
	StageLastActive Stage = 4

	// StageMastered is terminal: the phrase leaves the active set but is kept
	// around for spaced review draws.
	StageMastered Stage = 5
)

// idLength matches the identifier width used by existing stores.
const idLength = 20

var (
	// ErrEmptyText is returned when a phrase is created without text.
	ErrEmptyText = errors.New("phrase text is empty")

	// ErrInvalidTransition is returned when a lifecycle step does not apply
	// to the phrase's current stage.
	ErrInvalidTransition = errors.New("invalid stage transition")
)

// IsActiveStage reports whether s is one of the working stages 1-4.
func (s Stage) IsActiveStage() bool {
	return s >= StageFirst && s <= StageLastActive
}

// Valid reports whether s lies in [0,5].
func (s Stage) Valid() bool {
	return s >= StageBacklog && s <= StageMastered
}

func (s Stage) String() string {
	switch {
	case s == StageBacklog:
		return "backlog"
	case s == StageMastered:
		return "mastered"
	case s.IsActiveStage():
		return fmt.Sprintf("stage %d", int(s))
	default:
		return fmt.Sprintf("invalid(%d)", int(s))
	}
}

// Phrase is a single learnable unit owned by one learner.
type Phrase struct {
	ID             string    `json:"phrase_id"`
	Text           string    `json:"text"`
	Translation    string    `json:"translation,omitempty"`
	Stage          Stage     `json:"leitner_stage"`
	Active         bool      `json:"leitner_current"`
	Mistakes       int       `json:"mistakes"`
	CorrectAnswers int       `json:"correct_answers"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// New creates a backlog phrase with a fresh identifier.
func New(text string, now time.Time) (*Phrase, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	now = now.UTC()
	return &Phrase{
		ID:        NewID(),
		Text:      text,
		Stage:     StageBacklog,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewID returns a random 20 character hex identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}

// Activate promotes a backlog phrase into the active set at stage 1.
func (p *Phrase) Activate(now time.Time) error {
	if p.Stage != StageBacklog {
		return fmt.Errorf("%w: activate from %s", ErrInvalidTransition, p.Stage)
	}
	p.Stage = StageFirst
	p.Active = true
	p.UpdatedAt = now.UTC()
	return nil
}

// MarkCorrect moves the phrase up one stage and reports whether it has
// just been mastered. A mastered phrase stays at stage 5.
func (p *Phrase) MarkCorrect(now time.Time) (mastered bool) {
	if p.Stage < StageMastered {
		p.Stage++
		mastered = p.Stage == StageMastered
	}
	if p.Stage == StageMastered {
		p.Active = false
	}
	p.CorrectAnswers++
	p.UpdatedAt = now.UTC()
	return mastered
}

// MarkMistake sends the phrase straight back to stage 1, whatever stage it
// was in. One mistake costs all accumulated progress.
func (p *Phrase) MarkMistake(now time.Time) {
	p.Stage = StageFirst
	p.Active = true
	p.Mistakes++
	p.UpdatedAt = now.UTC()
}

// Validate checks the stage/activity invariants.
func (p *Phrase) Validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return ErrEmptyText
	}
	if !p.Stage.Valid() {
		return fmt.Errorf("phrase %s: stage %d out of range", p.ID, int(p.Stage))
	}
	if p.Active && !p.Stage.IsActiveStage() {
		return fmt.Errorf("phrase %s: active at %s", p.ID, p.Stage)
	}
	return nil
}

// Clone returns a copy that can be mutated independently.
func (p *Phrase) Clone() *Phrase {
	c := *p
	return &c
}
