// Package learner defines the people who drill phrases and the target
// language each of them studies.
package learner

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Level is a CEFR proficiency label used to pitch generated phrases.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// DefaultLevel applies when a learner does not pick one.
const DefaultLevel = LevelA2

// Levels lists the supported levels in ascending order.
var Levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

var (
	ErrBlankName     = errors.New("learner name is blank")
	ErrBlankLanguage = errors.New("learner language is blank")
	ErrUnknownLevel  = errors.New("unknown CEFR level")
)

// ParseLevel accepts labels case-insensitively. An empty label yields the
// default level.
func ParseLevel(s string) (Level, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultLevel, nil
	}
	l := Level(s)
	if !slices.Contains(Levels, l) {
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return l, nil
}

// Learner is one registered user of the tutor.
type Learner struct {
	Name      string    `json:"name"`
	Language  string    `json:"language"`
	Level     Level     `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// New builds a validated learner.
func New(name, language string, level Level, now time.Time) (*Learner, error) {
	if level == "" {
		level = DefaultLevel
	}
	l := &Learner{
		Name:      strings.TrimSpace(name),
		Language:  strings.TrimSpace(language),
		Level:     level,
		CreatedAt: now.UTC(),
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Learner) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrBlankName
	}
	if strings.TrimSpace(l.Language) == "" {
		return ErrBlankLanguage
	}
	if !slices.Contains(Levels, l.Level) {
		return fmt.Errorf("%w: %q", ErrUnknownLevel, l.Level)
	}
	return nil
}
