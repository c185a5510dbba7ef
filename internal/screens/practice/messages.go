package practice

import (
	"github.com/imhonza/cranky-language-tutor/internal/leitner"
	"github.com/imhonza/cranky-language-tutor/internal/phrase"
)

// phraseReadyMsg carries the next phrase to drill.
type phraseReadyMsg struct {
	Phrase *phrase.Phrase
	Err    error
}

// answerRecordedMsg is sent once an outcome has been persisted.
type answerRecordedMsg struct {
	Correct bool
	Outcome leitner.Outcome
	Err     error
}

// phraseAddedMsg is sent when a user-typed phrase has been stored.
type phraseAddedMsg struct {
	Phrase *phrase.Phrase
	Err    error
}
