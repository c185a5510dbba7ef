// Package voice holds the tutor's lines. Delivery layers (CLI, TUI, MCP)
// pick a line from the scheduler's error taxonomy and outcomes so the
// personality stays consistent across them.
package voice

import (
	"errors"

	"github.com/imhonza/cranky-language-tutor/internal/leitner"
)

const (
	Greeting   = "Oh, you finally showed up. Let's see if you learned anything."
	NextPrompt = "Ready for the next challenge?"
	AskPhrase  = "Provide me a phrase to work with. Don't keep me waiting."
	Added      = "Fine, added it. Don't expect me to be impressed."
	NotAdded   = "Fine, I won't add it. Whatever. You're the boss. For now."
	Correct    = "Correct. Don't let it go to your head."
	Incorrect  = "Wrong. Back to box one with that one."
	Mastered   = "Mastered. I'll still ambush you with it some day."

	// Review lines answer mastered phrases drawn for review. Those stay
	// mastered whatever the answer.
	Reviewed     = "Still remember that one. Good. It stays where it is."
	ReviewMissed = "You forgot a mastered one? I'll pretend I didn't see that."
)

// ForReview returns the line for an answer to a mastered review phrase.
func ForReview(correct bool) string {
	if correct {
		return Reviewed
	}
	return ReviewMissed
}

// ForError returns the line for a scheduler or pool error.
func ForError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, leitner.ErrItemNotFound):
		return "Something or someone terribly messed up. I can't find that phrase anymore. Let's just move on."
	case errors.Is(err, leitner.ErrRefillFailed):
		return "I tried to come up with new phrases and failed. Not my finest moment. Try again later."
	case errors.Is(err, leitner.ErrNoItemsAvailable):
		return "Nothing left to drill. Add some phrases, or configure a model so I can invent some."
	case errors.Is(err, leitner.ErrUnknownLearner):
		return "Who do you think you are? This feature isn't for you. Shoo!"
	default:
		return "Sorry, something went wrong. I'm not happy about it either."
	}
}
