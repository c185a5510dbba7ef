package leitner

import "github.com/imhonza/cranky-language-tutor/internal/phrase"

// activeSet is the in-memory working set of one learner. It is owned by a
// Scheduler and only touched under the scheduler's lock.
type activeSet struct {
	phrases []*phrase.Phrase
}

func (a *activeSet) len() int {
	return len(a.phrases)
}

func (a *activeSet) add(ps ...*phrase.Phrase) {
	a.phrases = append(a.phrases, ps...)
}

func (a *activeSet) reset(ps []*phrase.Phrase) {
	a.phrases = ps
}

// index returns the position of the phrase with the given ID, or -1.
func (a *activeSet) index(id string) int {
	for i, p := range a.phrases {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (a *activeSet) removeAt(i int) {
	a.phrases = append(a.phrases[:i], a.phrases[i+1:]...)
}

// snapshot returns copies of the active phrases for read-only callers.
func (a *activeSet) snapshot() []*phrase.Phrase {
	out := make([]*phrase.Phrase, len(a.phrases))
	for i, p := range a.phrases {
		out[i] = p.Clone()
	}
	return out
}
