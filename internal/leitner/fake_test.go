package leitner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/imhonza/cranky-language-tutor/internal/phrase"
	"github.com/imhonza/cranky-language-tutor/internal/store"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// memRepo is an in-memory Repository keyed by owner. Fetch and sample
// return phrases in insertion order so tests stay deterministic.
type memRepo struct {
	mu      sync.Mutex
	order   map[string][]string
	phrases map[string]map[string]*phrase.Phrase

	upserts    int
	failUpsert func(p *phrase.Phrase) error
	sampleErr  error
	countErr   error
}

func newMemRepo() *memRepo {
	return &memRepo{
		order:   make(map[string][]string),
		phrases: make(map[string]map[string]*phrase.Phrase),
	}
}

func (r *memRepo) put(owner string, p *phrase.Phrase) {
	if r.phrases[owner] == nil {
		r.phrases[owner] = make(map[string]*phrase.Phrase)
	}
	if _, ok := r.phrases[owner][p.ID]; !ok {
		r.order[owner] = append(r.order[owner], p.ID)
	}
	r.phrases[owner][p.ID] = p.Clone()
}

// seed stores phrases directly, bypassing upsert accounting.
func (r *memRepo) seed(owner string, ps ...*phrase.Phrase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range ps {
		r.put(owner, p)
	}
}

func (r *memRepo) get(owner, id string) *phrase.Phrase {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.phrases[owner][id]
	if p == nil {
		return nil
	}
	return p.Clone()
}

func (r *memRepo) matching(owner string, f phrase.Filter) []*phrase.Phrase {
	var out []*phrase.Phrase
	for _, id := range r.order[owner] {
		p := r.phrases[owner][id]
		if f.Matches(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (r *memRepo) CountPhrases(_ context.Context, owner string, f phrase.Filter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countErr != nil {
		return 0, r.countErr
	}
	return len(r.matching(owner, f)), nil
}

func (r *memRepo) FetchPhrases(_ context.Context, owner string, f phrase.Filter, limit int) ([]*phrase.Phrase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.matching(owner, f)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepo) SampleRandomPhrase(_ context.Context, owner string, f phrase.Filter) (*phrase.Phrase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sampleErr != nil {
		return nil, r.sampleErr
	}
	out := r.matching(owner, f)
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *memRepo) GetPhrase(_ context.Context, owner, id string) (*phrase.Phrase, error) {
	return r.get(owner, id), nil
}

func (r *memRepo) UpsertPhrase(_ context.Context, owner string, p *phrase.Phrase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpsert != nil {
		if err := r.failUpsert(p); err != nil {
			return err
		}
	}
	r.upserts++
	r.put(owner, p)
	return nil
}

type fakeGenerator struct {
	texts []string
	err   error
	calls int
	asked []int
}

func (g *fakeGenerator) GenerateBatch(_ context.Context, _ string, count int) ([]string, error) {
	g.calls++
	g.asked = append(g.asked, count)
	if g.err != nil {
		return nil, g.err
	}
	return g.texts, nil
}

type fakeTranslator struct{ err error }

func (t fakeTranslator) Translate(_ context.Context, text string) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	return "EN: " + text, nil
}

type fakeEvents struct {
	events []store.ReviewEventData
	err    error
}

func (e *fakeEvents) AppendReview(_ context.Context, data store.ReviewEventData) error {
	if e.err != nil {
		return e.err
	}
	e.events = append(e.events, data)
	return nil
}

var errBoom = errors.New("boom")

func testPhrase(id, text string, stage phrase.Stage, active bool) *phrase.Phrase {
	return &phrase.Phrase{
		ID:        id,
		Text:      text,
		Stage:     stage,
		Active:    active,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func backlogPhrases(n int) []*phrase.Phrase {
	out := make([]*phrase.Phrase, n)
	for i := range out {
		out[i] = testPhrase(phrase.NewID(), "backlog phrase", phrase.StageBacklog, false)
	}
	return out
}
