package leitner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LearnerDirectory resolves a learner's target language.
type LearnerDirectory interface {
	// Lookup returns the learner's language. found is false for learners
	// that do not exist.
	Lookup(ctx context.Context, name string) (language string, found bool, err error)
}

// Pool hands out one Scheduler per learner, building each lazily on first
// use. Schedulers of different learners share no mutable state.
type Pool struct {
	base    Options
	dir     LearnerDirectory
	allowed map[string]struct{}

	mu         sync.RWMutex
	schedulers map[string]*Scheduler
	group      singleflight.Group
}

// NewPool creates a pool. base supplies everything except Owner, Language
// and Rand, which are set per learner. An empty allowed list admits every
// learner the directory knows.
func NewPool(base Options, dir LearnerDirectory, allowed []string) *Pool {
	p := &Pool{
		base:       base,
		dir:        dir,
		schedulers: make(map[string]*Scheduler),
	}
	if len(allowed) > 0 {
		p.allowed = make(map[string]struct{}, len(allowed))
		for _, name := range allowed {
			if name = strings.TrimSpace(name); name != "" {
				p.allowed[name] = struct{}{}
			}
		}
	}
	return p
}

// Allowed reports whether name passes the allow-list.
func (p *Pool) Allowed(name string) bool {
	if p.allowed == nil {
		return true
	}
	_, ok := p.allowed[name]
	return ok
}

// Get returns the learner's scheduler, creating it if needed. Concurrent
// first calls for one learner share a single construction.
func (p *Pool) Get(ctx context.Context, name string) (*Scheduler, error) {
	name = strings.TrimSpace(name)
	if name == "" || !p.Allowed(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLearner, name)
	}

	p.mu.RLock()
	s, ok := p.schedulers[name]
	p.mu.RUnlock()
	if ok {
		return s, nil
	}

	v, err, _ := p.group.Do(name, func() (any, error) {
		p.mu.RLock()
		s, ok := p.schedulers[name]
		p.mu.RUnlock()
		if ok {
			return s, nil
		}

		language, found, err := p.dir.Lookup(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("look up learner %q: %w", name, err)
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLearner, name)
		}

		opts := p.base
		opts.Owner = name
		opts.Language = language
		opts.Rand = nil
		s, err = New(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("build scheduler for %q: %w", name, err)
		}

		p.mu.Lock()
		p.schedulers[name] = s
		p.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Scheduler), nil
}

// Loaded returns the names of learners with a live scheduler, sorted.
func (p *Pool) Loaded() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.schedulers))
	for name := range p.schedulers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
