package leitner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/imhonza/cranky-language-tutor/internal/phrase"
)

type mapDirectory struct {
	languages map[string]string
	lookups   atomic.Int32
	err       error
}

func (d *mapDirectory) Lookup(_ context.Context, name string) (string, bool, error) {
	d.lookups.Add(1)
	if d.err != nil {
		return "", false, d.err
	}
	lang, ok := d.languages[name]
	return lang, ok, nil
}

func testPool(repo *memRepo, dir *mapDirectory, allowed []string) *Pool {
	base := Options{
		Capacity:          Capacity{Min: 1, Max: 3},
		ReviewProbability: DefaultReviewProbability,
		Repository:        repo,
		Now:               fixedNow,
	}
	return NewPool(base, dir, allowed)
}

func TestPool_BuildsPerLearner(t *testing.T) {
	repo := newMemRepo()
	repo.seed("ana", testPhrase("a1", "uno", phrase.StageFirst, true))
	dir := &mapDirectory{languages: map[string]string{"ana": "Spanish", "bob": "German"}}
	p := testPool(repo, dir, nil)
	ctx := context.Background()

	ana, err := p.Get(ctx, "ana")
	if err != nil {
		t.Fatalf("Get(ana): %v", err)
	}
	if ana.Owner() != "ana" || ana.Language() != "Spanish" || ana.ActiveCount() != 1 {
		t.Errorf("ana scheduler = %s/%s/%d", ana.Owner(), ana.Language(), ana.ActiveCount())
	}

	bob, err := p.Get(ctx, "bob")
	if err != nil {
		t.Fatalf("Get(bob): %v", err)
	}
	if bob == ana || bob.ActiveCount() != 0 {
		t.Error("learners must not share a scheduler")
	}

	again, _ := p.Get(ctx, "ana")
	if again != ana {
		t.Error("Get should return the cached scheduler")
	}
	if got := p.Loaded(); len(got) != 2 || got[0] != "ana" || got[1] != "bob" {
		t.Errorf("Loaded() = %v", got)
	}
}

func TestPool_UnknownLearner(t *testing.T) {
	p := testPool(newMemRepo(), &mapDirectory{languages: map[string]string{}}, nil)
	if _, err := p.Get(context.Background(), "ghost"); !errors.Is(err, ErrUnknownLearner) {
		t.Fatalf("error = %v, want ErrUnknownLearner", err)
	}
	if _, err := p.Get(context.Background(), "  "); !errors.Is(err, ErrUnknownLearner) {
		t.Fatalf("blank name error = %v, want ErrUnknownLearner", err)
	}
}

func TestPool_AllowList(t *testing.T) {
	dir := &mapDirectory{languages: map[string]string{"ana": "Spanish", "bob": "German"}}
	p := testPool(newMemRepo(), dir, []string{"ana", " "})

	if _, err := p.Get(context.Background(), "ana"); err != nil {
		t.Fatalf("Get(ana): %v", err)
	}
	if _, err := p.Get(context.Background(), "bob"); !errors.Is(err, ErrUnknownLearner) {
		t.Fatalf("error = %v, want ErrUnknownLearner", err)
	}
	if dir.lookups.Load() != 1 {
		t.Errorf("lookups = %d, disallowed learners should not reach the directory", dir.lookups.Load())
	}
}

func TestPool_DirectoryError(t *testing.T) {
	p := testPool(newMemRepo(), &mapDirectory{err: errBoom}, nil)
	if _, err := p.Get(context.Background(), "ana"); !errors.Is(err, errBoom) {
		t.Fatalf("error = %v", err)
	}
}

func TestPool_ConcurrentFirstUse(t *testing.T) {
	dir := &mapDirectory{languages: map[string]string{"ana": "Spanish"}}
	p := testPool(newMemRepo(), dir, nil)

	const n = 16
	got := make([]*Scheduler, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := p.Get(context.Background(), "ana")
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			got[i] = s
		}()
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if got[i] != got[0] {
			t.Fatal("concurrent Get returned different schedulers")
		}
	}
	if dir.lookups.Load() != 1 {
		t.Errorf("lookups = %d, want 1", dir.lookups.Load())
	}
}

func TestPool_LoadedSkipsFailedBuilds(t *testing.T) {
	dir := &mapDirectory{languages: map[string]string{"ana": "Spanish"}}
	p := testPool(newMemRepo(), dir, nil)
	ctx := context.Background()

	if got := p.Loaded(); len(got) != 0 {
		t.Fatalf("Loaded() before any Get = %v", got)
	}
	p.Get(ctx, "ghost")
	p.Get(ctx, "ana")
	if got := p.Loaded(); len(got) != 1 || got[0] != "ana" {
		t.Errorf("Loaded() = %v, want [ana]", got)
	}
}
