package store

import (
	"context"
	"fmt"
	"strings"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/imhonza/cranky-language-tutor/internal/learner"
)

// LearnerRepo persists registered learners.
type LearnerRepo struct {
	drv *entsql.Driver
}

func (r *LearnerRepo) selectAll() (*entsql.Selector, *entsql.SelectTable) {
	b := builder()
	t := b.Table(learnersTable)
	return b.Select(t.C("name"), t.C("language"), t.C("level"), t.C("created_at")).From(t), t
}

func (r *LearnerRepo) collect(ctx context.Context, sel *entsql.Selector) ([]*learner.Learner, error) {
	var out []*learner.Learner
	err := each(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			l     learner.Learner
			level string
		)
		if err := rows.Scan(&l.Name, &l.Language, &level, &l.CreatedAt); err != nil {
			return err
		}
		l.Level = learner.Level(level)
		out = append(out, &l)
		return nil
	})
	return out, err
}

// Get returns the learner with the given name, or nil if there is none.
func (r *LearnerRepo) Get(ctx context.Context, name string) (*learner.Learner, error) {
	sel, t := r.selectAll()
	sel = sel.Where(entsql.EQ(t.C("name"), strings.TrimSpace(name))).Limit(1)

	out, err := r.collect(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("get learner %q: %w", name, err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// Save creates the learner or updates language and level of an existing one.
func (r *LearnerRepo) Save(ctx context.Context, l *learner.Learner) error {
	if err := l.Validate(); err != nil {
		return err
	}

	insert := builder().Insert(learnersTable).
		Columns("name", "language", "level", "created_at").
		Values(l.Name, l.Language, string(l.Level), l.CreatedAt.UTC()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("language")
				u.SetExcluded("level")
			}),
		)

	if err := exec(ctx, r.drv, insert); err != nil {
		return fmt.Errorf("save learner %q: %w", l.Name, err)
	}
	return nil
}

// List returns all learners ordered by name.
func (r *LearnerRepo) List(ctx context.Context) ([]*learner.Learner, error) {
	sel, t := r.selectAll()
	out, err := r.collect(ctx, sel.OrderBy(t.C("name")))
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	return out, nil
}

// Lookup resolves a learner's target language.
func (r *LearnerRepo) Lookup(ctx context.Context, name string) (string, bool, error) {
	l, err := r.Get(ctx, name)
	if err != nil {
		return "", false, err
	}
	if l == nil {
		return "", false, nil
	}
	return l.Language, true, nil
}
