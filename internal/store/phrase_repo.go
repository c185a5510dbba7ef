package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/imhonza/cranky-language-tutor/internal/phrase"
)

// PhraseRepo persists phrases partitioned by owner. A phrase is keyed by
// (owner, phrase_id).
type PhraseRepo struct {
	drv *entsql.Driver
}

var phraseSelectColumns = []string{
	"phrase_id", "text", "translation", "leitner_stage", "leitner_current",
	"mistakes", "correct_answers", "created_at", "updated_at",
}

// phraseWhere builds the owner and filter predicates for t.
func phraseWhere(t *entsql.SelectTable, owner string, f phrase.Filter) *entsql.Predicate {
	preds := []*entsql.Predicate{entsql.EQ(t.C("owner"), owner)}
	if f.Stage != nil {
		preds = append(preds, entsql.EQ(t.C("leitner_stage"), int(*f.Stage)))
	}
	if f.Active != nil {
		preds = append(preds, entsql.EQ(t.C("leitner_current"), *f.Active))
	}
	return entsql.And(preds...)
}

func phraseSelector(owner string, f phrase.Filter) (*entsql.Selector, *entsql.SelectTable) {
	b := builder()
	t := b.Table(phrasesTable)
	cols := make([]string, len(phraseSelectColumns))
	for i, c := range phraseSelectColumns {
		cols[i] = t.C(c)
	}
	return b.Select(cols...).From(t).Where(phraseWhere(t, owner, f)), t
}

func scanPhrase(rows *entsql.Rows) (*phrase.Phrase, error) {
	var (
		p     phrase.Phrase
		stage int
	)
	err := rows.Scan(&p.ID, &p.Text, &p.Translation, &stage, &p.Active,
		&p.Mistakes, &p.CorrectAnswers, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Stage = phrase.Stage(stage)
	return &p, nil
}

func (r *PhraseRepo) collect(ctx context.Context, sel *entsql.Selector) ([]*phrase.Phrase, error) {
	var out []*phrase.Phrase
	err := each(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		p, err := scanPhrase(rows)
		if err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

// CountPhrases counts the owner's phrases matching f.
func (r *PhraseRepo) CountPhrases(ctx context.Context, owner string, f phrase.Filter) (int, error) {
	b := builder()
	t := b.Table(phrasesTable)
	sel := b.Select(entsql.Count("*")).From(t).Where(phraseWhere(t, owner, f))

	n, err := count(ctx, r.drv, sel)
	if err != nil {
		return 0, fmt.Errorf("count phrases (%s): %w", f, err)
	}
	return n, nil
}

// FetchPhrases returns up to limit matching phrases; 0 means no limit.
func (r *PhraseRepo) FetchPhrases(ctx context.Context, owner string, f phrase.Filter, limit int) ([]*phrase.Phrase, error) {
	sel, t := phraseSelector(owner, f)
	sel = sel.OrderBy(t.C("id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	out, err := r.collect(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("fetch phrases (%s): %w", f, err)
	}
	return out, nil
}

// SampleRandomPhrase returns one matching phrase picked by the database at
// random, or nil when nothing matches.
func (r *PhraseRepo) SampleRandomPhrase(ctx context.Context, owner string, f phrase.Filter) (*phrase.Phrase, error) {
	sel, _ := phraseSelector(owner, f)
	sel = sel.OrderExpr(entsql.Expr("RANDOM()")).Limit(1)
	out, err := r.collect(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("sample phrase (%s): %w", f, err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// GetPhrase returns the owner's phrase with the given ID, or nil.
func (r *PhraseRepo) GetPhrase(ctx context.Context, owner, id string) (*phrase.Phrase, error) {
	sel, t := phraseSelector(owner, phrase.All())
	sel = sel.Where(entsql.EQ(t.C("phrase_id"), id)).Limit(1)
	out, err := r.collect(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("get phrase %s: %w", id, err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// UpsertPhrase inserts p or overwrites the stored row with the same ID.
func (r *PhraseRepo) UpsertPhrase(ctx context.Context, owner string, p *phrase.Phrase) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("upsert phrase %s: %w", p.ID, err)
	}

	insert := builder().Insert(phrasesTable).
		Columns("owner", "phrase_id", "text", "translation", "leitner_stage", "leitner_current",
			"mistakes", "correct_answers", "created_at", "updated_at").
		Values(owner, p.ID, p.Text, p.Translation, int(p.Stage), p.Active,
			p.Mistakes, p.CorrectAnswers, p.CreatedAt.UTC(), p.UpdatedAt.UTC()).
		OnConflict(
			entsql.ConflictColumns("owner", "phrase_id"),
			entsql.ResolveWithNewValues(),
		)

	if err := exec(ctx, r.drv, insert); err != nil {
		return fmt.Errorf("upsert phrase %s: %w", p.ID, err)
	}
	return nil
}
