package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendReview(ctx context.Context, data ReviewEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	insert := builder().Insert(reviewEventTable).
		Columns("sequence", "timestamp", "owner", "phrase_id", "correct", "from_stage", "to_stage", "mastered").
		Values(seqNum, time.Now().UTC(), data.Owner, data.PhraseID, data.Correct, data.FromStage, data.ToStage, data.Mastered)

	if err := exec(ctx, r.drv, insert); err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryReviews(ctx context.Context, opts QueryOpts) ([]ReviewEventRecord, error) {
	b := builder()
	t := b.Table(reviewEventTable)
	sel := b.Select(
		t.C("sequence"), t.C("timestamp"), t.C("owner"), t.C("phrase_id"),
		t.C("correct"), t.C("from_stage"), t.C("to_stage"), t.C("mastered"),
	).From(t)
	if opts.Owner != "" {
		sel = sel.Where(entsql.EQ(t.C("owner"), opts.Owner))
	}
	sel = applyQueryOpts(sel, t, opts)

	var records []ReviewEventRecord
	err := each(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var e ReviewEventRecord
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.Owner, &e.PhraseID,
			&e.Correct, &e.FromStage, &e.ToStage, &e.Mastered); err != nil {
			return err
		}
		records = append(records, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}
	return records, nil
}
