package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// builder returns an SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// each runs q and calls scan once per row.
func each(ctx context.Context, drv *entsql.Driver, q entsql.Querier, scan func(rows *entsql.Rows) error) error {
	query, args := q.Query()
	var rows entsql.Rows
	if err := drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// count runs a single-column COUNT query.
func count(ctx context.Context, drv *entsql.Driver, q entsql.Querier) (int, error) {
	var n int
	found := false
	err := each(ctx, drv, q, func(rows *entsql.Rows) error {
		found = true
		return rows.Scan(&n)
	})
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("count query returned no rows")
	}
	return n, nil
}

// exec runs a statement that returns no rows.
func exec(ctx context.Context, drv *entsql.Driver, q entsql.Querier) error {
	query, args := q.Query()
	return drv.Exec(ctx, query, args, nil)
}
