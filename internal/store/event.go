package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the global monotonic sequence shared by every
// event table. Answer and LLM events live in separate tables, so per-table
// keys cannot order them against each other.
//
// Numbers are reserved inside the caller's transaction: the UPDATE takes
// the row lock, so concurrent writers serialize and a rolled-back batch
// releases its range.
type sequenceCounter struct {
	dialect string
}

// reserve claims n consecutive sequence numbers and returns the first.
func (sc *sequenceCounter) reserve(ctx context.Context, tx *sql.Tx, n int) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("reserve %d sequence numbers", n)
	}

	b := entsql.Dialect(sc.dialect)
	query, args := b.Update(tableSequence).
		Add("next_val", n).
		Where(entsql.EQ("id", 1)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("advance sequence: %w", err)
	}

	query, args = b.Select("next_val").
		From(b.Table(tableSequence)).
		Where(entsql.EQ("id", 1)).
		Query()
	var next int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("read sequence: %w", err)
	}
	return next - int64(n), nil
}
