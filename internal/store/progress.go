package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// LoadProgress returns every persisted scheduling row keyed by question id.
func (s *Store) LoadProgress(ctx context.Context) (map[string]ProgressRecord, error) {
	b := entsql.Dialect(s.dialect)
	query, args := b.Select("question_id", "region_id", "interval", "next_review", "mastered").
		From(b.Table(tableProgress)).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ProgressRecord)
	for rows.Next() {
		var (
			rec        ProgressRecord
			nextReview string
			mastered   int
		)
		if err := rows.Scan(&rec.QuestionID, &rec.RegionID, &rec.Interval, &nextReview, &mastered); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		rec.Mastered = mastered != 0
		rec.NextReview, err = time.Parse(time.RFC3339Nano, nextReview)
		if err != nil {
			return nil, fmt.Errorf("parse next_review of %s: %w", rec.QuestionID, err)
		}
		out[rec.QuestionID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return out, nil
}

// SaveBatch applies a grading batch atomically: scheduling upserts, unlock
// inserts and the answer events.
func (s *Store) SaveBatch(ctx context.Context, b Batch) error {
	if len(b.Progress) == 0 && len(b.Answers) == 0 && len(b.Unlocks) == 0 {
		return nil
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.upsertProgress(ctx, tx, b.Progress); err != nil {
			return err
		}
		if err := s.insertUnlocks(ctx, tx, b.Unlocks); err != nil {
			return err
		}
		return s.appendAnswers(ctx, tx, b)
	})
}

func (s *Store) upsertProgress(ctx context.Context, tx *sql.Tx, recs []ProgressRecord) error {
	if len(recs) == 0 {
		return nil
	}
	ins := entsql.Dialect(s.dialect).
		Insert(tableProgress).
		Columns("question_id", "region_id", "interval", "next_review", "mastered")
	for _, r := range recs {
		ins.Values(r.QuestionID, r.RegionID, r.Interval, formatTime(r.NextReview), boolInt(r.Mastered))
	}
	query, args := ins.
		OnConflict(entsql.ConflictColumns("question_id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (s *Store) appendAnswers(ctx context.Context, tx *sql.Tx, b Batch) error {
	if len(b.Answers) == 0 {
		return nil
	}
	first, err := s.seq.reserve(ctx, tx, len(b.Answers))
	if err != nil {
		return err
	}
	ins := entsql.Dialect(s.dialect).
		Insert(tableAnswers).
		Columns("sequence", "batch_id", "question_id", "region_id", "submitted", "correct", "interval_after", "created_at")
	for i, a := range b.Answers {
		ins.Values(first+int64(i), b.ID, a.QuestionID, a.RegionID, a.Submitted, a.Correct, a.IntervalAfter, b.At.UTC())
	}
	query, args := ins.Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append answer events: %w", err)
	}
	return nil
}

// Wipe deletes all scheduling rows, unlocks and answer events. LLM request
// events are kept.
func (s *Store) Wipe(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{tableProgress, tableUnlocks, tableAnswers} {
			query, args := entsql.Dialect(s.dialect).Delete(table).Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// formatTime renders t as the RFC 3339 string stored in next_review.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
