package store

import (
	"context"
	"fmt"
	"sort"

	entsql "entgo.io/ent/dialect/sql"
)

// AnswerStats aggregates answer events per region, sorted by region id.
func (s *Store) AnswerStats(ctx context.Context) ([]RegionStat, error) {
	b := entsql.Dialect(s.dialect)
	query, args := b.Select("region_id", "correct", entsql.As(entsql.Count("*"), "n")).
		From(b.Table(tableAnswers)).
		GroupBy("region_id", "correct").
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer stats: %w", err)
	}
	defer rows.Close()

	byRegion := make(map[string]*RegionStat)
	for rows.Next() {
		var (
			regionID string
			correct  bool
			n        int
		)
		if err := rows.Scan(&regionID, &correct, &n); err != nil {
			return nil, fmt.Errorf("scan answer stats: %w", err)
		}
		st, ok := byRegion[regionID]
		if !ok {
			st = &RegionStat{RegionID: regionID}
			byRegion[regionID] = st
		}
		st.Attempts += n
		if correct {
			st.Correct += n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer stats: %w", err)
	}

	out := make([]RegionStat, 0, len(byRegion))
	for _, st := range byRegion {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegionID < out[j].RegionID })
	return out, nil
}

// CountAnswers returns the number of recorded answer events.
func (s *Store) CountAnswers(ctx context.Context) (int, error) {
	b := entsql.Dialect(s.dialect)
	query, args := b.Select(entsql.Count("*")).From(b.Table(tableAnswers)).Query()
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count answers: %w", err)
	}
	return n, nil
}
