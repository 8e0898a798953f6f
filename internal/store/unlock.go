package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// LoadUnlocks returns the explicitly unlocked regions keyed by region id.
func (s *Store) LoadUnlocks(ctx context.Context) (map[string]UnlockRecord, error) {
	b := entsql.Dialect(s.dialect)
	query, args := b.Select("region_id", "source").
		From(b.Table(tableUnlocks)).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query unlocks: %w", err)
	}
	defer rows.Close()

	out := make(map[string]UnlockRecord)
	for rows.Next() {
		var rec UnlockRecord
		if err := rows.Scan(&rec.RegionID, &rec.Source); err != nil {
			return nil, fmt.Errorf("scan unlock: %w", err)
		}
		out[rec.RegionID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unlocks: %w", err)
	}
	return out, nil
}

// insertUnlocks records explicit unlocks. A region already recorded keeps
// its original row.
func (s *Store) insertUnlocks(ctx context.Context, tx *sql.Tx, recs []UnlockRecord) error {
	if len(recs) == 0 {
		return nil
	}
	ins := entsql.Dialect(s.dialect).
		Insert(tableUnlocks).
		Columns("region_id", "unlocked_at", "source")
	for _, r := range recs {
		ins.Values(r.RegionID, r.UnlockedAt.UTC(), r.Source)
	}
	query, args := ins.
		OnConflict(entsql.ConflictColumns("region_id"), entsql.DoNothing()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert unlocks: %w", err)
	}
	return nil
}
