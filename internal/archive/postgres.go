package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/albapepper/scoracle-sim/internal/db"
)

// PostgresStore writes records through the prepared statements registered by
// db.New.
type PostgresStore struct {
	pool *db.Pool
}

// NewPostgresStore wraps an open pool. Close closes the pool.
func NewPostgresStore(pool *db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Save(ctx context.Context, r Record) error {
	stats, err := json.Marshal(r.PlayerStats)
	if err != nil {
		return fmt.Errorf("marshal player stats: %w", err)
	}
	_, err = s.pool.Exec(ctx, "archive_insert",
		r.ID, r.SessionID, r.Reason, r.Sport, r.Stadium, r.HomeTeam, r.AwayTeam,
		r.HomeScore, r.AwayScore, r.Quarter, r.CrowdEnergy, r.EventCount, stats, r.ArchivedAt)
	if err != nil {
		return fmt.Errorf("insert archive %s: %w", r.ID, err)
	}
	return nil
}

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.pool.Query(ctx, "archive_recent", ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r     Record
			stats []byte
		)
		if err := rows.Scan(
			&r.ID, &r.SessionID, &r.Reason, &r.Sport, &r.Stadium, &r.HomeTeam, &r.AwayTeam,
			&r.HomeScore, &r.AwayScore, &r.Quarter, &r.CrowdEnergy, &r.EventCount,
			&stats, &r.ArchivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan archive: %w", err)
		}
		if err := json.Unmarshal(stats, &r.PlayerStats); err != nil {
			return nil, fmt.Errorf("decode player stats %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Purge(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, "archive_purge", before)
	if err != nil {
		return 0, fmt.Errorf("purge archive: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.HealthCheck(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
