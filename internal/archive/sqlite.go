package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" driver

	"github.com/google/uuid"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS match_archive (
	id           TEXT PRIMARY KEY,
	session_id   TEXT NOT NULL,
	reason       TEXT NOT NULL,
	sport        TEXT NOT NULL,
	stadium      TEXT NOT NULL,
	home_team    TEXT NOT NULL,
	away_team    TEXT NOT NULL,
	home_score   INTEGER NOT NULL,
	away_score   INTEGER NOT NULL,
	quarter      INTEGER NOT NULL,
	crowd_energy INTEGER NOT NULL,
	event_count  INTEGER NOT NULL,
	player_stats TEXT NOT NULL,
	archived_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS match_archive_archived_at_idx ON match_archive (archived_at DESC);
`

// SQLiteStore keeps the archive in a local SQLite file. archived_at is stored
// as unix milliseconds.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the archive database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One writer avoids SQLITE_BUSY under concurrent resets.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, r Record) error {
	stats, err := json.Marshal(r.PlayerStats)
	if err != nil {
		return fmt.Errorf("marshal player stats: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO match_archive
		(id, session_id, reason, sport, stadium, home_team, away_team,
		 home_score, away_score, quarter, crowd_energy, event_count, player_stats, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.SessionID, r.Reason, r.Sport, r.Stadium, r.HomeTeam, r.AwayTeam,
		r.HomeScore, r.AwayScore, r.Quarter, r.CrowdEnergy, r.EventCount,
		string(stats), r.ArchivedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert archive %s: %w", r.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, session_id, reason, sport, stadium, home_team, away_team,
		home_score, away_score, quarter, crowd_energy, event_count, player_stats, archived_at
		FROM match_archive ORDER BY archived_at DESC, rowid DESC LIMIT ?`, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r          Record
			id, stats  string
			archivedMs int64
		)
		if err := rows.Scan(
			&id, &r.SessionID, &r.Reason, &r.Sport, &r.Stadium, &r.HomeTeam, &r.AwayTeam,
			&r.HomeScore, &r.AwayScore, &r.Quarter, &r.CrowdEnergy, &r.EventCount,
			&stats, &archivedMs,
		); err != nil {
			return nil, fmt.Errorf("scan archive: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse archive id %q: %w", id, err)
		}
		if err := json.Unmarshal([]byte(stats), &r.PlayerStats); err != nil {
			return nil, fmt.Errorf("decode player stats %s: %w", id, err)
		}
		r.ArchivedAt = time.UnixMilli(archivedMs).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Purge(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM match_archive WHERE archived_at < ?", before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge archive: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
