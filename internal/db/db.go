// Package db provides a pgxpool-based connection pool with prepared statement
// registration, schema bootstrap and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/scoracle-sim/internal/config"
)

// Schema creates the archive table. Safe to run on every start.
const Schema = `
CREATE TABLE IF NOT EXISTS match_archive (
	id           UUID PRIMARY KEY,
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
	player_stats JSONB NOT NULL,
	archived_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS match_archive_archived_at_idx ON match_archive (archived_at DESC);

CREATE OR REPLACE FUNCTION notify_match_archived() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('` + ArchiveChannel + `', json_build_object(
		'id', NEW.id,
		'session_id', NEW.session_id,
		'reason', NEW.reason,
		'sport', NEW.sport,
		'ts', extract(epoch FROM NEW.archived_at)::bigint
	)::text);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS match_archived_notify ON match_archive;
CREATE TRIGGER match_archived_notify
	AFTER INSERT ON match_archive
	FOR EACH ROW EXECUTE FUNCTION notify_match_archived();
`

// ArchiveChannel is the NOTIFY channel fired for every archived match.
const ArchiveChannel = "match_archived"

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New applies the archive schema and creates a validated connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Statements reference match_archive, so the table must exist first.
	if err := applySchema(ctx, poolCfg.ConnConfig); err != nil {
		return nil, err
	}

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

func applySchema(ctx context.Context, connCfg *pgx.ConnConfig) error {
	conn, err := pgx.ConnectConfig(ctx, connCfg.Copy())
	if err != nil {
		return fmt.Errorf("connect for schema: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the archive uses.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Archive
		"archive_insert": `INSERT INTO match_archive
			(id, session_id, reason, sport, stadium, home_team, away_team,
			 home_score, away_score, quarter, crowd_energy, event_count, player_stats, archived_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		"archive_recent": `SELECT id, session_id, reason, sport, stadium, home_team, away_team,
			home_score, away_score, quarter, crowd_energy, event_count, player_stats, archived_at
			FROM match_archive ORDER BY archived_at DESC LIMIT $1`,
		"archive_purge": "DELETE FROM match_archive WHERE archived_at < $1",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
