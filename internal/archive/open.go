package archive

import (
	"context"
	"fmt"

	"github.com/albapepper/scoracle-sim/internal/config"
	"github.com/albapepper/scoracle-sim/internal/db"
)

// Open returns the store selected by cfg.ArchiveDriver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.ArchiveDriver {
	case config.ArchivePostgres:
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		return NewPostgresStore(pool), nil
	case config.ArchiveSQLite:
		store, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return Nop{}, nil
	}
}
