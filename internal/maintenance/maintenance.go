// Package maintenance runs periodic background tasks as Go tickers.
// All scheduled work is driven from the API process since it already owns
// the live sessions.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/albapepper/scoracle-sim/internal/archive"
	"github.com/albapepper/scoracle-sim/internal/config"
)

// Sweeper ends idle sessions. Implemented by *session.Manager.
type Sweeper interface {
	Sweep(ctx context.Context, idle time.Duration) int
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	SweepInterval time.Duration // Idle session expiry
	IdleTTL       time.Duration
	PurgeInterval time.Duration // Archive retention
	Retention     time.Duration
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		SweepInterval: 1 * time.Minute,
		IdleTTL:       1 * time.Hour,
		PurgeInterval: 6 * time.Hour,
		Retention:     30 * 24 * time.Hour,
	}
}

// FromConfig derives intervals from the application config. Purging is
// disabled without an archive or with a non-positive retention.
func FromConfig(cfg *config.Config) Config {
	c := DefaultConfig()
	c.SweepInterval = cfg.SessionSweepInterval
	c.IdleTTL = cfg.SessionIdleTTL
	c.Retention = cfg.ArchiveRetention
	if !cfg.ArchiveEnabled() || cfg.ArchiveRetention <= 0 {
		c.PurgeInterval = 0
	}
	return c
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, sessions Sweeper, store archive.Store, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"sweep", cfg.SweepInterval,
		"idle_ttl", cfg.IdleTTL,
		"purge", cfg.PurgeInterval,
		"retention", cfg.Retention)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Sweep: end sessions nobody has touched within the idle TTL
	if cfg.SweepInterval > 0 && cfg.IdleTTL > 0 {
		t := time.NewTicker(cfg.SweepInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, "sweep", logger, func() { sweep(ctx, sessions, cfg.IdleTTL, logger) })
	}

	// Purge: drop archived matches past retention
	if cfg.PurgeInterval > 0 && store != nil {
		t := time.NewTicker(cfg.PurgeInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, "purge", logger, func() { purge(ctx, store, cfg.Retention, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, name string, logger *slog.Logger, fn func()) {
	for {
		select {
		case <-ch:
			start := time.Now()
			fn()
			logger.Debug("Maintenance task ran", "task", name, "duration", time.Since(start))
		case <-ctx.Done():
			logger.Debug("Maintenance task stopped", "task", name)
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

func sweep(ctx context.Context, sessions Sweeper, idle time.Duration, logger *slog.Logger) {
	if n := sessions.Sweep(ctx, idle); n > 0 {
		logger.Info("Sweep: expired idle sessions", "count", n, "idle_ttl", idle)
	}
}

// purge removes archived matches older than retention.
func purge(ctx context.Context, store archive.Store, retention time.Duration, logger *slog.Logger) {
	before := time.Now().UTC().Add(-retention)
	n, err := store.Purge(ctx, before)
	if err != nil {
		logger.Warn("Purge: failed to remove old archive rows", "error", err)
		return
	}
	if n > 0 {
		logger.Info("Purge: removed old archive rows", "count", n, "before", before.Format(time.RFC3339))
	}
}
