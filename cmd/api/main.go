// Command api is the Scoracle Sim API server.
//
// Usage:
//
//	scoracle-sim-api
//	API_PORT=8080 ARCHIVE_DRIVER=sqlite scoracle-sim-api

// @title Scoracle Sim API
// @version 1.0.0
// @description Scoreboard simulator serving live match sessions, play-by-play transitions, chart series and an archive of finished matches.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Scoracle
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/scoracle-sim/internal/api"
	"github.com/albapepper/scoracle-sim/internal/api/handler"
	"github.com/albapepper/scoracle-sim/internal/archive"
	"github.com/albapepper/scoracle-sim/internal/cache"
	"github.com/albapepper/scoracle-sim/internal/config"
	"github.com/albapepper/scoracle-sim/internal/listener"
	"github.com/albapepper/scoracle-sim/internal/maintenance"
	"github.com/albapepper/scoracle-sim/internal/publish"
	"github.com/albapepper/scoracle-sim/internal/session"

	_ "github.com/albapepper/scoracle-sim/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	var logHandler slog.Handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	if cfg.IsProduction() {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Open archive store
	logger.Info("Opening archive...", "driver", cfg.ArchiveDriver)
	store, err := archive.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open archive", "driver", cfg.ArchiveDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	if cfg.ArchiveEnabled() {
		logger.Info("Archive ready",
			"driver", cfg.ArchiveDriver,
			"retention", cfg.ArchiveRetention)
	}

	// Event stream (optional)
	var publisher session.Publisher
	if cfg.RedisURL != "" {
		sp, err := publish.Dial(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("Event stream disabled", "error", err)
		} else {
			defer sp.Close()
			publisher = sp
			logger.Info("Event stream connected")
		}
	} else {
		logger.Info("Event stream disabled (no REDIS_URL)")
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Session manager
	sessions := session.NewManager(session.Options{
		Archive:     store,
		Publisher:   publisher,
		MaxSessions: cfg.MaxSessions,
		Logger:      logger,
		OnArchived: func(archive.Record) {
			appCache.InvalidatePrefix(handler.ArchiveCachePrefix)
		},
	})

	// Start LISTEN/NOTIFY consumer so matches archived by other replicas
	// invalidate this replica's archive listings
	if cfg.ArchiveDriver == config.ArchivePostgres {
		go listener.Start(ctx, cfg.DatabaseURL, func(listener.ArchiveEvent) {
			appCache.InvalidatePrefix(handler.ArchiveCachePrefix)
		}, logger)
	}

	// Start maintenance tickers (idle sweep, archive retention)
	go maintenance.Start(ctx, sessions, store, maintenance.FromConfig(cfg), logger)

	// Create router
	router := api.NewRouter(sessions, store, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Scoracle Sim API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}

	// Archive whatever is still live.
	if n := sessions.CloseAll(shutdownCtx); n > 0 {
		logger.Info("Closed live sessions", "count", n)
	}
	logger.Info("Server stopped")
}
