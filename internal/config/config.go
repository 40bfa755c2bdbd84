// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/simctl.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/scoracle-sim/internal/sim"
)

// --------------------------------------------------------------------------
// Archive drivers
// --------------------------------------------------------------------------

const (
	ArchiveNone     = "none"
	ArchivePostgres = "postgres"
	ArchiveSQLite   = "sqlite"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Sessions
	SessionIdleTTL       time.Duration
	SessionSweepInterval time.Duration
	MaxSessions          int

	// Match defaults applied to new sessions
	Match sim.Settings

	// Archive
	ArchiveDriver    string
	DatabaseURL      string
	SQLitePath       string
	DBPoolMinConns   int
	DBPoolMaxConns   int
	DBPoolMaxLife    time.Duration
	ArchiveRetention time.Duration

	// Event stream
	RedisURL string

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	defaults := sim.DefaultSettings()
	match := sim.Settings{
		Stadium:     envOr("MATCH_STADIUM", defaults.Stadium),
		Sport:       sim.Sport(strings.ToLower(envOr("MATCH_SPORT", string(defaults.Sport)))),
		HomeTeam:    envOr("MATCH_HOME_TEAM", defaults.HomeTeam),
		AwayTeam:    envOr("MATCH_AWAY_TEAM", defaults.AwayTeam),
		ShowCrowd:   envBool("MATCH_SHOW_CROWD", defaults.ShowCrowd),
		ShowWeather: envBool("MATCH_SHOW_WEATHER", defaults.ShowWeather),
		NightGame:   envBool("MATCH_NIGHT_GAME", defaults.NightGame),
		Weather:     sim.Weather(strings.ToLower(envOr("MATCH_WEATHER", string(defaults.Weather)))),
	}
	if err := match.Validate(); err != nil {
		return nil, fmt.Errorf("match defaults: %w", err)
	}

	cfg := &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8501",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 300),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		SessionIdleTTL:       time.Duration(envInt("SESSION_IDLE_MINUTES", 60)) * time.Minute,
		SessionSweepInterval: time.Duration(envInt("SESSION_SWEEP_SECONDS", 60)) * time.Second,
		MaxSessions:          envInt("MAX_SESSIONS", 1000),

		Match: match,

		ArchiveDriver:    strings.ToLower(envOr("ARCHIVE_DRIVER", ArchiveNone)),
		DatabaseURL:      envOr("DATABASE_URL", ""),
		SQLitePath:       envOr("SQLITE_PATH", "./scoracle_sim.db"),
		DBPoolMinConns:   envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns:   envInt("DB_POOL_MAX_CONNS", 5),
		DBPoolMaxLife:    time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,
		ArchiveRetention: time.Duration(envInt("ARCHIVE_RETENTION_DAYS", 30)) * 24 * time.Hour,

		RedisURL: envOr("REDIS_URL", ""),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}

	switch cfg.ArchiveDriver {
	case ArchiveNone, ArchiveSQLite:
	case ArchivePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set when ARCHIVE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown ARCHIVE_DRIVER %q (want none, postgres or sqlite)", cfg.ArchiveDriver)
	}

	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ArchiveEnabled reports whether finished matches are persisted.
func (c *Config) ArchiveEnabled() bool {
	return c.ArchiveDriver != ArchiveNone
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
