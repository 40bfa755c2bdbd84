// Package handler provides HTTP handlers for all API endpoints.
// Handlers call the session manager directly with no service layer. Every
// transition responds with the full board so clients re-render from one
// payload.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/scoracle-sim/internal/api/respond"
	"github.com/albapepper/scoracle-sim/internal/archive"
	"github.com/albapepper/scoracle-sim/internal/cache"
	"github.com/albapepper/scoracle-sim/internal/config"
	"github.com/albapepper/scoracle-sim/internal/session"
	"github.com/albapepper/scoracle-sim/internal/sim"
)

// Version is reported at / and in the swagger docs.
const Version = "1.0.0"

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	sessions *session.Manager
	archive  archive.Store
	cache    *cache.Cache
	cfg      *config.Config
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(sessions *session.Manager, store archive.Store, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	if store == nil {
		store = archive.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		sessions: sessions,
		archive:  store,
		cache:    c,
		cfg:      cfg,
		logger:   logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Scoracle Sim API",
		"version": Version,
		"status":  "running",
		"docs":    "/docs",
		"archive": h.cfg.ArchiveDriver,
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status, live session count and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"sessions":  h.sessions.Len(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckArchive verifies archive connectivity.
// @Summary Archive health check
// @Description Verifies the archive store is reachable. Reports "disabled" when no archive driver is configured.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/archive [get]
func (h *Handler) HealthCheckArchive(w http.ResponseWriter, r *http.Request) {
	err := h.archive.Ping(r.Context())
	switch {
	case errors.Is(err, archive.ErrDisabled):
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"archive":   "disabled",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	case err != nil:
		h.logger.Warn("Archive health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"archive":   "disconnected",
			"error":     "Archive connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	default:
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"archive":   "connected",
			"driver":    h.cfg.ArchiveDriver,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// OptionsResponse lists the selectable settings and their defaults.
type OptionsResponse struct {
	Sports   []sim.Sport   `json:"sports"`
	Weathers []sim.Weather `json:"weathers"`
	Roster   []string      `json:"roster"`
	Defaults sim.Settings  `json:"defaults"`
}

// GetOptions returns the enumerations used to build a match.
// @Summary Match options
// @Description Returns the selectable sports and weather conditions, the fixed roster and the configured default settings.
// @Tags matches
// @Produce json
// @Success 200 {object} OptionsResponse
// @Router /options [get]
func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	cacheKey := "options"
	ttl := cache.TTLOptions

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteCached(w, data, etag, ttl, true)
		return
	}

	data, err := json.Marshal(OptionsResponse{
		Sports:   sim.Sports,
		Weathers: sim.Weathers,
		Roster:   sim.Roster,
		Defaults: h.cfg.Match,
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to encode options")
		return
	}
	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteCached(w, data, etag, ttl, false)
}

// writeSessionError maps session and settings errors onto the error envelope.
func (h *Handler) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found")
	case errors.Is(err, session.ErrNotStarted):
		respond.WriteError(w, http.StatusConflict, "MATCH_NOT_STARTED", "Start the match first")
	case errors.Is(err, session.ErrCapacity):
		respond.WriteError(w, http.StatusServiceUnavailable, "SESSION_LIMIT", "Too many live sessions")
	case errors.Is(err, sim.ErrUnknownSport), errors.Is(err, sim.ErrUnknownWeather):
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_SETTINGS", "Invalid match settings", err.Error())
	default:
		h.logger.Error("Unhandled session error", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
