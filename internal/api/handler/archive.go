package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/albapepper/scoracle-sim/internal/api/respond"
	"github.com/albapepper/scoracle-sim/internal/archive"
	"github.com/albapepper/scoracle-sim/internal/cache"
)

// ArchiveCachePrefix namespaces archive listings in the cache.
const ArchiveCachePrefix = "archive:"

// ListArchive returns recently archived matches.
// @Summary List archived matches
// @Description Returns finished matches, newest first. Cached briefly and invalidated whenever a match is archived.
// @Tags archive
// @Produce json
// @Param limit query int false "Maximum records (default 20, max 200)"
// @Success 200 {array} archive.Record
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /archive [get]
func (h *Handler) ListArchive(w http.ResponseWriter, r *http.Request) {
	limit := archive.DefaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer")
			return
		}
		limit = archive.ClampLimit(n)
	}

	cacheKey := fmt.Sprintf("%s%d", ArchiveCachePrefix, limit)
	ttl := cache.TTLArchive

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteCached(w, data, etag, ttl, true)
		return
	}

	records, err := h.archive.Recent(r.Context(), limit)
	if errors.Is(err, archive.ErrDisabled) {
		respond.WriteError(w, http.StatusNotFound, "ARCHIVE_DISABLED", "No archive driver configured")
		return
	}
	if err != nil {
		h.logger.Error("Archive query failed", "error", err)
		respond.WriteError(w, http.StatusServiceUnavailable, "ARCHIVE_UNAVAILABLE", "Archive query failed")
		return
	}
	if records == nil {
		records = []archive.Record{}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to encode archive")
		return
	}
	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteCached(w, raw, etag, ttl, false)
}
