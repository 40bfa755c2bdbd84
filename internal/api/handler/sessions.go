package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-sim/internal/api/respond"
	"github.com/albapepper/scoracle-sim/internal/cache"
	"github.com/albapepper/scoracle-sim/internal/session"
	"github.com/albapepper/scoracle-sim/internal/sim"
)

const maxBodyBytes = 16 << 10

// CreateSessionRequest overrides the configured match defaults. Omitted
// fields keep the default.
type CreateSessionRequest struct {
	Stadium     string  `json:"stadium,omitempty"`
	Sport       string  `json:"sport,omitempty"`
	HomeTeam    string  `json:"home_team,omitempty"`
	AwayTeam    string  `json:"away_team,omitempty"`
	ShowCrowd   *bool   `json:"show_crowd,omitempty"`
	ShowWeather *bool   `json:"show_weather,omitempty"`
	NightGame   *bool   `json:"night_game,omitempty"`
	Weather     string  `json:"weather,omitempty"`
	Seed        *uint64 `json:"seed,omitempty"`
}

// settings merges the request onto defaults.
func (req CreateSessionRequest) settings(defaults sim.Settings) sim.Settings {
	s := defaults
	if req.Stadium != "" {
		s.Stadium = req.Stadium
	}
	if req.Sport != "" {
		s.Sport = sim.Sport(req.Sport)
	}
	if req.HomeTeam != "" {
		s.HomeTeam = req.HomeTeam
	}
	if req.AwayTeam != "" {
		s.AwayTeam = req.AwayTeam
	}
	if req.ShowCrowd != nil {
		s.ShowCrowd = *req.ShowCrowd
	}
	if req.ShowWeather != nil {
		s.ShowWeather = *req.ShowWeather
	}
	if req.NightGame != nil {
		s.NightGame = *req.NightGame
	}
	if req.Weather != "" {
		s.Weather = sim.Weather(req.Weather)
	}
	return s
}

// BoardResponse is returned by every session read and transition.
type BoardResponse struct {
	SessionID string         `json:"session_id"`
	Seed      uint64         `json:"seed"`
	Action    session.Action `json:"action,omitempty"`
	Board     sim.Board      `json:"board"`
	Play      *sim.Play      `json:"play,omitempty"`
}

// CreateSession opens a new match session.
// @Summary Create session
// @Description Creates a match session from the configured defaults plus any overrides in the body. Supplying a seed makes every draw reproducible.
// @Tags sessions
// @Accept json
// @Produce json
// @Param body body CreateSessionRequest false "Settings overrides"
// @Success 201 {object} BoardResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /sessions [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be a JSON object", err.Error())
		return
	}

	s, err := h.sessions.Create(r.Context(), req.settings(h.cfg.Match), req.Seed)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/sessions/"+s.ID)
	respond.WriteJSONObject(w, http.StatusCreated, BoardResponse{
		SessionID: s.ID,
		Seed:      s.Seed,
		Action:    session.ActionCreate,
		Board:     s.Board(),
	})
}

// ListSessions lists live sessions.
// @Summary List sessions
// @Description Returns every live session, oldest first.
// @Tags sessions
// @Produce json
// @Success 200 {array} session.Info
// @Router /sessions [get]
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, h.sessions.List())
}

// GetSession returns the current board.
// @Summary Get board
// @Description Returns settings, state, the newest 10 events and progress. Honors If-None-Match.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} BoardResponse
// @Success 304 "Not Modified"
// @Failure 404 {object} respond.ErrorResponse
// @Router /sessions/{id} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	data, err := json.Marshal(BoardResponse{SessionID: s.ID, Seed: s.Seed, Board: s.Board()})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to encode board")
		return
	}
	etag := cache.ComputeETag(data)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteLive(w, http.StatusOK, data, etag)
}

// EndSession ends a session, archiving a started match.
// @Summary End session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} respond.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartMatch starts the match.
// @Summary Start match
// @Description Marks the match started and logs the opening event. Repeat calls log duplicate events.
// @Tags transitions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} BoardResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /sessions/{id}/start [post]
func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sessions.Start)
}

// SimulatePlay simulates one play.
// @Summary Simulate play
// @Description Draws one play from the catalog and applies score, crowd energy and player stat effects.
// @Tags transitions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} BoardResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /sessions/{id}/play [post]
func (h *Handler) SimulatePlay(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sessions.Play)
}

// AdvanceQuarter moves to the next quarter.
// @Summary Advance quarter
// @Description Moves to the next quarter, holding at quarter 4.
// @Tags transitions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} BoardResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /sessions/{id}/quarter [post]
func (h *Handler) AdvanceQuarter(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sessions.AdvanceQuarter)
}

// ResetMatch restores the defaults.
// @Summary Reset match
// @Description Restores every field to its default. A started match is archived first.
// @Tags transitions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} BoardResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /sessions/{id}/reset [post]
func (h *Handler) ResetMatch(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sessions.Reset)
}

// GetCharts returns the chart series.
// @Summary Get charts
// @Description Returns the score-by-quarter line series and per-player stat totals.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} sim.Charts
// @Failure 404 {object} respond.ErrorResponse
// @Router /sessions/{id}/charts [get]
func (h *Handler) GetCharts(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, s.Charts())
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (session.Change, error)) {
	id := chi.URLParam(r, "id")
	c, err := fn(r.Context(), id)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, BoardResponse{
		SessionID: c.SessionID,
		Seed:      c.Seed,
		Action:    c.Action,
		Board:     c.Board(),
		Play:      c.Play,
	})
}
