package handler

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/albapepper/scoracle-sim/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Watchers only send control frames.
	maxMessageSize = 512
)

// checkOrigin accepts same-host requests and any configured CORS origin.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if slices.Contains(h.cfg.CORSAllowOrigins, "*") || slices.Contains(h.cfg.CORSAllowOrigins, origin) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// WatchSession streams the board after every transition.
// @Summary Watch session
// @Description Upgrades to a websocket. Sends the current board immediately, then one BoardResponse per transition. The socket closes when the session ends.
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 101 "Switching Protocols"
// @Failure 404 {object} respond.ErrorResponse
// @Router /sessions/{id}/ws [get]
func (h *Handler) WatchSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.Debug("Websocket upgrade failed", "session_id", s.ID, "error", err)
		return
	}

	changes, cancel := s.Subscribe()
	h.logger.Debug("Watcher connected", "session_id", s.ID, "remote", r.RemoteAddr)

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(conn, s, changes, done)

	cancel()
	conn.Close()
	h.logger.Debug("Watcher disconnected", "session_id", s.ID)
}

// readPump drains control frames so pongs are processed. Closes done when
// the peer goes away.
func (h *Handler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Debug("Watcher closed unexpectedly", "error", err)
			}
			return
		}
	}
}

func (h *Handler) writePump(conn *websocket.Conn, s *session.Session, changes <-chan session.Change, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(BoardResponse{SessionID: s.ID, Seed: s.Seed, Board: s.Board()}); err != nil {
		return
	}

	for {
		select {
		case c, ok := <-changes:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Session ended.
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
				return
			}
			msg := BoardResponse{
				SessionID: c.SessionID,
				Seed:      c.Seed,
				Action:    c.Action,
				Board:     c.Board(),
				Play:      c.Play,
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}
