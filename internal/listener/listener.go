// Package listener provides a Postgres LISTEN/NOTIFY consumer for archive
// events. It holds a dedicated pgx connection (not from the pool) listening
// on the match_archived channel.
//
// Every insert into match_archive fires pg_notify from a trigger, so each
// API replica sharing the database learns about matches archived by its
// peers and can drop its cached archive listings.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/scoracle-sim/internal/db"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// ArchiveEvent is the JSON payload from pg_notify('match_archived', ...).
type ArchiveEvent struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
	Sport     string `json:"sport"`
	Timestamp int64  `json:"ts"`
}

// Handler is called for every decoded event on the listener goroutine.
type Handler func(ArchiveEvent)

// Start opens a dedicated connection and listens on the archive channel. It
// reconnects automatically on connection loss. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, handle Handler, logger *slog.Logger) {
	var backoff time.Duration

	for {
		connected, err := listenLoop(ctx, dbURL, handle, logger)
		if ctx.Err() != nil {
			logger.Info("Archive listener stopped (context cancelled)")
			return
		}

		backoff = retryDelay(backoff, connected)
		logger.Error("Archive listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return
		}
	}
}

// retryDelay returns how long to wait before the next connection attempt.
// A session that got as far as LISTEN starts over at reconnectBackoff;
// consecutive failures double the previous delay up to maxReconnect.
func retryDelay(prev time.Duration, connected bool) time.Duration {
	if connected || prev <= 0 {
		return reconnectBackoff
	}
	return min(prev*2, maxReconnect)
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled; connected reports whether LISTEN succeeded.
func listenLoop(ctx context.Context, dbURL string, handle Handler, logger *slog.Logger) (connected bool, err error) {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return false, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+db.ArchiveChannel)
	if err != nil {
		return false, fmt.Errorf("LISTEN %s: %w", db.ArchiveChannel, err)
	}
	logger.Info("Archive listener connected", "channel", db.ArchiveChannel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return true, fmt.Errorf("wait for notification: %w", err)
		}

		event, err := ParseEvent(notification.Payload)
		if err != nil {
			logger.Warn("Failed to parse archive event",
				"payload", notification.Payload, "error", err)
			continue
		}

		logger.Debug("Archive event received",
			"id", event.ID,
			"session_id", event.SessionID,
			"reason", event.Reason,
			"sport", event.Sport)

		handle(event)
	}
}

// ParseEvent decodes a notification payload.
func ParseEvent(payload string) (ArchiveEvent, error) {
	var event ArchiveEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return ArchiveEvent{}, err
	}
	if event.ID == "" {
		return ArchiveEvent{}, fmt.Errorf("archive event missing id")
	}
	return event, nil
}
