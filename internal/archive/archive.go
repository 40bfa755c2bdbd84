// Package archive persists the final snapshot of finished matches.
//
// A match is archived when a started session is reset, ended or evicted for
// idleness. Live session state is never persisted; only the snapshot taken at
// that moment is.
package archive

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/scoracle-sim/internal/sim"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

// Reasons a match was archived.
const (
	ReasonReset   = "reset"
	ReasonEnded   = "ended"
	ReasonExpired = "expired"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

var ErrDisabled = errors.New("archive disabled")

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Record is one archived match.
type Record struct {
	ID          uuid.UUID                 `json:"id"`
	SessionID   string                    `json:"session_id"`
	Reason      string                    `json:"reason"`
	Sport       string                    `json:"sport"`
	Stadium     string                    `json:"stadium"`
	HomeTeam    string                    `json:"home_team"`
	AwayTeam    string                    `json:"away_team"`
	HomeScore   int                       `json:"home_score"`
	AwayScore   int                       `json:"away_score"`
	Quarter     int                       `json:"quarter"`
	CrowdEnergy int                       `json:"crowd_energy"`
	EventCount  int                       `json:"event_count"`
	PlayerStats map[string]sim.PlayerLine `json:"player_stats"`
	ArchivedAt  time.Time                 `json:"archived_at"`
}

// NewRecord snapshots a match.
func NewRecord(sessionID, reason string, settings sim.Settings, st sim.MatchState, now time.Time) Record {
	return Record{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Reason:      reason,
		Sport:       string(settings.Sport),
		Stadium:     settings.Stadium,
		HomeTeam:    settings.HomeTeam,
		AwayTeam:    settings.AwayTeam,
		HomeScore:   st.HomeScore,
		AwayScore:   st.AwayScore,
		Quarter:     st.Quarter,
		CrowdEnergy: st.CrowdEnergy,
		EventCount:  len(st.EventLog),
		PlayerStats: st.Clone().PlayerStats,
		ArchivedAt:  now.UTC(),
	}
}

// Store persists archive records.
type Store interface {
	Save(ctx context.Context, r Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
	Purge(ctx context.Context, before time.Time) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// ClampLimit bounds a requested listing size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

// --------------------------------------------------------------------------
// Nop store
// --------------------------------------------------------------------------

// Nop is the store used when archiving is disabled.
type Nop struct{}

func (Nop) Save(context.Context, Record) error { return nil }
func (Nop) Recent(context.Context, int) ([]Record, error) { return nil, ErrDisabled }
func (Nop) Purge(context.Context, time.Time) (int64, error) { return 0, nil }
func (Nop) Ping(context.Context) error { return ErrDisabled }
func (Nop) Close() error { return nil }
