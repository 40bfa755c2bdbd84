// Package session owns the live matches. Each session holds one simulator
// exclusively; the manager serializes transitions per session, enforces the
// started-match precondition, fans snapshots out to watchers and archives
// finished matches.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/albapepper/scoracle-sim/internal/sim"
)

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

var (
	ErrNotFound   = errors.New("session not found")
	ErrNotStarted = errors.New("match not started")
	ErrCapacity   = errors.New("session limit reached")
)

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Action names a transition.
type Action string

const (
	ActionCreate  Action = "create"
	ActionStart   Action = "start"
	ActionPlay    Action = "play"
	ActionQuarter Action = "quarter"
	ActionReset   Action = "reset"
	ActionEnd     Action = "end"
)

// watcherBuffer is the per-watcher backlog before snapshots are dropped.
const watcherBuffer = 16

// Change describes one applied transition and the state it produced.
type Change struct {
	SessionID string         `json:"session_id"`
	Seed      uint64         `json:"seed"`
	Action    Action         `json:"action"`
	Settings  sim.Settings   `json:"settings"`
	State     sim.MatchState `json:"state"`
	Play      *sim.Play      `json:"play,omitempty"`
	At        time.Time      `json:"at"`
}

// Board renders the change as the board view.
func (c Change) Board() sim.Board {
	return sim.NewBoard(c.Settings, c.State)
}

// Publisher receives every applied change. Implementations must not block
// for long; publish errors are logged and never fail a transition.
type Publisher interface {
	Publish(ctx context.Context, c Change) error
}

// Info is the listing view of a session.
type Info struct {
	ID         string    `json:"id"`
	Seed       uint64    `json:"seed"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	Started    bool      `json:"started"`
	HomeScore  int       `json:"home_score"`
	AwayScore  int       `json:"away_score"`
	Quarter    int       `json:"quarter"`
	Watchers   int       `json:"watchers"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// Session is one user's match. Reads, transitions and watchers all count as
// activity; a session with a connected watcher is never idle.
type Session struct {
	ID        string
	Seed      uint64
	CreatedAt time.Time

	mu         sync.Mutex
	now        func() time.Time
	sim        *sim.Simulator
	lastActive time.Time
	watchers   map[chan Change]struct{}
	closed     bool
}

func newSession(id string, seed uint64, settings sim.Settings, now func() time.Time) *Session {
	created := now()
	return &Session{
		ID:         id,
		Seed:       seed,
		CreatedAt:  created,
		now:        now,
		sim:        sim.New(settings, sim.NewSource(seed)),
		lastActive: created,
		watchers:   make(map[chan Change]struct{}),
	}
}

// Snapshot returns the current change-shaped view of the session and marks
// it active.
func (s *Session) Snapshot() Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.lastActive = now
	return s.snapshotLocked("", now)
}

// Board returns the current board view.
func (s *Session) Board() sim.Board {
	return s.Snapshot().Board()
}

// Charts returns both chart series for the current state.
func (s *Session) Charts() sim.Charts {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = s.now()
	return sim.NewCharts(s.sim.State())
}

// Info returns the listing view.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.sim.State()
	settings := s.sim.Settings()
	return Info{
		ID:         s.ID,
		Seed:       s.Seed,
		HomeTeam:   settings.HomeTeam,
		AwayTeam:   settings.AwayTeam,
		Started:    st.Started,
		HomeScore:  st.HomeScore,
		AwayScore:  st.AwayScore,
		Quarter:    st.Quarter,
		Watchers:   len(s.watchers),
		CreatedAt:  s.CreatedAt,
		LastActive: s.lastActive,
	}
}

// Subscribe registers a watcher. The returned channel receives a Change after
// every transition and is closed when the session ends or cancel is called.
// Slow watchers miss snapshots rather than stall transitions.
func (s *Session) Subscribe() (<-chan Change, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Change, watcherBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	s.watchers[ch] = struct{}{}
	s.lastActive = s.now()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			// Disconnecting restarts the idle window.
			s.lastActive = s.now()
			if _, ok := s.watchers[ch]; ok {
				delete(s.watchers, ch)
				close(ch)
			}
		})
	}
	return ch, cancel
}

func (s *Session) snapshotLocked(action Action, at time.Time) Change {
	return Change{
		SessionID: s.ID,
		Seed:      s.Seed,
		Action:    action,
		Settings:  s.sim.Settings(),
		State:     s.sim.State(),
		At:        at,
	}
}

// idleSinceLocked reports whether the session has no watchers and no
// activity since cutoff.
func (s *Session) idleSinceLocked(cutoff time.Time) bool {
	return len(s.watchers) == 0 && s.lastActive.Before(cutoff)
}

func (s *Session) broadcastLocked(c Change) {
	for ch := range s.watchers {
		select {
		case ch <- c:
		default:
		}
	}
}

func (s *Session) closeLocked() {
	s.closed = true
	for ch := range s.watchers {
		close(ch)
		delete(s.watchers, ch)
	}
}
