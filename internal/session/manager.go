package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/scoracle-sim/internal/archive"
	"github.com/albapepper/scoracle-sim/internal/sim"
)

// Options configures a Manager. Zero values get working defaults.
type Options struct {
	Archive     archive.Store
	Publisher   Publisher
	MaxSessions int // 0 = unlimited
	Logger      *slog.Logger
	Now         func() time.Time

	// OnArchived runs after a record is saved.
	OnArchived func(archive.Record)
}

// Manager holds live sessions by id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	archive     archive.Store
	publisher   Publisher
	maxSessions int
	logger      *slog.Logger
	now         func() time.Time
	onArchived  func(archive.Record)
}

// NewManager creates an empty manager.
func NewManager(opts Options) *Manager {
	m := &Manager{
		sessions:    make(map[string]*Session),
		archive:     opts.Archive,
		publisher:   opts.Publisher,
		maxSessions: opts.MaxSessions,
		logger:      opts.Logger,
		now:         opts.Now,
		onArchived:  opts.OnArchived,
	}
	if m.archive == nil {
		m.archive = archive.Nop{}
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.now == nil {
		m.now = func() time.Time { return time.Now().UTC() }
	}
	return m
}

// Create opens a new session. A nil seed picks a random one; the seed used is
// recorded on the session so the match can be replayed.
func (m *Manager) Create(ctx context.Context, settings sim.Settings, seed *uint64) (*Session, error) {
	settings = settings.WithDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	matchSeed := rand.Uint64()
	if seed != nil {
		matchSeed = *seed
	}

	m.mu.Lock()
	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		m.mu.Unlock()
		return nil, ErrCapacity
	}
	sess := newSession(uuid.NewString(), matchSeed, settings, m.now)
	m.sessions[sess.ID] = sess
	total := len(m.sessions)
	m.mu.Unlock()

	m.logger.Info("Session created",
		"session_id", sess.ID, "seed", matchSeed,
		"home", settings.HomeTeam, "away", settings.AwayTeam,
		"sport", settings.Sport, "sessions", total)

	c := sess.Snapshot()
	c.Action = ActionCreate
	m.publish(ctx, c)
	return sess, nil
}

// Get returns a live session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// List returns every live session, oldest first.
func (m *Manager) List() []Info {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	out := make([]Info, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Info())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// --------------------------------------------------------------------------
// Transitions
// --------------------------------------------------------------------------

// Start begins the match.
func (m *Manager) Start(ctx context.Context, id string) (Change, error) {
	return m.apply(ctx, id, ActionStart, func(s *sim.Simulator) (*sim.Play, error) {
		s.Start()
		return nil, nil
	})
}

// Play simulates one play. Fails with ErrNotStarted before Start.
func (m *Manager) Play(ctx context.Context, id string) (Change, error) {
	return m.apply(ctx, id, ActionPlay, func(s *sim.Simulator) (*sim.Play, error) {
		if !s.Started() {
			return nil, ErrNotStarted
		}
		play := s.SimulatePlay()
		return &play, nil
	})
}

// AdvanceQuarter moves to the next quarter. Fails with ErrNotStarted before
// Start.
func (m *Manager) AdvanceQuarter(ctx context.Context, id string) (Change, error) {
	return m.apply(ctx, id, ActionQuarter, func(s *sim.Simulator) (*sim.Play, error) {
		if !s.Started() {
			return nil, ErrNotStarted
		}
		s.AdvanceQuarter()
		return nil, nil
	})
}

// Reset restores the defaults. A started match is archived first.
func (m *Manager) Reset(ctx context.Context, id string) (Change, error) {
	var final *archive.Record
	c, err := m.apply(ctx, id, ActionReset, func(s *sim.Simulator) (*sim.Play, error) {
		if s.Started() {
			r := archive.NewRecord(id, archive.ReasonReset, s.Settings(), s.State(), m.now())
			final = &r
		}
		s.Reset()
		return nil, nil
	})
	if err != nil {
		return Change{}, err
	}
	if final != nil {
		m.save(ctx, *final)
	}
	return c, nil
}

// End removes the session, archiving a started match and closing watchers.
func (m *Manager) End(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	m.close(ctx, s, archive.ReasonEnded, ActionEnd)
	m.logger.Info("Session ended", "session_id", id)
	return nil
}

// Sweep ends every unwatched session with no reads or transitions for
// longer than idle. Returns how many were removed.
func (m *Manager) Sweep(ctx context.Context, idle time.Duration) int {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		s.mu.Lock()
		stale := s.idleSinceLocked(cutoff)
		s.mu.Unlock()
		if stale {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		m.close(ctx, s, archive.ReasonExpired, ActionEnd)
	}
	return len(expired)
}

// CloseAll ends every live session, archiving started matches as expired.
// Used at shutdown.
func (m *Manager) CloseAll(ctx context.Context) int {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		all = append(all, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range all {
		m.close(ctx, s, archive.ReasonExpired, ActionEnd)
	}
	return len(all)
}

// apply runs fn under the session lock and fans out the resulting change.
func (m *Manager) apply(ctx context.Context, id string, action Action, fn func(*sim.Simulator) (*sim.Play, error)) (Change, error) {
	s, err := m.Get(id)
	if err != nil {
		return Change{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Change{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	play, err := fn(s.sim)
	if err != nil {
		s.mu.Unlock()
		return Change{}, err
	}
	now := m.now()
	s.lastActive = now
	c := s.snapshotLocked(action, now)
	c.Play = play
	s.broadcastLocked(c)
	s.mu.Unlock()

	m.publish(ctx, c)
	return c, nil
}

func (m *Manager) close(ctx context.Context, s *Session, reason string, action Action) {
	s.mu.Lock()
	var final *archive.Record
	if s.sim.Started() {
		r := archive.NewRecord(s.ID, reason, s.sim.Settings(), s.sim.State(), m.now())
		final = &r
	}
	c := s.snapshotLocked(action, m.now())
	s.closeLocked()
	s.mu.Unlock()

	if final != nil {
		m.save(ctx, *final)
	}
	m.publish(ctx, c)
}

func (m *Manager) save(ctx context.Context, r archive.Record) {
	if _, disabled := m.archive.(archive.Nop); disabled {
		return
	}
	if err := m.archive.Save(ctx, r); err != nil {
		m.logger.Warn("Failed to archive match",
			"session_id", r.SessionID, "reason", r.Reason, "error", err)
		return
	}
	m.logger.Info("Match archived",
		"session_id", r.SessionID, "reason", r.Reason,
		"score", fmt.Sprintf("%d-%d", r.HomeScore, r.AwayScore))
	if m.onArchived != nil {
		m.onArchived(r)
	}
}

func (m *Manager) publish(ctx context.Context, c Change) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, c); err != nil {
		m.logger.Warn("Failed to publish change",
			"session_id", c.SessionID, "action", c.Action, "error", err)
	}
}
