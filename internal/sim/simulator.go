package sim

import (
	"fmt"
	"math/rand/v2"
)

// Crowd energy moves by a uniform draw from [crowdDeltaMin, crowdDeltaMax].
const (
	crowdDeltaMin = -5
	crowdDeltaMax = 14

	statAmountMax = 3
)

// Source supplies uniform draws in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a seeded PCG source. Equal seeds replay equal matches.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Play records the outcome of one SimulatePlay call.
type Play struct {
	Text       string `json:"text"`
	Team       string `json:"team"`
	Side       string `json:"side"`
	Points     int    `json:"points"`
	CrowdDelta int    `json:"crowd_delta"`
	Player     string `json:"player"`
	Stat       Stat   `json:"stat"`
	StatAmount int    `json:"stat_amount"`
}

// Simulator applies transitions to one MatchState.
type Simulator struct {
	settings Settings
	rng      Source
	state    MatchState
}

// New creates a simulator in the NotStarted state. A nil rng gets a randomly
// seeded source.
func New(settings Settings, rng Source) *Simulator {
	if rng == nil {
		rng = NewSource(rand.Uint64())
	}
	return &Simulator{
		settings: settings.WithDefaults(),
		rng:      rng,
		state:    NewMatchState(),
	}
}

// Settings returns the match settings.
func (s *Simulator) Settings() Settings {
	return s.settings
}

// State returns a deep copy of the current match state.
func (s *Simulator) State() MatchState {
	return s.state.Clone()
}

// Started reports whether the match is in progress.
func (s *Simulator) Started() bool {
	return s.state.Started
}

// Start moves the match to InProgress and logs the opening event. Calling it
// again logs a duplicate entry.
func (s *Simulator) Start() {
	s.state.Started = true
	s.state.prepend(fmt.Sprintf("Match started: %s vs %s at %s",
		s.settings.HomeTeam, s.settings.AwayTeam, s.settings.Stadium))
}

// SimulatePlay draws one catalog event and applies its score, crowd and stat
// effects. The caller must only invoke it while the match is started.
func (s *Simulator) SimulatePlay() Play {
	ev := Catalog[s.rng.IntN(len(Catalog))]

	side := ev.Side
	if side == SideEither {
		if s.rng.IntN(2) == 0 {
			side = SideHome
		} else {
			side = SideAway
		}
	}
	team := s.teamName(side)

	play := Play{
		Text:   ev.Render(team),
		Team:   team,
		Side:   side.String(),
		Points: ev.Points,
	}
	s.state.prepend(play.Text)

	switch side {
	case SideHome:
		s.state.HomeScore += ev.Points
	case SideAway:
		s.state.AwayScore += ev.Points
	}

	play.CrowdDelta = crowdDeltaMin + s.rng.IntN(crowdDeltaMax-crowdDeltaMin+1)
	s.state.CrowdEnergy = clamp(s.state.CrowdEnergy+play.CrowdDelta, MinCrowdEnergy, MaxCrowdEnergy)

	play.Player = Roster[s.rng.IntN(len(Roster))]
	play.Stat = Stats[s.rng.IntN(len(Stats))]
	play.StatAmount = 1 + s.rng.IntN(statAmountMax)

	line := s.state.PlayerStats[play.Player]
	line.add(play.Stat, play.StatAmount)
	s.state.PlayerStats[play.Player] = line

	return play
}

// AdvanceQuarter moves to the next quarter, holding at the last one, and logs
// the new quarter. The caller must only invoke it while the match is started.
func (s *Simulator) AdvanceQuarter() {
	s.state.Quarter = min(LastQuarter, s.state.Quarter+1)
	s.state.prepend(fmt.Sprintf("Quarter %d begins", s.state.Quarter))
}

// Reset returns every field to its default and the match to NotStarted.
func (s *Simulator) Reset() {
	s.state = NewMatchState()
}

func (s *Simulator) teamName(side Side) string {
	if side == SideAway {
		return s.settings.AwayTeam
	}
	return s.settings.HomeTeam
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
