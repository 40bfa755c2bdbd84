// Package sim holds the scoreboard simulator: a single match record mutated by
// four discrete transitions (start, simulate play, advance quarter, reset).
//
// The simulator is not safe for concurrent use. Callers own one Simulator per
// session and serialize access to it.
package sim

import (
	"errors"
	"fmt"
	"slices"
)

// --------------------------------------------------------------------------
// Match defaults
// --------------------------------------------------------------------------

const (
	FirstQuarter   = 1
	LastQuarter    = 4
	MinCrowdEnergy = 0
	MaxCrowdEnergy = 100

	defaultCrowdEnergy = 50
)

// Roster is the fixed set of tracked players, in display order.
var Roster = []string{"Marcus Reed", "Devin Cole", "Tyler Brooks"}

// --------------------------------------------------------------------------
// Settings
// --------------------------------------------------------------------------

type Sport string

const (
	Basketball Sport = "basketball"
	Football   Sport = "football"
	Soccer     Sport = "soccer"
	Hockey     Sport = "hockey"
	Baseball   Sport = "baseball"
)

// Sports lists every selectable sport.
var Sports = []Sport{Basketball, Football, Soccer, Hockey, Baseball}

type Weather string

const (
	Sunny  Weather = "sunny"
	Cloudy Weather = "cloudy"
	Rainy  Weather = "rainy"
	Snowy  Weather = "snowy"
	Windy  Weather = "windy"
)

// Weathers lists every selectable weather condition.
var Weathers = []Weather{Sunny, Cloudy, Rainy, Snowy, Windy}

var (
	ErrUnknownSport   = errors.New("unknown sport")
	ErrUnknownWeather = errors.New("unknown weather")
)

// Settings describes the match being simulated. The toggles and weather are
// decorative and have no effect on transitions.
type Settings struct {
	Stadium     string  `json:"stadium"`
	Sport       Sport   `json:"sport"`
	HomeTeam    string  `json:"home_team"`
	AwayTeam    string  `json:"away_team"`
	ShowCrowd   bool    `json:"show_crowd"`
	ShowWeather bool    `json:"show_weather"`
	NightGame   bool    `json:"night_game"`
	Weather     Weather `json:"weather"`
}

// DefaultSettings returns the settings a fresh session starts with.
func DefaultSettings() Settings {
	return Settings{
		Stadium:     "Scoracle Arena",
		Sport:       Basketball,
		HomeTeam:    "Warriors",
		AwayTeam:    "Titans",
		ShowCrowd:   true,
		ShowWeather: true,
		NightGame:   true,
		Weather:     Sunny,
	}
}

// WithDefaults fills empty string fields from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()
	if s.Stadium == "" {
		s.Stadium = d.Stadium
	}
	if s.Sport == "" {
		s.Sport = d.Sport
	}
	if s.HomeTeam == "" {
		s.HomeTeam = d.HomeTeam
	}
	if s.AwayTeam == "" {
		s.AwayTeam = d.AwayTeam
	}
	if s.Weather == "" {
		s.Weather = d.Weather
	}
	return s
}

// Validate checks enum membership only.
func (s Settings) Validate() error {
	if !slices.Contains(Sports, s.Sport) {
		return fmt.Errorf("%w: %q", ErrUnknownSport, s.Sport)
	}
	if !slices.Contains(Weathers, s.Weather) {
		return fmt.Errorf("%w: %q", ErrUnknownWeather, s.Weather)
	}
	return nil
}

// --------------------------------------------------------------------------
// MatchState
// --------------------------------------------------------------------------

type Stat string

const (
	StatPoints   Stat = "points"
	StatAssists  Stat = "assists"
	StatRebounds Stat = "rebounds"
)

// Stats lists the stat categories a play can credit.
var Stats = []Stat{StatPoints, StatAssists, StatRebounds}

// PlayerLine is one player's accumulated box score.
type PlayerLine struct {
	Points   int `json:"points"`
	Assists  int `json:"assists"`
	Rebounds int `json:"rebounds"`
}

// Total sums every category.
func (p PlayerLine) Total() int {
	return p.Points + p.Assists + p.Rebounds
}

func (p *PlayerLine) add(stat Stat, n int) {
	switch stat {
	case StatPoints:
		p.Points += n
	case StatAssists:
		p.Assists += n
	case StatRebounds:
		p.Rebounds += n
	}
}

// MatchState is the full scoreboard record for one session.
// EventLog is newest-first and grows without bound.
type MatchState struct {
	Started     bool                  `json:"started"`
	HomeScore   int                   `json:"home_score"`
	AwayScore   int                   `json:"away_score"`
	Quarter     int                   `json:"quarter"`
	CrowdEnergy int                   `json:"crowd_energy"`
	EventLog    []string              `json:"event_log,omitempty"`
	PlayerStats map[string]PlayerLine `json:"player_stats"`
}

// NewMatchState returns a state holding every documented default.
func NewMatchState() MatchState {
	stats := make(map[string]PlayerLine, len(Roster))
	for _, name := range Roster {
		stats[name] = PlayerLine{}
	}
	return MatchState{
		Quarter:     FirstQuarter,
		CrowdEnergy: defaultCrowdEnergy,
		EventLog:    []string{},
		PlayerStats: stats,
	}
}

// Clone returns a deep copy safe to hand to other goroutines.
func (m MatchState) Clone() MatchState {
	out := m
	out.EventLog = slices.Clone(m.EventLog)
	if out.EventLog == nil {
		out.EventLog = []string{}
	}
	out.PlayerStats = make(map[string]PlayerLine, len(m.PlayerStats))
	for k, v := range m.PlayerStats {
		out.PlayerStats[k] = v
	}
	return out
}

func (m *MatchState) prepend(event string) {
	m.EventLog = slices.Insert(m.EventLog, 0, event)
}
