package sim

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// scripted replays a fixed list of draws.
type scripted struct {
	t     *testing.T
	draws []int
}

func (s *scripted) IntN(n int) int {
	s.t.Helper()
	if len(s.draws) == 0 {
		s.t.Fatalf("scripted source exhausted (IntN(%d))", n)
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted draw %d out of range [0,%d)", v, n)
	}
	return v
}

func newScripted(t *testing.T, draws ...int) *scripted {
	return &scripted{t: t, draws: draws}
}

func TestNewStartsWithDefaults(t *testing.T) {
	s := New(Settings{}, NewSource(1))
	got := s.State()
	want := NewMatchState()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("fresh state = %+v, want %+v", got, want)
	}
	if s.Started() {
		t.Fatalf("fresh simulator reports started")
	}
	if s.Settings().HomeTeam != "Warriors" || s.Settings().AwayTeam != "Titans" {
		t.Fatalf("default teams = %q/%q", s.Settings().HomeTeam, s.Settings().AwayTeam)
	}
}

func TestStartLogsBothTeams(t *testing.T) {
	s := New(DefaultSettings(), NewSource(1))
	s.Start()

	st := s.State()
	if !st.Started {
		t.Fatalf("expected started after Start")
	}
	if len(st.EventLog) != 1 {
		t.Fatalf("event log len = %d, want 1", len(st.EventLog))
	}
	for _, team := range []string{"Warriors", "Titans"} {
		if !strings.Contains(st.EventLog[0], team) {
			t.Errorf("start event %q does not mention %q", st.EventLog[0], team)
		}
	}

	s.Start()
	if n := len(s.State().EventLog); n != 2 {
		t.Fatalf("second Start should log a duplicate, log len = %d", n)
	}
}

func TestAdvanceQuarterClampsAtLast(t *testing.T) {
	s := New(DefaultSettings(), NewSource(1))
	s.Start()
	for i := 0; i < 3; i++ {
		s.AdvanceQuarter()
	}
	if q := s.State().Quarter; q != LastQuarter {
		t.Fatalf("quarter = %d, want %d", q, LastQuarter)
	}

	before := len(s.State().EventLog)
	s.AdvanceQuarter()
	st := s.State()
	if st.Quarter != LastQuarter {
		t.Fatalf("quarter after clamp = %d, want %d", st.Quarter, LastQuarter)
	}
	if len(st.EventLog) != before+1 {
		t.Fatalf("log len = %d, want %d", len(st.EventLog), before+1)
	}
	if st.EventLog[0] != "Quarter 4 begins" {
		t.Fatalf("newest event = %q", st.EventLog[0])
	}
}

func TestSimulatePlayCrowdClamp(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		deltaDraw int
		want      int
		wantDelta int
	}{
		{"clamps high", 95, 19, 100, 14},
		{"clamps low", 3, 0, 0, -5},
		{"within range", 50, 10, 55, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// event 2 (turnover, away, no points), delta, player 0, stat 0, amount 0
			s := New(DefaultSettings(), newScripted(t, 2, tt.deltaDraw, 0, 0, 0))
			s.Start()
			s.state.CrowdEnergy = tt.start

			play := s.SimulatePlay()
			if play.CrowdDelta != tt.wantDelta {
				t.Fatalf("crowd delta = %d, want %d", play.CrowdDelta, tt.wantDelta)
			}
			if got := s.State().CrowdEnergy; got != tt.want {
				t.Fatalf("crowd energy = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSimulatePlayScoring(t *testing.T) {
	tests := []struct {
		name      string
		draws     []int
		wantHome  int
		wantAway  int
		wantTeam  string
		wantEvent string
	}{
		{"three pointer credits home", []int{0, 5, 0, 0, 0}, 3, 0, "Warriors", "Warriors drains a deep three! 3 points"},
		{"two pointer for home", []int{1, 0, 5, 0, 0, 0}, 2, 0, "Warriors", "Warriors attacks the rim for 2 points"},
		{"two pointer for away", []int{1, 1, 5, 0, 0, 0}, 0, 2, "Titans", "Titans attacks the rim for 2 points"},
		{"non scoring play", []int{4, 5, 0, 0, 0}, 0, 0, "Titans", "Titans calls a timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(DefaultSettings(), newScripted(t, tt.draws...))
			s.Start()
			play := s.SimulatePlay()

			st := s.State()
			if st.HomeScore != tt.wantHome || st.AwayScore != tt.wantAway {
				t.Fatalf("score = %d-%d, want %d-%d", st.HomeScore, st.AwayScore, tt.wantHome, tt.wantAway)
			}
			if play.Team != tt.wantTeam {
				t.Fatalf("team = %q, want %q", play.Team, tt.wantTeam)
			}
			if st.EventLog[0] != tt.wantEvent {
				t.Fatalf("newest event = %q, want %q", st.EventLog[0], tt.wantEvent)
			}
		})
	}
}

func TestScoreAttributionIgnoresTeamNames(t *testing.T) {
	// Team names that overlap catalog text must not change attribution.
	settings := DefaultSettings()
	settings.HomeTeam = "Titans"
	settings.AwayTeam = "3 points"

	s := New(settings, newScripted(t, 1, 1, 5, 0, 0, 0))
	s.Start()
	s.SimulatePlay()

	st := s.State()
	if st.HomeScore != 0 || st.AwayScore != 2 {
		t.Fatalf("score = %d-%d, want 0-2", st.HomeScore, st.AwayScore)
	}
}

func TestSimulatePlayCreditsPlayerStat(t *testing.T) {
	// player 2, stat rebounds, amount 3
	s := New(DefaultSettings(), newScripted(t, 3, 5, 2, 2, 2))
	s.Start()
	play := s.SimulatePlay()

	if play.Player != Roster[2] || play.Stat != StatRebounds || play.StatAmount != 3 {
		t.Fatalf("play = %+v", play)
	}
	got := s.State().PlayerStats[Roster[2]]
	if got != (PlayerLine{Rebounds: 3}) {
		t.Fatalf("player line = %+v", got)
	}
	for _, name := range Roster[:2] {
		if line := s.State().PlayerStats[name]; line != (PlayerLine{}) {
			t.Fatalf("%s should be untouched, got %+v", name, line)
		}
	}
}

func TestInvariantsHoldOverManyPlays(t *testing.T) {
	s := New(DefaultSettings(), NewSource(42))
	s.Start()

	prevHome, prevAway := 0, 0
	for i := 0; i < 2000; i++ {
		if i%150 == 0 {
			s.AdvanceQuarter()
		}
		s.SimulatePlay()

		st := s.State()
		if st.CrowdEnergy < MinCrowdEnergy || st.CrowdEnergy > MaxCrowdEnergy {
			t.Fatalf("play %d: crowd energy %d out of range", i, st.CrowdEnergy)
		}
		if st.Quarter < FirstQuarter || st.Quarter > LastQuarter {
			t.Fatalf("play %d: quarter %d out of range", i, st.Quarter)
		}
		if st.HomeScore < prevHome || st.AwayScore < prevAway {
			t.Fatalf("play %d: score decreased", i)
		}
		if !st.Started {
			t.Fatalf("play %d: match stopped without reset", i)
		}
		prevHome, prevAway = st.HomeScore, st.AwayScore
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	s := New(DefaultSettings(), NewSource(7))
	s.Start()
	for i := 0; i < 25; i++ {
		s.SimulatePlay()
	}
	s.AdvanceQuarter()
	s.Reset()

	got := s.State()
	if !reflect.DeepEqual(got, NewMatchState()) {
		t.Fatalf("state after reset = %+v", got)
	}
	if got.HomeScore != 0 || got.AwayScore != 0 || got.Quarter != 1 || got.CrowdEnergy != 50 || len(got.EventLog) != 0 {
		t.Fatalf("reset left non-default fields: %+v", got)
	}
}

func TestStateIsACopy(t *testing.T) {
	s := New(DefaultSettings(), NewSource(1))
	s.Start()
	st := s.State()
	st.EventLog[0] = "mutated"
	st.PlayerStats[Roster[0]] = PlayerLine{Points: 99}

	fresh := s.State()
	if fresh.EventLog[0] == "mutated" || fresh.PlayerStats[Roster[0]].Points == 99 {
		t.Fatalf("State leaked internal storage")
	}
}

func TestSeededSourcesReplay(t *testing.T) {
	run := func() MatchState {
		s := New(DefaultSettings(), NewSource(99))
		s.Start()
		for i := 0; i < 40; i++ {
			s.SimulatePlay()
		}
		return s.State()
	}
	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Fatalf("equal seeds produced different matches")
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}

	bad := DefaultSettings()
	bad.Sport = "curling"
	if err := bad.Validate(); !errors.Is(err, ErrUnknownSport) {
		t.Fatalf("err = %v, want ErrUnknownSport", err)
	}

	bad = DefaultSettings()
	bad.Weather = "hail"
	if err := bad.Validate(); !errors.Is(err, ErrUnknownWeather) {
		t.Fatalf("err = %v, want ErrUnknownWeather", err)
	}
}
