package sim

import "math"

// FeedSize is how many log entries the event feed shows.
const FeedSize = 10

// Feed returns the newest n entries of the event log.
func Feed(m MatchState, n int) []string {
	if n < 0 {
		n = 0
	}
	if n > len(m.EventLog) {
		n = len(m.EventLog)
	}
	out := make([]string, n)
	copy(out, m.EventLog[:n])
	return out
}

// Progress is the share of quarters reached, as a percentage.
func Progress(m MatchState) float64 {
	return float64(m.Quarter) / float64(LastQuarter) * 100
}

// QuarterScore is one point of the score-by-quarter series.
type QuarterScore struct {
	Quarter int `json:"quarter"`
	Home    int `json:"home"`
	Away    int `json:"away"`
}

// ScoreByQuarter interpolates the current score linearly across the quarters
// played so far. The last point always equals the current score.
func ScoreByQuarter(m MatchState) []QuarterScore {
	q := max(FirstQuarter, m.Quarter)
	out := make([]QuarterScore, 0, q)
	for i := 1; i <= q; i++ {
		frac := float64(i) / float64(q)
		out = append(out, QuarterScore{
			Quarter: i,
			Home:    int(math.Round(float64(m.HomeScore) * frac)),
			Away:    int(math.Round(float64(m.AwayScore) * frac)),
		})
	}
	return out
}

// PlayerTotal is one bar of the per-player total chart.
type PlayerTotal struct {
	Player string `json:"player"`
	Total  int    `json:"total"`
}

// PlayerTotals sums each rostered player's stats, in roster order.
func PlayerTotals(m MatchState) []PlayerTotal {
	out := make([]PlayerTotal, 0, len(Roster))
	for _, name := range Roster {
		out = append(out, PlayerTotal{Player: name, Total: m.PlayerStats[name].Total()})
	}
	return out
}

// Board is the rendered view of a match: settings, state and derived fields.
// The state carries no event log; Feed holds the newest entries and
// EventCount the full length.
type Board struct {
	Settings   Settings   `json:"settings"`
	State      MatchState `json:"state"`
	Feed       []string   `json:"feed"`
	EventCount int        `json:"event_count"`
	Progress   float64    `json:"progress"`
}

// Charts bundles the two chart series.
type Charts struct {
	ScoreByQuarter []QuarterScore `json:"score_by_quarter"`
	PlayerTotals   []PlayerTotal  `json:"player_totals"`
}

// NewBoard builds the board view for a state.
func NewBoard(settings Settings, m MatchState) Board {
	b := Board{
		Settings:   settings,
		Feed:       Feed(m, FeedSize),
		EventCount: len(m.EventLog),
		Progress:   Progress(m),
	}
	m.EventLog = nil
	b.State = m
	return b
}

// NewCharts builds both chart series for a state.
func NewCharts(m MatchState) Charts {
	return Charts{
		ScoreByQuarter: ScoreByQuarter(m),
		PlayerTotals:   PlayerTotals(m),
	}
}
