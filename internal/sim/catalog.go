package sim

import "strings"

// Side identifies which team a catalog event is credited to.
type Side int

const (
	SideNone Side = iota
	SideHome
	SideAway
	SideEither // resolved to home or away by a draw
)

func (s Side) String() string {
	switch s {
	case SideHome:
		return "home"
	case SideAway:
		return "away"
	case SideEither:
		return "either"
	default:
		return "none"
	}
}

// teamToken is replaced with the resolved team's name.
const teamToken = "{team}"

// Event is one entry of the play catalog. Score attribution uses Side and
// Points; the rendered text is display only.
type Event struct {
	Template string
	Side     Side
	Points   int
}

// Catalog is the fixed set of plays SimulatePlay draws from.
var Catalog = []Event{
	{Template: "{team} drains a deep three! 3 points", Side: SideHome, Points: 3},
	{Template: "{team} attacks the rim for 2 points", Side: SideEither, Points: 2},
	{Template: "{team} forces a turnover at half court", Side: SideAway},
	{Template: "Huge defensive stop by {team}", Side: SideHome},
	{Template: "{team} calls a timeout", Side: SideAway},
	{Template: "Shooting foul called on {team}", Side: SideHome},
	{Template: "{team} fans start a chant in the upper deck", Side: SideAway},
}

// Render substitutes the team name into the template.
func (e Event) Render(team string) string {
	return strings.ReplaceAll(e.Template, teamToken, team)
}
