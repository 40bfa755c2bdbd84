package main

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/albapepper/scoracle-sim/internal/sim"
)

func TestRunMatchIsReproducible(t *testing.T) {
	opts := matchOptions{Plays: 8, Quarters: 4, Seed: 99, Settings: sim.DefaultSettings()}

	a, err := runMatch(opts)
	if err != nil {
		t.Fatalf("runMatch: %v", err)
	}
	b, err := runMatch(opts)
	if err != nil {
		t.Fatalf("runMatch: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different matches")
	}
	if len(a.Plays) != 32 {
		t.Errorf("plays = %d, want 32", len(a.Plays))
	}
	if a.Board.State.Quarter != 4 {
		t.Errorf("quarter = %d, want 4", a.Board.State.Quarter)
	}
	if !a.Board.State.Started {
		t.Error("match not started")
	}
	// Start + 3 quarter markers + every play.
	if got, want := a.Board.EventCount, 1+3+32; got != want {
		t.Errorf("event log = %d, want %d", got, want)
	}
}

func TestRecordCountsFullEventLog(t *testing.T) {
	res, err := runMatch(matchOptions{Plays: 15, Quarters: 4, Seed: 3})
	if err != nil {
		t.Fatalf("runMatch: %v", err)
	}
	r := res.record(time.Now())
	if want := 1 + 3 + 60; r.EventCount != want || res.Board.EventCount != want {
		t.Errorf("record events = %d, board events = %d, want %d", r.EventCount, res.Board.EventCount, want)
	}
	if len(res.Board.Feed) != sim.FeedSize {
		t.Errorf("feed = %d entries, want %d", len(res.Board.Feed), sim.FeedSize)
	}
}

func TestRunMatchQuarters(t *testing.T) {
	for _, q := range []int{1, 2, 3, 4} {
		res, err := runMatch(matchOptions{Plays: 0, Quarters: q, Seed: 1})
		if err != nil {
			t.Fatalf("quarters=%d: %v", q, err)
		}
		if res.Board.State.Quarter != q {
			t.Errorf("quarters=%d: ended in quarter %d", q, res.Board.State.Quarter)
		}
	}
}

func TestRunMatchValidation(t *testing.T) {
	tests := []struct {
		name string
		opts matchOptions
		want error
	}{
		{"zero quarters", matchOptions{Plays: 1, Quarters: 0}, nil},
		{"five quarters", matchOptions{Plays: 1, Quarters: 5}, nil},
		{"negative plays", matchOptions{Plays: -1, Quarters: 4}, nil},
		{"bad sport", matchOptions{Plays: 1, Quarters: 4, Settings: sim.Settings{Sport: "curling"}}, sim.ErrUnknownSport},
		{"bad weather", matchOptions{Plays: 1, Quarters: 4, Settings: sim.Settings{Weather: "foggy"}}, sim.ErrUnknownWeather},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runMatch(tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPrintResult(t *testing.T) {
	settings := sim.DefaultSettings()
	settings.HomeTeam = "Sharks"
	settings.AwayTeam = "Comets"
	res, err := runMatch(matchOptions{Plays: 3, Quarters: 2, Seed: 7, Settings: settings})
	if err != nil {
		t.Fatalf("runMatch: %v", err)
	}

	var buf bytes.Buffer
	if err := printResult(&buf, res); err != nil {
		t.Fatalf("printResult: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sharks vs Comets", "Q1", "Q2", "Marcus Reed", "LATEST", "Quarter 2 begins"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
