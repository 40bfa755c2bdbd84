//go:build integration

package publish

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/albapepper/scoracle-sim/internal/session"
	"github.com/albapepper/scoracle-sim/internal/sim"
)

func getTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_TEST_PASSWORD"),
		DB:       1, // Use DB 1 for tests to avoid conflicts
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("failed to connect to Redis: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestPublishAppendsToSportStream(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := getTestRedisClient(t)
	p := NewStreamPublisher(client)

	settings := sim.DefaultSettings()
	settings.Sport = sim.Hockey
	state := sim.NewMatchState()
	state.Started = true
	state.HomeScore = 3
	change := session.Change{
		SessionID: "match-1",
		Seed:      77,
		Action:    session.ActionPlay,
		Settings:  settings,
		State:     state,
		At:        time.Now().UTC(),
	}

	if err := p.Publish(ctx, change); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	entries, err := client.XRange(ctx, StreamKey("hockey"), "-", "+").Result()
	if err != nil {
		t.Fatalf("XRange: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("stream has %d entries, want 1", len(entries))
	}

	values := entries[0].Values
	if values["session_id"] != "match-1" || values["action"] != string(session.ActionPlay) {
		t.Errorf("values = %v", values)
	}

	var got session.Change
	if err := json.Unmarshal([]byte(values["data"].(string)), &got); err != nil {
		t.Fatalf("data is not a change: %v", err)
	}
	if got.Seed != 77 || got.State.HomeScore != 3 || got.Settings.Sport != sim.Hockey {
		t.Errorf("decoded change = %+v", got)
	}
}

func TestPublishThroughManager(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	client := getTestRedisClient(t)
	m := session.NewManager(session.Options{Publisher: NewStreamPublisher(client)})

	s, err := m.Create(ctx, sim.Settings{Sport: sim.Soccer}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	m.Start(ctx, s.ID)
	m.Play(ctx, s.ID)
	m.End(ctx, s.ID)

	entries, err := client.XRange(ctx, StreamKey("soccer"), "-", "+").Result()
	if err != nil {
		t.Fatalf("XRange: %v", err)
	}
	want := []session.Action{session.ActionCreate, session.ActionStart, session.ActionPlay, session.ActionEnd}
	if len(entries) != len(want) {
		t.Fatalf("stream has %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Values["action"] != string(want[i]) || e.Values["session_id"] != s.ID {
			t.Errorf("entry %d = %v", i, e.Values)
		}
	}
}
