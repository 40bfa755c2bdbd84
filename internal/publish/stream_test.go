package publish

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/albapepper/scoracle-sim/internal/session"
	"github.com/albapepper/scoracle-sim/internal/sim"
)

func TestStreamKey(t *testing.T) {
	if got := StreamKey("basketball"); got != "scoreboard.events.basketball" {
		t.Fatalf("StreamKey = %q", got)
	}
}

func TestDialRejectsBadURL(t *testing.T) {
	if _, err := Dial(context.Background(), "http://not-redis"); err == nil {
		t.Fatalf("expected error for non-redis url")
	}
}

// unreachablePublisher points at a port nothing listens on.
func unreachablePublisher(t *testing.T) *StreamPublisher {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	p := NewStreamPublisher(client)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestPublishReportsUnreachableRedis(t *testing.T) {
	p := unreachablePublisher(t)
	c := session.Change{
		SessionID: "s1",
		Action:    session.ActionStart,
		Settings:  sim.DefaultSettings(),
		State:     sim.NewMatchState(),
	}
	if err := p.Publish(context.Background(), c); err == nil {
		t.Fatal("Publish to an unreachable server returned nil")
	}
}

func TestUnreachableRedisDoesNotFailTransitions(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager(session.Options{
		Publisher: unreachablePublisher(t),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	seed := uint64(5)
	s, err := m.Create(ctx, sim.Settings{}, &seed)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := m.Start(ctx, s.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c, err := m.Play(ctx, s.ID)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if c.Play == nil || c.Seed != seed {
		t.Fatalf("change = %+v", c)
	}
}
