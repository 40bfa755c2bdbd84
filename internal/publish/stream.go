// Package publish mirrors session changes onto Redis streams so other
// services can follow live matches.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/albapepper/scoracle-sim/internal/session"
)

const (
	streamPrefix  = "scoreboard.events."
	streamMaxLen  = 10000
	publishWindow = 2 * time.Second
)

// StreamKey returns the stream a sport's changes are written to.
func StreamKey(sport string) string {
	return streamPrefix + sport
}

// StreamPublisher publishes session changes to Redis streams.
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher creates a publisher on an existing client.
func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{client: client}
}

// Dial parses url, connects and verifies the server responds.
func Dial(ctx context.Context, url string) (*StreamPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &StreamPublisher{client: client}, nil
}

// Publish appends the change to its sport's stream.
func (p *StreamPublisher) Publish(ctx context.Context, c session.Change) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling change: %w", err)
	}

	// Detach from request cancellation but bound the write.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishWindow)
	defer cancel()

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey(string(c.Settings.Sport)),
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data":       string(data),
			"session_id": c.SessionID,
			"action":     string(c.Action),
		},
	}).Err()
}

// Close releases the client.
func (p *StreamPublisher) Close() error {
	return p.client.Close()
}
