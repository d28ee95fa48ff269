// Package publisher publishes decoded save state snapshots to Redis.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/retroenv/tsbstats/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// StreamAdder appends entries to a Redis stream.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// KeyValue stores and reads keys with an expiry.
type KeyValue interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Client is the Redis client surface used by the publisher.
type Client interface {
	StreamAdder
	KeyValue
}

// ErrNoSnapshot is returned when no snapshot is cached for a save state.
var ErrNoSnapshot = errors.New("no snapshot cached")

// StreamPublisher publishes snapshots to a Redis stream.
type StreamPublisher struct {
	client StreamAdder
	stream string
}

// NewStreamPublisher creates a new stream publisher.
func NewStreamPublisher(client StreamAdder, stream string) *StreamPublisher {
	return &StreamPublisher{
		client: client,
		stream: stream,
	}
}

// Publish appends the snapshot to the stream and returns the entry ID.
func (p *StreamPublisher) Publish(ctx context.Context, snapshot *writer.Snapshot) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot: %w", err)
	}

	values := map[string]any{
		"data":        string(data),
		"snapshot_id": snapshot.ID,
		"save_state":  snapshot.SaveState,
		"clock":       snapshot.Clock,
	}
	for _, team := range snapshot.Teams {
		values[team.Side] = fmt.Sprintf("%s %d", team.Label, team.Score)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: values,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("adding snapshot to stream %s: %w", p.stream, err)
	}
	return id, nil
}

// SnapshotCache stores the latest snapshot of every save state.
type SnapshotCache struct {
	client KeyValue
	ttl    time.Duration
}

// NewSnapshotCache creates a new snapshot cache.
func NewSnapshotCache(client KeyValue, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		client: client,
		ttl:    ttl,
	}
}

// Key returns the cache key of the latest snapshot of a save state.
func Key(saveState string) string {
	return "tsb:latest:" + saveState
}

// Write stores the snapshot as the latest of its save state.
func (c *SnapshotCache) Write(ctx context.Context, snapshot *writer.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	if err := c.client.Set(ctx, Key(snapshot.SaveState), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("storing snapshot: %w", err)
	}
	return nil
}

// Latest returns the latest stored snapshot of a save state.
func (c *SnapshotCache) Latest(ctx context.Context, saveState string) (*writer.Snapshot, error) {
	data, err := c.client.Get(ctx, Key(saveState)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w for '%s'", ErrNoSnapshot, saveState)
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot writer.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot: %w", err)
	}
	return &snapshot, nil
}

// Publisher publishes every snapshot to the stream and the cache.
type Publisher struct {
	logger *log.Logger
	stream *StreamPublisher
	cache  *SnapshotCache
}

// New creates a new publisher.
func New(logger *log.Logger, client Client, stream string, ttl time.Duration) *Publisher {
	return &Publisher{
		logger: logger,
		stream: NewStreamPublisher(client, stream),
		cache:  NewSnapshotCache(client, ttl),
	}
}

// Publish publishes the snapshot.
func (p *Publisher) Publish(ctx context.Context, snapshot *writer.Snapshot) error {
	id, err := p.stream.Publish(ctx, snapshot)
	if err != nil {
		return err
	}
	if err := p.cache.Write(ctx, snapshot); err != nil {
		return err
	}

	p.logger.Debug("Published snapshot",
		log.String("snapshot", snapshot.ID),
		log.String("entry", id))
	return nil
}
