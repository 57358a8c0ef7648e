package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/platform/metrics"
)

const eventsKey = "events:all"

// EventCache keeps the public event listing for a short TTL.
type EventCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewEventCache(client goredis.Cmdable, ttl time.Duration) *EventCache {
	return &EventCache{client: client, ttl: ttl}
}

func (c *EventCache) GetEvents(ctx context.Context) ([]domain.Event, bool, error) {
	data, err := c.client.Get(ctx, eventsKey).Result()
	if errors.Is(err, goredis.Nil) {
		metrics.TrackEventCache(false)
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("read event cache: %w", err)
	}

	var events []domain.Event
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		metrics.TrackEventCache(false)
		return nil, false, fmt.Errorf("decode event cache: %w", err)
	}

	metrics.TrackEventCache(true)
	return events, true, nil
}

func (c *EventCache) SetEvents(ctx context.Context, events []domain.Event) error {
	if events == nil {
		events = []domain.Event{}
	}

	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode event cache: %w", err)
	}

	return c.client.Set(ctx, eventsKey, string(data), c.ttl).Err()
}

func (c *EventCache) InvalidateEvents(ctx context.Context) error {
	return c.client.Del(ctx, eventsKey).Err()
}
