package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const attemptKeyPrefix = "attempts"

// AttemptCounter keeps fixed-window hit counts in Redis so every API
// instance sees the same totals.
type AttemptCounter struct {
	client *redis.Client
}

// NewAttemptCounter creates a new AttemptCounter instance.
func NewAttemptCounter(client *redis.Client) *AttemptCounter {
	return &AttemptCounter{client: client}
}

// Hit increments key and returns the new count with the time left in its window.
// The first hit of a window sets the expiry; a key left without one is repaired.
func (c *AttemptCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	key = attemptKeyPrefix + ":" + key

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count attempt: %w", err)
	}
	if count == 1 {
		if err := c.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("failed to start attempt window: %w", err)
		}
		return count, window, nil
	}

	ttl, err := c.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read attempt window: %w", err)
	}
	if ttl < 0 {
		ttl = window
		if err := c.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("failed to start attempt window: %w", err)
		}
	}
	return count, ttl, nil
}
