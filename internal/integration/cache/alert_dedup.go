package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/manjeet0505/Expense/internal/application/adapter"
)

const alertKeyPrefix = "budget-alert"

// AlertDeduplicator implements adapter.AlertDeduplicator with SETNX.
type AlertDeduplicator struct {
	client *redis.Client
}

// NewAlertDeduplicator creates a new AlertDeduplicator instance.
func NewAlertDeduplicator(client *redis.Client) *AlertDeduplicator {
	return &AlertDeduplicator{client: client}
}

var _ adapter.AlertDeduplicator = (*AlertDeduplicator)(nil)

// MarkSent records key and reports whether it was recorded for the first time.
func (d *AlertDeduplicator) MarkSent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := d.client.SetNX(ctx, alertKeyPrefix+":"+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record budget alert: %w", err)
	}
	return ok, nil
}

// Forget removes a recorded key so the alert can be sent again.
func (d *AlertDeduplicator) Forget(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, alertKeyPrefix+":"+key).Err(); err != nil {
		return fmt.Errorf("failed to forget budget alert: %w", err)
	}
	return nil
}
