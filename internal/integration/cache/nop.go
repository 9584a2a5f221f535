package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// NopStatsCache never stores anything. Used when Redis is not configured.
type NopStatsCache struct{}

// Get always misses.
func (NopStatsCache) Get(context.Context, uuid.UUID, valueobject.Month) (adapter.StatsLookup, error) {
	return adapter.StatsLookup{}, nil
}

// Set discards stats.
func (NopStatsCache) Set(context.Context, uuid.UUID, valueobject.Month, int64, *valueobject.MonthlyStats) error {
	return nil
}

// Invalidate does nothing.
func (NopStatsCache) Invalidate(context.Context, uuid.UUID) error {
	return nil
}

// MemoryDeduplicator keeps alert keys in process memory.
// Used by the alert worker when Redis is not configured.
type MemoryDeduplicator struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

// NewMemoryDeduplicator creates a new MemoryDeduplicator instance.
func NewMemoryDeduplicator() *MemoryDeduplicator {
	return &MemoryDeduplicator{seen: make(map[string]time.Time)}
}

// MarkSent records key and reports whether it was recorded for the first time.
func (d *MemoryDeduplicator) MarkSent(_ context.Context, key string, ttl time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	if expiresAt, ok := d.seen[key]; ok && now.Before(expiresAt) {
		return false, nil
	}
	d.seen[key] = now.Add(ttl)
	return true, nil
}

// Forget removes key.
func (d *MemoryDeduplicator) Forget(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, key)
	return nil
}
