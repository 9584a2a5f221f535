package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// StatsLookup is the answer of StatsCache.Get. Version is the cache generation
// the lookup observed, hit or miss.
type StatsLookup struct {
	Stats   *valueobject.MonthlyStats // nil on a miss
	Version int64
}

func (l StatsLookup) Hit() bool { return l.Stats != nil }

// StatsCache stores computed monthly statistics per user and month.
type StatsCache interface {
	Get(ctx context.Context, userID uuid.UUID, month valueobject.Month) (StatsLookup, error)

	// Set caches stats under version, which must come from the Get that
	// preceded loading them. If Invalidate ran since, the entry is never read.
	Set(ctx context.Context, userID uuid.UUID, month valueobject.Month, version int64, stats *valueobject.MonthlyStats) error

	// Invalidate drops every cached month of the user.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// AlertDeduplicator remembers which budget alerts were already delivered.
type AlertDeduplicator interface {
	// MarkSent records key and reports whether it was recorded for the first time.
	MarkSent(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Forget removes key so the alert may be delivered again.
	Forget(ctx context.Context, key string) error
}
