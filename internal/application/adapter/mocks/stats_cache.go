package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// StatsCache is a mock of adapter.StatsCache.
type StatsCache struct {
	mock.Mock
}

var _ adapter.StatsCache = (*StatsCache)(nil)

func (m *StatsCache) Get(ctx context.Context, userID uuid.UUID, month valueobject.Month) (adapter.StatsLookup, error) {
	args := m.Called(ctx, userID, month)
	lookup, _ := args.Get(0).(adapter.StatsLookup)
	return lookup, args.Error(1)
}

func (m *StatsCache) Set(ctx context.Context, userID uuid.UUID, month valueobject.Month, version int64, stats *valueobject.MonthlyStats) error {
	args := m.Called(ctx, userID, month, version, stats)
	return args.Error(0)
}

func (m *StatsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// AlertDeduplicator is a mock of adapter.AlertDeduplicator.
type AlertDeduplicator struct {
	mock.Mock
}

var _ adapter.AlertDeduplicator = (*AlertDeduplicator)(nil)

func (m *AlertDeduplicator) MarkSent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *AlertDeduplicator) Forget(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
