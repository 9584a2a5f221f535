// Package cache provides Redis-backed implementations of the cache adapters.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// DefaultStatsTTL bounds how long a computed month stays cached.
const DefaultStatsTTL = 10 * time.Minute

const statsKeyPrefix = "stats"

// StatsCache implements adapter.StatsCache on Redis.
//
// Entries are keyed by user, per-user version and month. Invalidate bumps the
// version so every month of the user misses at once; stale entries expire on
// their own.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a new StatsCache instance.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

var _ adapter.StatsCache = (*StatsCache)(nil)

type cachedTracker struct {
	Category    string          `json:"category"`
	Budgeted    decimal.Decimal `json:"budgeted"`
	Spent       decimal.Decimal `json:"spent"`
	PercentUsed decimal.Decimal `json:"percent_used"`
	RawPercent  decimal.Decimal `json:"raw_percent"`
	Alert       bool            `json:"alert"`
	OverBudget  bool            `json:"over_budget"`
}

type cachedStats struct {
	Month           string                     `json:"month"`
	TotalIncome     decimal.Decimal            `json:"total_income"`
	TotalExpenses   decimal.Decimal            `json:"total_expenses"`
	Savings         decimal.Decimal            `json:"savings"`
	MonthlyAverage  decimal.Decimal            `json:"monthly_average"`
	MonthsAveraged  int                        `json:"months_averaged"`
	SpentByCategory map[string]decimal.Decimal `json:"spent_by_category"`
	BudgetTrackers  []cachedTracker            `json:"budget_trackers"`
}

// Get returns the cached statistics of month under the user's current
// version. A miss still reports the version for the following Set.
func (c *StatsCache) Get(ctx context.Context, userID uuid.UUID, month valueobject.Month) (adapter.StatsLookup, error) {
	version, err := c.version(ctx, userID)
	if err != nil {
		return adapter.StatsLookup{}, err
	}
	lookup := adapter.StatsLookup{Version: version}

	raw, err := c.client.Get(ctx, entryKey(userID, version, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return lookup, nil
	}
	if err != nil {
		return adapter.StatsLookup{}, fmt.Errorf("failed to read cached stats: %w", err)
	}

	var entry cachedStats
	if err := json.Unmarshal(raw, &entry); err != nil {
		return adapter.StatsLookup{}, fmt.Errorf("failed to decode cached stats: %w", err)
	}
	if lookup.Stats, err = entry.toValueObject(); err != nil {
		return adapter.StatsLookup{}, err
	}
	return lookup, nil
}

// Set caches stats under the version seen by the lookup that preceded loading
// them, not the current one, so results loaded before an Invalidate land in
// the retired generation.
func (c *StatsCache) Set(ctx context.Context, userID uuid.UUID, month valueobject.Month, version int64, stats *valueobject.MonthlyStats) error {
	raw, err := json.Marshal(fromValueObject(stats))
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}

	if err := c.client.Set(ctx, entryKey(userID, version, month), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache stats: %w", err)
	}
	return nil
}

// Invalidate drops every cached month of the user.
func (c *StatsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Incr(ctx, versionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stats cache: %w", err)
	}
	return nil
}

func (c *StatsCache) version(ctx context.Context, userID uuid.UUID) (int64, error) {
	version, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read stats cache version: %w", err)
	}
	return version, nil
}

func versionKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:version", statsKeyPrefix, userID)
}

func entryKey(userID uuid.UUID, version int64, month valueobject.Month) string {
	return fmt.Sprintf("%s:%s:%d:%s", statsKeyPrefix, userID, version, month.Key())
}

func fromValueObject(stats *valueobject.MonthlyStats) cachedStats {
	trackers := make([]cachedTracker, 0, len(stats.BudgetTrackers))
	for _, t := range stats.BudgetTrackers {
		trackers = append(trackers, cachedTracker{
			Category:    t.Category,
			Budgeted:    t.Budgeted,
			Spent:       t.Spent,
			PercentUsed: t.PercentUsed,
			RawPercent:  t.RawPercent,
			Alert:       t.Alert,
			OverBudget:  t.OverBudget,
		})
	}
	return cachedStats{
		Month:           stats.Month.Key(),
		TotalIncome:     stats.TotalIncome,
		TotalExpenses:   stats.TotalExpenses,
		Savings:         stats.Savings,
		MonthlyAverage:  stats.MonthlyAverage,
		MonthsAveraged:  stats.MonthsAveraged,
		SpentByCategory: stats.SpentByCategory,
		BudgetTrackers:  trackers,
	}
}

func (e cachedStats) toValueObject() (*valueobject.MonthlyStats, error) {
	month, err := valueobject.ParseMonth(e.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cached stats: %w", err)
	}

	trackers := make([]valueobject.BudgetTracker, 0, len(e.BudgetTrackers))
	for _, t := range e.BudgetTrackers {
		trackers = append(trackers, valueobject.BudgetTracker{
			Category:    t.Category,
			Budgeted:    t.Budgeted,
			Spent:       t.Spent,
			PercentUsed: t.PercentUsed,
			RawPercent:  t.RawPercent,
			Alert:       t.Alert,
			OverBudget:  t.OverBudget,
		})
	}

	spent := e.SpentByCategory
	if spent == nil {
		spent = map[string]decimal.Decimal{}
	}

	return &valueobject.MonthlyStats{
		Month:           month,
		TotalIncome:     e.TotalIncome,
		TotalExpenses:   e.TotalExpenses,
		Savings:         e.Savings,
		MonthlyAverage:  e.MonthlyAverage,
		MonthsAveraged:  e.MonthsAveraged,
		SpentByCategory: spent,
		BudgetTrackers:  trackers,
	}, nil
}
