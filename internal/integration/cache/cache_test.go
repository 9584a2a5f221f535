package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func sampleStats(month valueobject.Month) *valueobject.MonthlyStats {
	return &valueobject.MonthlyStats{
		Month:          month,
		TotalIncome:    decimal.RequireFromString("2000"),
		TotalExpenses:  decimal.RequireFromString("50.25"),
		Savings:        decimal.RequireFromString("1949.75"),
		MonthlyAverage: decimal.RequireFromString("1949.75"),
		MonthsAveraged: 1,
		SpentByCategory: map[string]decimal.Decimal{
			"Food": decimal.RequireFromString("50.25"),
		},
		BudgetTrackers: []valueobject.BudgetTracker{{
			Category:    "Food",
			Budgeted:    decimal.RequireFromString("60"),
			Spent:       decimal.RequireFromString("50.25"),
			PercentUsed: decimal.RequireFromString("83.75"),
			RawPercent:  decimal.RequireFromString("83.75"),
			Alert:       true,
		}},
	}
}

func TestStatsCache_RoundTrip(t *testing.T) {
	_, client := newRedis(t)
	cache := NewStatsCache(client, time.Minute)
	ctx := context.Background()

	userID := uuid.New()
	march := valueobject.NewMonth(2024, time.March)

	miss, err := cache.Get(ctx, userID, march)
	require.NoError(t, err)
	assert.False(t, miss.Hit())

	require.NoError(t, cache.Set(ctx, userID, march, miss.Version, sampleStats(march)))

	hit, err := cache.Get(ctx, userID, march)
	require.NoError(t, err)
	require.True(t, hit.Hit())
	got := hit.Stats
	assert.Equal(t, march, got.Month)
	assert.True(t, got.Savings.Equal(decimal.RequireFromString("1949.75")))
	assert.True(t, got.SpentIn("Food").Equal(decimal.RequireFromString("50.25")))
	require.Len(t, got.BudgetTrackers, 1)
	assert.True(t, got.BudgetTrackers[0].Alert)
	assert.False(t, got.BudgetTrackers[0].OverBudget)
}

// fill caches stats through the Get-then-Set sequence used by readers.
func fill(t *testing.T, cache *StatsCache, userID uuid.UUID, month valueobject.Month) {
	t.Helper()
	lookup, err := cache.Get(context.Background(), userID, month)
	require.NoError(t, err)
	require.NoError(t, cache.Set(context.Background(), userID, month, lookup.Version, sampleStats(month)))
}

func TestStatsCache_InvalidateDropsAllMonths(t *testing.T) {
	_, client := newRedis(t)
	cache := NewStatsCache(client, time.Minute)
	ctx := context.Background()

	userID := uuid.New()
	other := uuid.New()
	march := valueobject.NewMonth(2024, time.March)
	april := valueobject.NewMonth(2024, time.April)

	fill(t, cache, userID, march)
	fill(t, cache, userID, april)
	fill(t, cache, other, march)

	require.NoError(t, cache.Invalidate(ctx, userID))

	lookup, err := cache.Get(ctx, userID, march)
	require.NoError(t, err)
	assert.False(t, lookup.Hit())
	lookup, err = cache.Get(ctx, userID, april)
	require.NoError(t, err)
	assert.False(t, lookup.Hit())

	lookup, err = cache.Get(ctx, other, march)
	require.NoError(t, err)
	assert.True(t, lookup.Hit())
}

func TestStatsCache_WriteDuringLoadRetiresResult(t *testing.T) {
	_, client := newRedis(t)
	cache := NewStatsCache(client, time.Minute)
	ctx := context.Background()

	userID := uuid.New()
	march := valueobject.NewMonth(2024, time.March)

	// A reader misses and starts loading; a transaction write invalidates
	// before the reader stores what it loaded.
	before, err := cache.Get(ctx, userID, march)
	require.NoError(t, err)
	require.False(t, before.Hit())

	require.NoError(t, cache.Invalidate(ctx, userID))
	require.NoError(t, cache.Set(ctx, userID, march, before.Version, sampleStats(march)))

	after, err := cache.Get(ctx, userID, march)
	require.NoError(t, err)
	assert.False(t, after.Hit(), "result loaded before the write must not be served")
	assert.Greater(t, after.Version, before.Version)

	fresh := sampleStats(march)
	fresh.TotalExpenses = decimal.RequireFromString("80")
	require.NoError(t, cache.Set(ctx, userID, march, after.Version, fresh))

	hit, err := cache.Get(ctx, userID, march)
	require.NoError(t, err)
	require.True(t, hit.Hit())
	assert.Equal(t, "80.00", hit.Stats.TotalExpenses.StringFixed(2))
}

func TestStatsCache_EntriesExpire(t *testing.T) {
	server, client := newRedis(t)
	cache := NewStatsCache(client, time.Minute)

	userID := uuid.New()
	march := valueobject.NewMonth(2024, time.March)
	fill(t, cache, userID, march)

	server.FastForward(2 * time.Minute)

	lookup, err := cache.Get(context.Background(), userID, march)
	require.NoError(t, err)
	assert.False(t, lookup.Hit())
}

func TestStatsCache_ReportsRedisFailure(t *testing.T) {
	server, client := newRedis(t)
	cache := NewStatsCache(client, time.Minute)
	server.Close()

	lookup, err := cache.Get(context.Background(), uuid.New(), valueobject.NewMonth(2024, time.March))
	assert.Error(t, err)
	assert.False(t, lookup.Hit())
}

func TestAlertDeduplicator_MarkSent(t *testing.T) {
	server, client := newRedis(t)
	dedup := NewAlertDeduplicator(client)
	ctx := context.Background()

	first, err := dedup.MarkSent(ctx, "user:Food:2024-03:warning", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := dedup.MarkSent(ctx, "user:Food:2024-03:warning", time.Hour)
	require.NoError(t, err)
	assert.False(t, again)

	over, err := dedup.MarkSent(ctx, "user:Food:2024-03:over", time.Hour)
	require.NoError(t, err)
	assert.True(t, over)

	server.FastForward(2 * time.Hour)
	expired, err := dedup.MarkSent(ctx, "user:Food:2024-03:warning", time.Hour)
	require.NoError(t, err)
	assert.True(t, expired)

	require.NoError(t, dedup.Forget(ctx, "user:Food:2024-03:over"))
	forgotten, err := dedup.MarkSent(ctx, "user:Food:2024-03:over", time.Hour)
	require.NoError(t, err)
	assert.True(t, forgotten)
}

func TestMemoryDeduplicator_MarkSent(t *testing.T) {
	dedup := NewMemoryDeduplicator()
	ctx := context.Background()

	first, err := dedup.MarkSent(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := dedup.MarkSent(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.False(t, again)

	short, err := dedup.MarkSent(ctx, "short", -time.Second)
	require.NoError(t, err)
	assert.True(t, short)
	expired, err := dedup.MarkSent(ctx, "short", time.Hour)
	require.NoError(t, err)
	assert.True(t, expired)
}

func TestAttemptCounter(t *testing.T) {
	server, client := newRedis(t)
	counter := NewAttemptCounter(client)
	ctx := context.Background()

	n, left, err := counter.Hit(ctx, "/login|10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, time.Minute, left)

	server.FastForward(20 * time.Second)
	n, left, err = counter.Hit(ctx, "/login|10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 40*time.Second, left)

	n, _, err = counter.Hit(ctx, "/login|10.0.0.2", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	server.FastForward(41 * time.Second)
	n, _, err = counter.Hit(ctx, "/login|10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAttemptCounter_RepairsMissingExpiry(t *testing.T) {
	server, client := newRedis(t)
	counter := NewAttemptCounter(client)
	require.NoError(t, server.Set("attempts:k", "3"))

	n, left, err := counter.Hit(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, time.Minute, left)
	assert.Equal(t, time.Minute, server.TTL("attempts:k"))
}

func TestAttemptCounter_Unavailable(t *testing.T) {
	server, client := newRedis(t)
	server.Close()

	_, _, err := NewAttemptCounter(client).Hit(context.Background(), "k", time.Minute)
	assert.Error(t, err)
}
