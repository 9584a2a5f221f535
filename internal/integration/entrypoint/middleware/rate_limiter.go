package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/dto"
)

const (
	defaultMaxAttempts    = 5
	defaultWindowDuration = 15 * time.Minute
)

// AttemptCounter counts hits per key in fixed windows. Hit returns the count
// including this hit and the time left in the current window.
type AttemptCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimiter rejects clients that exceed maxAttempts per window.
type RateLimiter struct {
	counter        AttemptCounter
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates an in-memory limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates an in-memory limiter. Non-positive values
// fall back to the defaults.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return NewRateLimiterWithCounter(NewMemoryCounter(), maxAttempts, windowDuration)
}

// NewRateLimiterWithCounter creates a limiter over a shared counter, so that
// several API instances enforce one limit.
func NewRateLimiterWithCounter(counter AttemptCounter, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if windowDuration <= 0 {
		windowDuration = defaultWindowDuration
	}
	return &RateLimiter{counter: counter, maxAttempts: maxAttempts, windowDuration: windowDuration}
}

// Middleware limits requests per client IP. Counter failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		if client == "" {
			client = c.Request.RemoteAddr
		}

		count, resetIn, err := rl.counter.Hit(c.Request.Context(), c.FullPath()+"|"+client, rl.windowDuration)
		if err != nil {
			slog.Warn("Rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if count > int64(rl.maxAttempts) {
			c.Header("Retry-After", strconv.Itoa(int(resetIn.Round(time.Second).Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}
		c.Next()
	}
}

// Reset forgets all counts held in memory.
func (rl *RateLimiter) Reset() {
	if r, ok := rl.counter.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// RunCleanup drops expired in-memory windows every interval until ctx is done.
// Counters that expire keys by themselves need no cleanup.
func (rl *RateLimiter) RunCleanup(ctx context.Context, interval time.Duration) {
	mc, ok := rl.counter.(*MemoryCounter)
	if !ok {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mc.Cleanup()
		}
	}
}

type window struct {
	hits    int64
	resetAt time.Time
}

// MemoryCounter is an AttemptCounter local to one process.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewMemoryCounter creates an empty MemoryCounter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{windows: make(map[string]*window), now: time.Now}
}

func (m *MemoryCounter) Hit(_ context.Context, key string, length time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(length)}
		m.windows[key] = w
	}
	w.hits++
	return w.hits, w.resetAt.Sub(now), nil
}

func (m *MemoryCounter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows = make(map[string]*window)
}

// Cleanup removes windows that have ended.
func (m *MemoryCounter) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, key)
		}
	}
}
