package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/application/adapter/mocks"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(tokens *mocks.TokenService) *gin.Engine {
	r := gin.New()
	r.GET("/me", NewAuthMiddleware(tokens).Authenticate(), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		setup      func(m *mocks.TokenService)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantBody:   string(domainerror.ErrCodeMissingToken),
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
			wantBody:   string(domainerror.ErrCodeInvalidToken),
		},
		{
			name:       "empty bearer",
			header:     "Bearer   ",
			wantStatus: http.StatusUnauthorized,
			wantBody:   string(domainerror.ErrCodeMissingToken),
		},
		{
			name:   "lower-case scheme",
			header: "bearer good",
			setup: func(m *mocks.TokenService) {
				m.On("ValidateAccessToken", mock.Anything, "good").
					Return(&adapter.TokenClaims{UserID: userID}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   userID.String(),
		},
		{
			name:   "expired token",
			header: "Bearer old",
			setup: func(m *mocks.TokenService) {
				m.On("ValidateAccessToken", mock.Anything, "old").
					Return(nil, fmt.Errorf("%w: exp claim in the past", domainerror.ErrExpiredToken))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   string(domainerror.ErrCodeExpiredToken),
		},
		{
			name:   "invalid token",
			header: "Bearer forged",
			setup: func(m *mocks.TokenService) {
				m.On("ValidateAccessToken", mock.Anything, "forged").Return(nil, errors.New("bad signature"))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   string(domainerror.ErrCodeInvalidToken),
		},
		{
			name:   "valid token",
			header: "Bearer good",
			setup: func(m *mocks.TokenService) {
				m.On("ValidateAccessToken", mock.Anything, "good").
					Return(&adapter.TokenClaims{UserID: userID, Email: "ana@example.com"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   userID.String(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &mocks.TokenService{}
			if tt.setup != nil {
				tt.setup(tokens)
			}

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			newAuthRouter(tokens).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestRateLimiter_BlocksAfterLimitUntilWindowResets(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	counter := NewMemoryCounter()
	counter.now = func() time.Time { return now }
	rl := NewRateLimiterWithCounter(counter, 2, time.Minute)

	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do().Code)
	assert.Equal(t, http.StatusOK, do().Code)

	blocked := do()
	require.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
	assert.Contains(t, blocked.Body.String(), string(domainerror.ErrCodeRateLimited))

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, do().Code)

	rl.Reset()
	assert.Empty(t, counter.windows)
}

type brokenCounter struct{}

func (brokenCounter) Hit(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("redis down")
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	rl := NewRateLimiterWithCounter(brokenCounter{}, 1, time.Minute)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestMemoryCounter_KeysAreIndependent(t *testing.T) {
	c := NewMemoryCounter()
	ctx := context.Background()

	n, _, _ := c.Hit(ctx, "10.0.0.1", time.Minute)
	assert.Equal(t, int64(1), n)
	n, _, _ = c.Hit(ctx, "10.0.0.1", time.Minute)
	assert.Equal(t, int64(2), n)
	n, _, _ = c.Hit(ctx, "10.0.0.2", time.Minute)
	assert.Equal(t, int64(1), n)
}

func TestMemoryCounter_CleanupDropsEndedWindows(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCounter()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_, _, _ = c.Hit(ctx, "10.0.0.1", time.Minute)
	now = now.Add(2 * time.Minute)
	_, _, _ = c.Hit(ctx, "10.0.0.2", time.Minute)
	c.Cleanup()

	assert.Len(t, c.windows, 1)
	assert.Contains(t, c.windows, "10.0.0.2")
}

func TestNewRateLimiterWithConfig_Defaults(t *testing.T) {
	rl := NewRateLimiterWithConfig(0, 0)
	assert.Equal(t, defaultMaxAttempts, rl.maxAttempts)
	assert.Equal(t, defaultWindowDuration, rl.windowDuration)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000/"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	allowed := httptest.NewRequest(http.MethodGet, "/ping", nil)
	allowed.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, allowed)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	foreign := httptest.NewRequest(http.MethodGet, "/ping", nil)
	foreign.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, foreign)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	preflight := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	preflight.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, preflight)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
