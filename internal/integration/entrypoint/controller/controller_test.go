package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/application/adapter/mocks"
	"github.com/manjeet0505/Expense/internal/application/usecase/budget"
	"github.com/manjeet0505/Expense/internal/application/usecase/stats"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/dto"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withUser stands in for the auth middleware.
func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(middleware.UserIDKey), userID)
		c.Next()
	}
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "stats store unavailable",
			err:        domainerror.NewStatsError(domainerror.ErrCodeStatsSourceUnavailable, "statistics source unavailable", errors.New("dial tcp")),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "STA-980001",
		},
		{
			name:       "stored record rejected by aggregator",
			err:        domainerror.NewStatsError(domainerror.ErrCodeNegativeBudgetAmount, "budget has a negative amount", domainerror.ErrNegativeBudgetAmount),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "STA-010001",
		},
		{
			name:       "wrapped budget not found",
			err:        fmt.Errorf("failed: %w", domainerror.NewBudgetError(domainerror.ErrCodeBudgetNotFound, "budget not found", nil)),
			wantStatus: http.StatusNotFound,
			wantCode:   "BDG-010001",
		},
		{
			name:       "transaction owned by someone else",
			err:        domainerror.NewTransactionError(domainerror.ErrCodeNotAuthorizedTransaction, "forbidden", nil),
			wantStatus: http.StatusForbidden,
			wantCode:   "TXN-010005",
		},
		{
			name:       "duplicate email",
			err:        domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "email exists", nil),
			wantStatus: http.StatusConflict,
			wantCode:   "AUTH-010001",
		},
		{
			name:       "unknown category kind",
			err:        domainerror.NewCategoryError(domainerror.ErrCodeInvalidCategoryKind, "kind must be expense or income", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   "CAT-010001",
		},
		{
			name:       "trend range",
			err:        domainerror.NewDashboardError(domainerror.ErrCodeInvalidMonthsRange, "months must be between 1 and 24", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   "DSH-010001",
		},
		{
			name:       "contact queue down",
			err:        domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to queue", nil),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "EMAIL-010001",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := classifyError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func newStatsRouter(userID uuid.UUID) (*gin.Engine, *mocks.TransactionRepository, *mocks.BudgetRepository, *mocks.StatsCache) {
	txnRepo := &mocks.TransactionRepository{}
	budgetRepo := &mocks.BudgetRepository{}
	cache := &mocks.StatsCache{}
	c := NewStatsController(stats.NewGetMonthlyStatsUseCase(txnRepo, budgetRepo, cache))

	r := gin.New()
	r.GET("/stats", withUser(userID), c.GetMonthly)
	return r, txnRepo, budgetRepo, cache
}

func TestStatsController_GetMonthly(t *testing.T) {
	userID := uuid.New()
	r, txnRepo, budgetRepo, cache := newStatsRouter(userID)
	march := valueobject.NewMonth(2024, time.March)

	cache.On("Get", mock.Anything, userID, march).Return(adapter.StatsLookup{}, nil)
	cache.On("Set", mock.Anything, userID, march, int64(0), mock.Anything).Return(nil)
	txnRepo.On("FindByUserAndDateRange", mock.Anything, userID, mock.Anything, mock.Anything).
		Return([]*entity.Transaction{
			entity.NewTransaction(userID, time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), "Groceries",
				decimal.RequireFromString("85"), entity.TransactionTypeExpense, entity.CategoryFood, entity.PaymentMethodCash, nil, ""),
			entity.NewTransaction(userID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "Salary",
				decimal.RequireFromString("1000"), entity.TransactionTypeIncome, entity.CategoryIncome, entity.PaymentMethodBankTransfer, nil, ""),
		}, nil)
	budgetRepo.On("FindByUser", mock.Anything, userID, mock.Anything).
		Return([]*entity.Budget{entity.NewBudget(userID, entity.CategoryFood, decimal.RequireFromString("100"), march, "")}, nil)

	rec := serve(r, http.MethodGet, "/stats?date=2024-03-15", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.MonthlyStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-03", body.Month)
	assert.Equal(t, "1000.00", body.TotalIncome)
	assert.Equal(t, "85.00", body.TotalExpenses)
	assert.Equal(t, "915.00", body.Savings)
	assert.Equal(t, "915.00", body.MonthlyAverage)
	require.Len(t, body.BudgetTrackers, 1)
	assert.Equal(t, "85.00", body.BudgetTrackers[0].PercentUsed)
	assert.Equal(t, "15.00", body.BudgetTrackers[0].Remaining)
	assert.True(t, body.BudgetTrackers[0].Alert)
	assert.False(t, body.BudgetTrackers[0].OverBudget)
}

func TestStatsController_InvalidDate(t *testing.T) {
	r, _, _, _ := newStatsRouter(uuid.New())

	rec := serve(r, http.MethodGet, "/stats?date=2024-13-40", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), string(domainerror.ErrCodeInvalidReferenceDate))
}

func TestStatsController_StoreDownIsRetryable(t *testing.T) {
	userID := uuid.New()
	r, txnRepo, budgetRepo, cache := newStatsRouter(userID)

	cache.On("Get", mock.Anything, userID, mock.Anything).Return(adapter.StatsLookup{}, nil)
	txnRepo.On("FindByUserAndDateRange", mock.Anything, userID, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))
	budgetRepo.On("FindByUser", mock.Anything, userID, mock.Anything).Return(nil, errors.New("connection refused"))

	rec := serve(r, http.MethodGet, "/stats", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, retryAfterSeconds, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "STA-980001")
	assert.NotContains(t, rec.Body.String(), "total_income")
}

func newBudgetRouter(userID uuid.UUID) (*gin.Engine, *mocks.BudgetRepository, *mocks.StatsCache) {
	budgetRepo := &mocks.BudgetRepository{}
	cache := &mocks.StatsCache{}
	c := NewBudgetController(nil, budget.NewUpsertBudgetUseCase(budgetRepo, cache), budget.NewDeleteBudgetUseCase(budgetRepo, cache))

	r := gin.New()
	r.PUT("/budgets", withUser(userID), c.Upsert)
	r.DELETE("/budgets/:id", withUser(userID), c.Delete)
	return r, budgetRepo, cache
}

func TestBudgetController_UpsertStatus(t *testing.T) {
	tests := []struct {
		name       string
		created    bool
		wantStatus int
	}{
		{name: "new budget", created: true, wantStatus: http.StatusCreated},
		{name: "replaced budget", created: false, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := uuid.New()
			r, budgetRepo, cache := newBudgetRouter(userID)
			budgetRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*entity.Budget")).Return(tt.created, nil)
			cache.On("Invalidate", mock.Anything, userID).Return(nil)

			rec := serve(r, http.MethodPut, "/budgets", `{"category":"Food","amount":"250.5","month":"2024-03"}`)

			require.Equal(t, tt.wantStatus, rec.Code)
			var body dto.BudgetResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Food", body.Category)
			assert.Equal(t, "250.50", body.Amount)
			assert.Equal(t, "2024-03", body.Month)
		})
	}
}

func TestBudgetController_UpsertRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "amount not a number", body: `{"category":"Food","amount":"lots"}`, wantCode: "BDG-010002"},
		{name: "bad month", body: `{"category":"Food","amount":"10","month":"March"}`, wantCode: "BDG-010004"},
		{name: "zero amount", body: `{"category":"Food","amount":"0"}`, wantCode: "BDG-010002"},
		{name: "income category", body: `{"category":"Income","amount":"10"}`, wantCode: "BDG-010003"},
		{name: "missing category", body: `{"amount":"10"}`, wantCode: "BDG-010006"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, budgetRepo, _ := newBudgetRouter(uuid.New())

			rec := serve(r, http.MethodPut, "/budgets", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
			budgetRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestBudgetController_DeleteInvalidID(t *testing.T) {
	r, _, _ := newBudgetRouter(uuid.New())

	rec := serve(r, http.MethodDelete, "/budgets/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireUserID_Unauthenticated(t *testing.T) {
	c := NewStatsController(nil)
	r := gin.New()
	r.GET("/stats", c.GetMonthly)

	rec := serve(r, http.MethodGet, "/stats", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), string(domainerror.ErrCodeMissingToken))
}

type fakePinger struct{ err error }

func (f fakePinger) HealthCheck(context.Context) error { return f.err }

func TestHealthController_Check(t *testing.T) {
	tests := []struct {
		name       string
		pinger     DatabasePinger
		wantStatus int
		wantDB     string
	}{
		{name: "database up", pinger: fakePinger{}, wantStatus: http.StatusOK, wantDB: "connected"},
		{name: "database down", pinger: fakePinger{err: errors.New("timeout")}, wantStatus: http.StatusServiceUnavailable, wantDB: "disconnected"},
		{name: "no database", pinger: nil, wantStatus: http.StatusServiceUnavailable, wantDB: "disconnected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthController(tt.pinger).Check)

			rec := serve(r, http.MethodGet, "/health", "")

			require.Equal(t, tt.wantStatus, rec.Code)
			var body HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantDB, body.Database)
		})
	}
}
