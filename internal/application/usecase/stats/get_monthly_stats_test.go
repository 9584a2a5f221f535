package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/application/adapter/mocks"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

func newTestUseCase() (*GetMonthlyStatsUseCase, *mocks.TransactionRepository, *mocks.BudgetRepository, *mocks.StatsCache) {
	txnRepo := &mocks.TransactionRepository{}
	budgetRepo := &mocks.BudgetRepository{}
	cache := &mocks.StatsCache{}
	return NewGetMonthlyStatsUseCase(txnRepo, budgetRepo, cache), txnRepo, budgetRepo, cache
}

func TestGetMonthlyStats_ComputesAndCaches(t *testing.T) {
	uc, txnRepo, budgetRepo, cache := newTestUseCase()

	userID := uuid.New()
	reference := date(2024, time.March, 20)
	march := valueobject.NewMonth(2024, time.March)

	cache.On("Get", mock.Anything, userID, march).Return(adapter.StatsLookup{Version: 7}, nil)
	txnRepo.On("FindByUserAndDateRange", mock.Anything, userID, date(2024, time.January, 1), date(2024, time.March, 31)).
		Return([]*entity.Transaction{
			newTxn(userID, date(2024, time.March, 5), "50", entity.TransactionTypeExpense, entity.CategoryFood),
			newTxn(userID, date(2024, time.March, 1), "2000", entity.TransactionTypeIncome, entity.CategoryIncome),
		}, nil)
	budgetRepo.On("FindByUser", mock.Anything, userID, adapter.BudgetFilter{Month: &march}).
		Return([]*entity.Budget{newBudget(userID, entity.CategoryFood, "60", march)}, nil)
	cache.On("Set", mock.Anything, userID, march, int64(7), mock.AnythingOfType("*valueobject.MonthlyStats")).Return(nil)

	out, err := uc.Execute(context.Background(), GetMonthlyStatsInput{UserID: userID, ReferenceDate: reference})

	require.NoError(t, err)
	assert.False(t, out.Cached)
	assert.Equal(t, "1950.00", out.Stats.Savings.StringFixed(2))
	require.Len(t, out.Stats.BudgetTrackers, 1)
	assert.True(t, out.Stats.BudgetTrackers[0].Alert)
	txnRepo.AssertExpectations(t)
	budgetRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestGetMonthlyStats_ServesFromCache(t *testing.T) {
	uc, txnRepo, budgetRepo, cache := newTestUseCase()

	userID := uuid.New()
	march := valueobject.NewMonth(2024, time.March)
	cached := &valueobject.MonthlyStats{Month: march}

	cache.On("Get", mock.Anything, userID, march).Return(adapter.StatsLookup{Stats: cached, Version: 1}, nil)

	out, err := uc.Execute(context.Background(), GetMonthlyStatsInput{UserID: userID, ReferenceDate: date(2024, time.March, 2)})

	require.NoError(t, err)
	assert.True(t, out.Cached)
	assert.Same(t, cached, out.Stats)
	txnRepo.AssertNotCalled(t, "FindByUserAndDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	budgetRepo.AssertNotCalled(t, "FindByUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetMonthlyStats_CacheFailureFallsThrough(t *testing.T) {
	uc, txnRepo, budgetRepo, cache := newTestUseCase()

	userID := uuid.New()
	march := valueobject.NewMonth(2024, time.March)

	cache.On("Get", mock.Anything, userID, march).Return(adapter.StatsLookup{}, errors.New("redis down"))
	txnRepo.On("FindByUserAndDateRange", mock.Anything, userID, mock.Anything, mock.Anything).Return([]*entity.Transaction{}, nil)
	budgetRepo.On("FindByUser", mock.Anything, userID, mock.Anything).Return([]*entity.Budget{}, nil)

	out, err := uc.Execute(context.Background(), GetMonthlyStatsInput{UserID: userID, ReferenceDate: date(2024, time.March, 2)})

	require.NoError(t, err)
	assert.True(t, out.Stats.TotalIncome.IsZero())
	assert.Empty(t, out.Stats.BudgetTrackers)
	// Without a known version the result is not cached.
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetMonthlyStats_StoreFailure(t *testing.T) {
	uc, txnRepo, budgetRepo, cache := newTestUseCase()

	userID := uuid.New()
	storeErr := errors.New("connection refused")

	cache.On("Get", mock.Anything, userID, mock.Anything).Return(adapter.StatsLookup{}, nil)
	txnRepo.On("FindByUserAndDateRange", mock.Anything, userID, mock.Anything, mock.Anything).Return(nil, storeErr)
	budgetRepo.On("FindByUser", mock.Anything, userID, mock.Anything).Return([]*entity.Budget{}, nil)

	out, err := uc.Execute(context.Background(), GetMonthlyStatsInput{UserID: userID, ReferenceDate: date(2024, time.March, 2)})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, storeErr)

	var statsErr *domainerror.StatsError
	require.ErrorAs(t, err, &statsErr)
	assert.Equal(t, domainerror.ErrCodeStatsSourceUnavailable, statsErr.Code)
	assert.False(t, domainerror.IsInvalidStatsInput(err))
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetMonthlyStats_InvalidStoredData(t *testing.T) {
	uc, txnRepo, budgetRepo, cache := newTestUseCase()

	userID := uuid.New()
	march := valueobject.NewMonth(2024, time.March)

	cache.On("Get", mock.Anything, userID, march).Return(adapter.StatsLookup{}, nil)
	txnRepo.On("FindByUserAndDateRange", mock.Anything, userID, mock.Anything, mock.Anything).Return([]*entity.Transaction{}, nil)
	budgetRepo.On("FindByUser", mock.Anything, userID, mock.Anything).
		Return([]*entity.Budget{newBudget(userID, entity.CategoryFood, "-10", march)}, nil)

	_, err := uc.Execute(context.Background(), GetMonthlyStatsInput{UserID: userID, ReferenceDate: date(2024, time.March, 2)})

	require.Error(t, err)
	assert.True(t, domainerror.IsInvalidStatsInput(err))
	assert.ErrorIs(t, err, domainerror.ErrNegativeBudgetAmount)
}
