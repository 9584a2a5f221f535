package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/application/adapter/mocks"
	"github.com/manjeet0505/Expense/internal/application/usecase/stats"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

type mockStatsReader struct {
	mock.Mock
}

func (m *mockStatsReader) Execute(ctx context.Context, input stats.GetMonthlyStatsInput) (*stats.GetMonthlyStatsOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*stats.GetMonthlyStatsOutput)
	return out, args.Error(1)
}

var march = valueobject.NewMonth(2024, time.March)

func TestUpsertBudget_Created(t *testing.T) {
	repo := &mocks.BudgetRepository{}
	cache := &mocks.StatsCache{}
	uc := NewUpsertBudgetUseCase(repo, cache)
	userID := uuid.New()

	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(b *entity.Budget) bool {
		return b.UserID == userID && b.Category == entity.CategoryFood && b.Month == march && b.Notes == "groceries"
	})).Return(true, nil)
	cache.On("Invalidate", mock.Anything, userID).Return(nil)

	out, err := uc.Execute(context.Background(), UpsertBudgetInput{
		UserID:   userID,
		Category: entity.CategoryFood,
		Amount:   decimal.NewFromInt(400),
		Month:    march,
		Notes:    " groceries ",
	})

	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, "400", out.Budget.Amount.String())
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestUpsertBudget_DefaultsToCurrentMonth(t *testing.T) {
	repo := &mocks.BudgetRepository{}
	cache := &mocks.StatsCache{}
	uc := NewUpsertBudgetUseCase(repo, cache)

	repo.On("Upsert", mock.Anything, mock.Anything).Return(false, nil)
	cache.On("Invalidate", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	out, err := uc.Execute(context.Background(), UpsertBudgetInput{
		UserID:   uuid.New(),
		Category: entity.CategoryBills,
		Amount:   decimal.NewFromInt(100),
	})

	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, valueobject.MonthOf(time.Now().UTC()), out.Budget.Month)
}

func TestUpsertBudget_Validation(t *testing.T) {
	tests := []struct {
		name     string
		input    UpsertBudgetInput
		wantCode domainerror.BudgetErrorCode
	}{
		{
			name:     "missing category",
			input:    UpsertBudgetInput{Amount: decimal.NewFromInt(10)},
			wantCode: domainerror.ErrCodeMissingBudgetFields,
		},
		{
			name:     "income cannot be budgeted",
			input:    UpsertBudgetInput{Category: entity.CategoryIncome, Amount: decimal.NewFromInt(10)},
			wantCode: domainerror.ErrCodeInvalidBudgetCategory,
		},
		{
			name:     "unknown category",
			input:    UpsertBudgetInput{Category: "Travel", Amount: decimal.NewFromInt(10)},
			wantCode: domainerror.ErrCodeInvalidBudgetCategory,
		},
		{
			name:     "zero amount",
			input:    UpsertBudgetInput{Category: entity.CategoryFood, Amount: decimal.Zero},
			wantCode: domainerror.ErrCodeInvalidBudgetAmount,
		},
		{
			name:     "negative amount",
			input:    UpsertBudgetInput{Category: entity.CategoryFood, Amount: decimal.NewFromInt(-1)},
			wantCode: domainerror.ErrCodeInvalidBudgetAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.BudgetRepository{}
			uc := NewUpsertBudgetUseCase(repo, &mocks.StatsCache{})

			_, err := uc.Execute(context.Background(), tt.input)

			var budgetErr *domainerror.BudgetError
			require.ErrorAs(t, err, &budgetErr)
			assert.Equal(t, tt.wantCode, budgetErr.Code)
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestListBudgets_AttachesTrackers(t *testing.T) {
	repo := &mocks.BudgetRepository{}
	reader := &mockStatsReader{}
	uc := NewListBudgetsUseCase(repo, reader)
	userID := uuid.New()

	food := entity.NewBudget(userID, entity.CategoryFood, decimal.NewFromInt(100), march, "")
	bills := entity.NewBudget(userID, entity.CategoryBills, decimal.NewFromInt(50), march, "")
	shopping := entity.NewBudget(userID, entity.CategoryShopping, decimal.NewFromInt(200), march, "")

	repo.On("FindByUser", mock.Anything, userID, adapter.BudgetFilter{Month: &march}).
		Return([]*entity.Budget{bills, food, shopping}, nil)
	reader.On("Execute", mock.Anything, stats.GetMonthlyStatsInput{UserID: userID, ReferenceDate: march.Start()}).
		Return(&stats.GetMonthlyStatsOutput{Stats: &valueobject.MonthlyStats{
			Month: march,
			SpentByCategory: map[string]decimal.Decimal{
				"Food":     decimal.NewFromInt(85),
				"Bills":    decimal.NewFromInt(60),
				"Shopping": decimal.NewFromInt(20),
			},
			BudgetTrackers: []valueobject.BudgetTracker{
				stats.TrackBudget(entity.CategoryBills, decimal.NewFromInt(50), decimal.NewFromInt(60)),
				stats.TrackBudget(entity.CategoryFood, decimal.NewFromInt(100), decimal.NewFromInt(85)),
			},
		}}, nil)

	out, err := uc.Execute(context.Background(), ListBudgetsInput{UserID: userID, Month: march})

	require.NoError(t, err)
	require.Len(t, out.Budgets, 3)
	assert.Equal(t, 3, out.Budgeted)
	assert.Equal(t, 1, out.Alerts)
	assert.Equal(t, 1, out.Over)

	shoppingStatus := out.Budgets[2]
	assert.Same(t, shopping, shoppingStatus.Budget)
	assert.Equal(t, "10.00", shoppingStatus.Tracker.PercentUsed.StringFixed(2))
	assert.False(t, shoppingStatus.Tracker.Alert)
}

func TestListBudgets_EmptySkipsStats(t *testing.T) {
	repo := &mocks.BudgetRepository{}
	reader := &mockStatsReader{}
	uc := NewListBudgetsUseCase(repo, reader)

	repo.On("FindByUser", mock.Anything, mock.Anything, mock.Anything).Return([]*entity.Budget{}, nil)

	out, err := uc.Execute(context.Background(), ListBudgetsInput{UserID: uuid.New(), Month: march})

	require.NoError(t, err)
	assert.Empty(t, out.Budgets)
	reader.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestListBudgets_StoreFailureIsUnavailable(t *testing.T) {
	repo := &mocks.BudgetRepository{}
	reader := &mockStatsReader{}
	uc := NewListBudgetsUseCase(repo, reader)
	storeErr := errors.New("connection refused")

	repo.On("FindByUser", mock.Anything, mock.Anything, mock.Anything).Return(nil, storeErr)

	out, err := uc.Execute(context.Background(), ListBudgetsInput{UserID: uuid.New(), Month: march})

	assert.Nil(t, out)
	var statsErr *domainerror.StatsError
	require.ErrorAs(t, err, &statsErr)
	assert.Equal(t, domainerror.ErrCodeStatsSourceUnavailable, statsErr.Code)
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, domainerror.IsInvalidStatsInput(err))
	reader.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestDeleteBudget(t *testing.T) {
	userID := uuid.New()
	owned := entity.NewBudget(userID, entity.CategoryFood, decimal.NewFromInt(100), march, "")

	t.Run("success", func(t *testing.T) {
		repo := &mocks.BudgetRepository{}
		cache := &mocks.StatsCache{}
		uc := NewDeleteBudgetUseCase(repo, cache)

		repo.On("FindByID", mock.Anything, owned.ID).Return(owned, nil)
		repo.On("Delete", mock.Anything, owned.ID).Return(nil)
		cache.On("Invalidate", mock.Anything, userID).Return(nil)

		require.NoError(t, uc.Execute(context.Background(), DeleteBudgetInput{BudgetID: owned.ID, UserID: userID}))
		repo.AssertExpectations(t)
	})

	t.Run("other owner", func(t *testing.T) {
		repo := &mocks.BudgetRepository{}
		uc := NewDeleteBudgetUseCase(repo, &mocks.StatsCache{})

		repo.On("FindByID", mock.Anything, owned.ID).Return(owned, nil)

		err := uc.Execute(context.Background(), DeleteBudgetInput{BudgetID: owned.ID, UserID: uuid.New()})

		require.ErrorIs(t, err, domainerror.ErrUnauthorizedBudgetAccess)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mocks.BudgetRepository{}
		uc := NewDeleteBudgetUseCase(repo, &mocks.StatsCache{})
		id := uuid.New()

		repo.On("FindByID", mock.Anything, id).Return(nil, domainerror.ErrBudgetNotFound)

		err := uc.Execute(context.Background(), DeleteBudgetInput{BudgetID: id, UserID: userID})

		var budgetErr *domainerror.BudgetError
		require.ErrorAs(t, err, &budgetErr)
		assert.Equal(t, domainerror.ErrCodeBudgetNotFound, budgetErr.Code)
	})
}
