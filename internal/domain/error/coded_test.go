package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodedError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewBudgetError(ErrCodeBudgetNotFound, "budget not found", nil)
		assert.Equal(t, "budget not found", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})

	t.Run("wraps cause", func(t *testing.T) {
		err := NewAuthError(ErrCodeInvalidToken, "invalid token", ErrRefreshTokenReused)
		assert.Equal(t, "invalid token: invalid token: refresh token already used", err.Error())
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("codes stay distinct per area", func(t *testing.T) {
		wrapped := fmt.Errorf("loading: %w", NewDashboardError(ErrCodeInvalidMonthFormat, "bad month", nil))

		var dashErr *DashboardError
		require.ErrorAs(t, wrapped, &dashErr)
		assert.Equal(t, ErrCodeInvalidMonthFormat, dashErr.Code)

		var budgetErr *BudgetError
		assert.False(t, errors.As(wrapped, &budgetErr))
	})
}

func TestIsInvalidStatsInput(t *testing.T) {
	assert.True(t, IsInvalidStatsInput(NewStatsError(ErrCodeNegativeBudgetAmount, "negative", ErrNegativeBudgetAmount)))
	assert.False(t, IsInvalidStatsInput(NewStatsError(ErrCodeStatsSourceUnavailable, "down", ErrStatsSourceUnavailable)))
	assert.False(t, IsInvalidStatsInput(errors.New("plain")))
}
