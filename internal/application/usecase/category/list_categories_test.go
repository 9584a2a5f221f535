package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

func TestListCategories(t *testing.T) {
	uc := NewListCategoriesUseCase()

	t.Run("all categories in display order", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListCategoriesInput{})

		require.NoError(t, err)
		require.Len(t, out.Categories, len(entity.Categories()))
		assert.Equal(t, entity.CategoryFood, out.Categories[0].Name)
		for _, c := range out.Categories {
			assert.Equal(t, c.Name != entity.CategoryIncome, c.Budgetable, c.Name)
		}
	})

	t.Run("filter by kind", func(t *testing.T) {
		kind := entity.CategoryKindIncome

		out, err := uc.Execute(context.Background(), ListCategoriesInput{Kind: &kind})

		require.NoError(t, err)
		require.Len(t, out.Categories, 1)
		assert.Equal(t, entity.CategoryIncome, out.Categories[0].Name)
		assert.False(t, out.Categories[0].Budgetable)
	})

	t.Run("unknown kind", func(t *testing.T) {
		kind := entity.CategoryKind("savings")

		out, err := uc.Execute(context.Background(), ListCategoriesInput{Kind: &kind})

		require.Error(t, err)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, domainerror.ErrInvalidCategoryKind)
	})
}
