// Package category contains category-related use cases.
package category

import (
	"context"

	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	Kind *entity.CategoryKind // Optional filter by kind
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []CategoryOutput
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	Name       entity.Category
	Kind       entity.CategoryKind
	Budgetable bool
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct{}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase() *ListCategoriesUseCase {
	return &ListCategoriesUseCase{}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(_ context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	if input.Kind != nil && !input.Kind.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryKind,
			"kind must be expense or income",
			domainerror.ErrInvalidCategoryKind,
		)
	}

	output := &ListCategoriesOutput{
		Categories: make([]CategoryOutput, 0, len(entity.Categories())),
	}

	for _, c := range entity.Categories() {
		if input.Kind != nil && c.Kind() != *input.Kind {
			continue
		}
		output.Categories = append(output.Categories, CategoryOutput{
			Name:       c,
			Kind:       c.Kind(),
			Budgetable: c.Budgetable(),
		})
	}

	return output, nil
}
