package dto

import "github.com/manjeet0505/Expense/internal/application/usecase/category"

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Budgetable bool   `json:"budgetable"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryListResponse converts a ListCategoriesOutput to CategoryListResponse.
func ToCategoryListResponse(output *category.ListCategoriesOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategoryResponse{
			Name:       c.Name.String(),
			Kind:       string(c.Kind),
			Budgetable: c.Budgetable,
		}
	}
	return CategoryListResponse{Categories: categories}
}
