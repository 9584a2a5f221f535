package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjeet0505/Expense/internal/application/usecase/category"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase *category.ListCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(listUseCase *category.ListCategoriesUseCase) *CategoryController {
	return &CategoryController{listUseCase: listUseCase}
}

// List handles GET /categories requests, optionally filtered by ?kind=expense|income.
func (c *CategoryController) List(ctx *gin.Context) {
	input := category.ListCategoriesInput{}
	if kind := ctx.Query("kind"); kind != "" {
		k := entity.CategoryKind(kind)
		input.Kind = &k
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output))
}
