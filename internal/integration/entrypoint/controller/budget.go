package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manjeet0505/Expense/internal/application/usecase/budget"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/dto"
)

// BudgetController handles monthly budget endpoints.
type BudgetController struct {
	listUseCase   *budget.ListBudgetsUseCase
	upsertUseCase *budget.UpsertBudgetUseCase
	deleteUseCase *budget.DeleteBudgetUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	listUseCase *budget.ListBudgetsUseCase,
	upsertUseCase *budget.UpsertBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
) *BudgetController {
	return &BudgetController{
		listUseCase:   listUseCase,
		upsertUseCase: upsertUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /budgets?month=YYYY-MM requests.
func (c *BudgetController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	month, ok := parseOptionalMonth(ctx, string(domainerror.ErrCodeInvalidBudgetMonth))
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetsInput{
		UserID: userID,
		Month:  month,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output))
}

// Upsert handles PUT /budgets requests: 201 when the budget is new, 200 when
// an existing one for the same category and month was replaced.
func (c *BudgetController) Upsert(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpsertBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingBudgetFields), err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		badRequest(ctx, "Amount must be a decimal number", string(domainerror.ErrCodeInvalidBudgetAmount), err)
		return
	}

	var month valueobject.Month
	if req.Month != "" {
		month, err = valueobject.ParseMonth(req.Month)
		if err != nil {
			badRequest(ctx, "Invalid month format. Use YYYY-MM", string(domainerror.ErrCodeInvalidBudgetMonth), err)
			return
		}
	}

	output, err := c.upsertUseCase.Execute(ctx.Request.Context(), budget.UpsertBudgetInput{
		UserID:   userID,
		Category: entity.Category(req.Category),
		Amount:   amount,
		Month:    month,
		Notes:    req.Notes,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToBudgetResponse(output.Budget))
}

// Delete handles DELETE /budgets/:id requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid budget ID format", "", nil)
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseOptionalMonth reads the month query parameter. A missing value yields
// the zero Month, which use cases treat as the current month.
func parseOptionalMonth(ctx *gin.Context, code string) (valueobject.Month, bool) {
	raw := ctx.Query("month")
	if raw == "" {
		return valueobject.Month{}, true
	}
	month, err := valueobject.ParseMonth(raw)
	if err != nil {
		badRequest(ctx, "Invalid month format. Use YYYY-MM", code, err)
		return valueobject.Month{}, false
	}
	return month, true
}
