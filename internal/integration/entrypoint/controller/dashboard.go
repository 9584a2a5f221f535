package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/manjeet0505/Expense/internal/application/usecase/dashboard"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getTrendsUseCase            *dashboard.GetTrendsUseCase
	getCategoryBreakdownUseCase *dashboard.GetCategoryBreakdownUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getTrendsUseCase *dashboard.GetTrendsUseCase,
	getCategoryBreakdownUseCase *dashboard.GetCategoryBreakdownUseCase,
) *DashboardController {
	return &DashboardController{
		getTrendsUseCase:            getTrendsUseCase,
		getCategoryBreakdownUseCase: getCategoryBreakdownUseCase,
	}
}

// GetTrends handles GET /dashboard/trends?months=N requests.
func (c *DashboardController) GetTrends(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := dashboard.GetTrendsInput{UserID: userID}
	if raw := ctx.Query("months"); raw != "" {
		months, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(ctx, "months must be a number", string(domainerror.ErrCodeInvalidMonthsRange), err)
			return
		}
		input.Months = months
	}

	output, err := c.getTrendsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendsResponse(output))
}

// GetCategoryBreakdown handles GET /dashboard/category-breakdown?month=YYYY-MM requests.
func (c *DashboardController) GetCategoryBreakdown(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	month, ok := parseOptionalMonth(ctx, string(domainerror.ErrCodeInvalidMonthFormat))
	if !ok {
		return
	}

	output, err := c.getCategoryBreakdownUseCase.Execute(ctx.Request.Context(), dashboard.GetCategoryBreakdownInput{
		UserID: userID,
		Month:  month,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}
