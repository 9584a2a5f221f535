package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjeet0505/Expense/internal/application/usecase/stats"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/dto"
)

// StatsController serves the monthly statistics.
type StatsController struct {
	getMonthlyStatsUseCase *stats.GetMonthlyStatsUseCase
}

// NewStatsController creates a new stats controller instance.
func NewStatsController(getMonthlyStatsUseCase *stats.GetMonthlyStatsUseCase) *StatsController {
	return &StatsController{getMonthlyStatsUseCase: getMonthlyStatsUseCase}
}

// GetMonthly handles GET /stats?date=YYYY-MM-DD requests. The date selects its
// calendar month and defaults to today.
func (c *StatsController) GetMonthly(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := stats.GetMonthlyStatsInput{UserID: userID}
	if raw := ctx.Query("date"); raw != "" {
		date, err := valueobject.ParseDate(raw)
		if err != nil {
			badRequest(ctx, "Invalid date format. Use YYYY-MM-DD", string(domainerror.ErrCodeInvalidReferenceDate), err)
			return
		}
		input.ReferenceDate = date
	}

	output, err := c.getMonthlyStatsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyStatsResponse(output.Stats))
}
