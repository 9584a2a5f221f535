package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/dto"
)

// retryAfterSeconds is advertised on 503 responses.
const retryAfterSeconds = "5"

// handleError writes the HTTP response for an error returned by a use case.
// Coded domain errors keep their code; anything else is a 500.
func handleError(ctx *gin.Context, err error) {
	status, code, message := classifyError(err)
	if status == http.StatusServiceUnavailable {
		ctx.Header("Retry-After", retryAfterSeconds)
	}
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"error", err,
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"status", status,
		)
	}
	ctx.JSON(status, dto.ErrorResponse{Error: message, Code: code})
}

func classifyError(err error) (int, string, string) {
	var (
		authErr  *domainerror.AuthError
		txnErr   *domainerror.TransactionError
		bdgErr   *domainerror.BudgetError
		catErr   *domainerror.CategoryError
		statsErr *domainerror.StatsError
		dashErr  *domainerror.DashboardError
		emailErr *domainerror.EmailError
	)

	switch {
	case errors.As(err, &authErr):
		return authStatus(authErr.Code), string(authErr.Code), authErr.Message
	case errors.As(err, &txnErr):
		return transactionStatus(txnErr.Code), string(txnErr.Code), txnErr.Message
	case errors.As(err, &bdgErr):
		return budgetStatus(bdgErr.Code), string(bdgErr.Code), bdgErr.Message
	case errors.As(err, &catErr):
		return http.StatusBadRequest, string(catErr.Code), catErr.Message
	case errors.As(err, &statsErr):
		return statsStatus(statsErr.Code), string(statsErr.Code), statsErr.Message
	case errors.As(err, &dashErr):
		return dashboardStatus(dashErr.Code), string(dashErr.Code), dashErr.Message
	case errors.As(err, &emailErr):
		return emailStatus(emailErr.Code), string(emailErr.Code), emailErr.Message
	}
	return http.StatusInternalServerError, "", "An internal error occurred"
}

func authStatus(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeTermsNotAccepted,
		domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidResetToken,
		domainerror.ErrCodeExpiredResetToken,
		domainerror.ErrCodeInvalidConfirmation,
		domainerror.ErrCodeInvalidProfileName,
		domainerror.ErrCodeInvalidImageURL:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken,
		domainerror.ErrCodeRefreshTokenReused,
		domainerror.ErrCodeIncorrectPassword:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func transactionStatus(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction:
		return http.StatusForbidden
	default:
		// Every other TXN code is a validation failure.
		return http.StatusBadRequest
	}
}

func budgetStatus(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedBudgetAccess:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func statsStatus(code domainerror.StatsErrorCode) int {
	switch code {
	case domainerror.ErrCodeStatsSourceUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeInvalidReferenceDate:
		return http.StatusBadRequest
	default:
		// Stored records the aggregator refuses.
		return http.StatusUnprocessableEntity
	}
}

func dashboardStatus(code domainerror.DashboardErrorCode) int {
	if strings.HasPrefix(string(code), "DSH-01") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func emailStatus(code domainerror.EmailErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidContactMessage:
		return http.StatusBadRequest
	case domainerror.ErrCodeEmailQueueFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// badRequest writes a 400 for a request that failed binding or parsing.
func badRequest(ctx *gin.Context, message, code string, err error) {
	response := dto.ErrorResponse{Error: message, Code: code}
	if err != nil {
		response.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, response)
}
