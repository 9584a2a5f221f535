package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manjeet0505/Expense/internal/application/usecase/transaction"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/dto"
)

// TransactionUseCases groups the use cases behind /transactions.
type TransactionUseCases struct {
	List   *transaction.ListTransactionsUseCase
	Recent *transaction.GetRecentTransactionsUseCase
	Create *transaction.CreateTransactionUseCase
	Update *transaction.UpdateTransactionUseCase
	Delete *transaction.DeleteTransactionUseCase
}

// TransactionController handles transaction endpoints.
type TransactionController struct {
	uc TransactionUseCases
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(uc TransactionUseCases) *TransactionController {
	return &TransactionController{uc: uc}
}

// List handles GET /transactions. Unparseable paging values fall back to the defaults.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		UserID:   userID,
		Search:   ctx.Query("search"),
		Category: optional[entity.Category](ctx.Query("category")),
		Type:     optional[entity.TransactionType](ctx.Query("type")),
	}
	if input.StartDate, ok = queryDate(ctx, "startDate"); !ok {
		return
	}
	if input.EndDate, ok = queryDate(ctx, "endDate"); !ok {
		return
	}
	input.Page, _ = strconv.Atoi(ctx.Query("page"))
	input.Limit, _ = strconv.Atoi(ctx.Query("limit"))

	out, err := c.uc.List.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(out))
}

// Recent handles GET /transactions/recent.
func (c *TransactionController) Recent(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	txns, err := c.uc.Recent.Execute(ctx.Request.Context(), transaction.GetRecentTransactionsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.RecentTransactionsResponse{Transactions: dto.ToTransactionResponses(txns)})
}

// Create handles POST /transactions. The date defaults to today.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if !bindTransaction(ctx, &req) {
		return
	}
	amount, ok := bodyAmount(ctx, &req.Amount)
	if !ok {
		return
	}
	date, ok := bodyDate(ctx, optional[string](req.Date))
	if !ok {
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:        userID,
		Description:   req.Description,
		Amount:        *amount,
		Type:          entity.TransactionType(req.Type),
		Category:      entity.Category(req.Category),
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		Tags:          req.Tags,
		Notes:         req.Notes,
	}
	if date != nil {
		input.Date = *date
	}

	out, err := c.uc.Create.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(out.Transaction))
}

// Update handles PUT /transactions/:id. Omitted fields are kept.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := transactionID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if !bindTransaction(ctx, &req) {
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: id,
		UserID:        userID,
		Description:   req.Description,
		Type:          convert[string, entity.TransactionType](req.Type),
		Category:      convert[string, entity.Category](req.Category),
		PaymentMethod: convert[string, entity.PaymentMethod](req.PaymentMethod),
		Tags:          req.Tags,
		Notes:         req.Notes,
	}
	if input.Date, ok = bodyDate(ctx, req.Date); !ok {
		return
	}
	if input.Amount, ok = bodyAmount(ctx, req.Amount); !ok {
		return
	}

	out, err := c.uc.Update.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(out.Transaction))
}

// Delete handles DELETE /transactions/:id.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := transactionID(ctx)
	if !ok {
		return
	}

	_, err := c.uc.Delete.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{TransactionID: id, UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func bindTransaction(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingTransactionFields), err)
		return false
	}
	return true
}

func transactionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid transaction ID format", "", nil)
		return uuid.Nil, false
	}
	return id, true
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(ctx *gin.Context, name string) (*time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	date, err := valueobject.ParseDate(raw)
	if err != nil {
		badRequest(ctx, "Invalid "+name+" format. Use YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionDate), err)
		return nil, false
	}
	return &date, true
}

func bodyDate(ctx *gin.Context, raw *string) (*time.Time, bool) {
	if raw == nil {
		return nil, true
	}
	date, err := valueobject.ParseDate(*raw)
	if err != nil {
		badRequest(ctx, "Invalid date format. Use YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionDate), err)
		return nil, false
	}
	return &date, true
}

// bodyAmount parses a decimal string without going through float64.
func bodyAmount(ctx *gin.Context, raw *string) (*decimal.Decimal, bool) {
	if raw == nil {
		return nil, true
	}
	amount, err := decimal.NewFromString(*raw)
	if err != nil {
		badRequest(ctx, "Amount must be a decimal number", string(domainerror.ErrCodeInvalidTransactionAmount), err)
		return nil, false
	}
	return &amount, true
}

// optional returns nil for an empty string.
func optional[T ~string](raw string) *T {
	if raw == "" {
		return nil
	}
	v := T(raw)
	return &v
}

func convert[S, T ~string](raw *S) *T {
	if raw == nil {
		return nil
	}
	v := T(*raw)
	return &v
}
