package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrInvalidBudgetAmount is returned when the budget amount is zero or negative.
	ErrInvalidBudgetAmount = errors.New("budget amount must be greater than zero")

	// ErrInvalidBudgetCategory is returned when the category cannot carry a budget.
	ErrInvalidBudgetCategory = errors.New("invalid budget category")

	// ErrBudgetNotesTooLong is returned when the budget notes exceed the maximum length.
	ErrBudgetNotesTooLong = errors.New("budget notes too long")

	// ErrUnauthorizedBudgetAccess is returned when user is not authorized to access a budget.
	ErrUnauthorizedBudgetAccess = errors.New("unauthorized access to budget")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNotFound           BudgetErrorCode = "BDG-010001"
	ErrCodeInvalidBudgetAmount      BudgetErrorCode = "BDG-010002"
	ErrCodeInvalidBudgetCategory    BudgetErrorCode = "BDG-010003"
	ErrCodeInvalidBudgetMonth       BudgetErrorCode = "BDG-010004"
	ErrCodeUnauthorizedBudgetAccess BudgetErrorCode = "BDG-010005"
	ErrCodeMissingBudgetFields      BudgetErrorCode = "BDG-010006"
	ErrCodeBudgetNotesTooLong       BudgetErrorCode = "BDG-010007"
)

type BudgetError = CodedError[BudgetErrorCode]

// NewBudgetError creates a new BudgetError.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return coded(code, message, err)
}
