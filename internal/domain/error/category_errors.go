package error

import "errors"

// Category domain errors.
var (
	// ErrInvalidCategoryKind is returned when a kind filter is neither expense nor income.
	ErrInvalidCategoryKind = errors.New("invalid category kind")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCategoryKind CategoryErrorCode = "CAT-010001"
)

type CategoryError = CodedError[CategoryErrorCode]

// NewCategoryError creates a new CategoryError.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return coded(code, message, err)
}
