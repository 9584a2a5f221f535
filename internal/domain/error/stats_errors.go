package error

import "errors"

// Stats domain errors.
var (
	// ErrInvalidStatsInput is returned when the aggregator receives malformed input.
	ErrInvalidStatsInput = errors.New("invalid input")

	// ErrNegativeBudgetAmount is returned when a budget carries a negative amount.
	ErrNegativeBudgetAmount = errors.New("budget amount must not be negative")

	// ErrNegativeTransactionAmount is returned when a transaction carries a negative amount.
	ErrNegativeTransactionAmount = errors.New("transaction amount must not be negative")

	// ErrUnnormalizableDate is returned when a date cannot be placed in a calendar month.
	ErrUnnormalizableDate = errors.New("date cannot be normalized to a calendar month")

	// ErrStatsSourceUnavailable is returned when transactions or budgets cannot be loaded.
	ErrStatsSourceUnavailable = errors.New("statistics source unavailable")
)

// StatsErrorCode defines error codes for stats errors.
// Format: STA-XXYYYY where XX is category and YYYY is specific error.
type StatsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeNegativeBudgetAmount      StatsErrorCode = "STA-010001"
	ErrCodeNegativeTransactionAmount StatsErrorCode = "STA-010002"
	ErrCodeUnnormalizableDate        StatsErrorCode = "STA-010003"
	ErrCodeUnknownCategory           StatsErrorCode = "STA-010004"
	ErrCodeUnknownTransactionType    StatsErrorCode = "STA-010005"
	ErrCodeInvalidReferenceDate      StatsErrorCode = "STA-010006"

	// Upstream errors (98XXXX)
	ErrCodeStatsSourceUnavailable StatsErrorCode = "STA-980001"
)

type StatsError = CodedError[StatsErrorCode]

// NewStatsError creates a new StatsError.
func NewStatsError(code StatsErrorCode, message string, err error) *StatsError {
	return coded(code, message, err)
}

// IsInvalidStatsInput reports whether err is an aggregator input validation failure.
func IsInvalidStatsInput(err error) bool {
	var statsErr *StatsError
	if !errors.As(err, &statsErr) {
		return false
	}
	return statsErr.Code != ErrCodeStatsSourceUnavailable
}
