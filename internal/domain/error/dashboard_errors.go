package error

import "errors"

var ErrInvalidMonthsRange = errors.New("months must be between 1 and 24")

// DashboardErrorCode identifies a dashboard query failure as DSH-XXYYYY.
type DashboardErrorCode string

const (
	ErrCodeInvalidMonthsRange DashboardErrorCode = "DSH-010001"
	ErrCodeInvalidMonthFormat DashboardErrorCode = "DSH-010002"
)

type DashboardError = CodedError[DashboardErrorCode]

// NewDashboardError creates a new DashboardError.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return coded(code, message, err)
}
