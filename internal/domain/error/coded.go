// Package error defines domain-specific errors for the Expense Tracker application.
//
// Each area has its own code type. The codes are stable strings of the form
// PREFIX-XXYYYY, where XX is the area and YYYY the case, and handlers return
// them to clients verbatim.
package error

import "fmt"

// CodedError carries a stable code alongside the message and underlying cause.
type CodedError[C ~string] struct {
	Code    C
	Message string
	Err     error
}

func (e *CodedError[C]) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *CodedError[C]) Unwrap() error { return e.Err }

func coded[C ~string](code C, message string, err error) *CodedError[C] {
	return &CodedError[C]{Code: code, Message: message, Err: err}
}
