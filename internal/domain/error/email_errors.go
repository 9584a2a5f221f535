package error

import "errors"

var (
	ErrInvalidTemplate       = errors.New("invalid email template")
	ErrEmailJobNotFound      = errors.New("email job not found")
	ErrInvalidContactMessage = errors.New("invalid contact message")
)

// EmailErrorCode identifies an email failure as EMAIL-XXYYYY.
type EmailErrorCode string

const (
	// Queue (01).
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"

	// Delivery (02). The worker retries temporary failures only.
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	// Templates (03).
	ErrCodeInvalidTemplate EmailErrorCode = "EMAIL-030001"

	// Contact form (04).
	ErrCodeInvalidContactMessage EmailErrorCode = "EMAIL-040001"
)

type EmailError = CodedError[EmailErrorCode]

// NewEmailError creates a new EmailError.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return coded(code, message, err)
}
