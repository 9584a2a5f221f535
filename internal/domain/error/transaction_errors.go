package error

import "errors"

// Transaction errors.
var (
	ErrTransactionNotFound              = errors.New("transaction not found")
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")
	ErrInvalidTransactionType           = errors.New("invalid transaction type")
	ErrInvalidTransactionDate           = errors.New("invalid transaction date")
	ErrInvalidTransactionAmount         = errors.New("invalid transaction amount")
	ErrInvalidTransactionCategory       = errors.New("invalid category")
	ErrInvalidPaymentMethod             = errors.New("invalid payment method")
	ErrTooManyTags                      = errors.New("too many tags or tag too long")
	ErrDescriptionTooLong               = errors.New("description too long")
	ErrNotesTooLong                     = errors.New("notes too long")
	ErrDescriptionRequired              = errors.New("description is required")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidTxnCategory       TransactionErrorCode = "TXN-010006"
	ErrCodeInvalidPaymentMethod     TransactionErrorCode = "TXN-010007"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010008"
	ErrCodeNotesTooLong             TransactionErrorCode = "TXN-010009"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010010"
	ErrCodeTooManyTags              TransactionErrorCode = "TXN-010011"
)

type TransactionError = CodedError[TransactionErrorCode]

// NewTransactionError creates a new TransactionError.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return coded(code, message, err)
}
