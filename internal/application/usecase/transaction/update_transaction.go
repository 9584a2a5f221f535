// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

// UpdateTransactionInput carries a partial update; nil fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Date          *time.Time
	Description   *string
	Amount        *decimal.Decimal
	Type          *entity.TransactionType
	Category      *entity.Category
	PaymentMethod *entity.PaymentMethod
	Tags          *[]string
	Notes         *string
}

type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

type UpdateTransactionUseCase struct {
	repo    adapter.TransactionRepository
	effects writeEffects
}

func NewUpdateTransactionUseCase(
	repo adapter.TransactionRepository,
	statsCache adapter.StatsCache,
	publisher adapter.EventPublisher,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{repo: repo, effects: writeEffects{statsCache: statsCache, publisher: publisher}}
}

// Execute applies the non-nil fields of input, validating each, and saves the
// transaction only when all of them pass.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	txn, err := findOwnedTransaction(ctx, uc.repo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	for _, err := range []error{
		patch(input.Date, validateDate, &txn.Date),
		patch(input.Description, validateDescription, &txn.Description),
		patch(input.Amount, checked(validateAmount), &txn.Amount),
		patch(input.Type, checked(validateType), &txn.Type),
		patch(input.Category, checked(validateCategory), &txn.Category),
		patch(input.PaymentMethod, validatePaymentMethod, &txn.PaymentMethod),
		patch(input.Tags, normalizeTags, &txn.Tags),
		patch(input.Notes, checked(validateNotes), &txn.Notes),
	} {
		if err != nil {
			return nil, err
		}
	}
	txn.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("saving transaction %s: %w", txn.ID, err)
	}
	uc.effects.afterWrite(ctx, txn, true)

	return &UpdateTransactionOutput{Transaction: txn}, nil
}

// patch validates *value into *dst when value is set.
func patch[T any](value *T, validate func(T) (T, error), dst *T) error {
	if value == nil {
		return nil
	}
	v, err := validate(*value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// validated is patch in place.
func validated[T any](v *T, validate func(T) (T, error)) error {
	return patch(v, validate, v)
}

func checked[T any](validate func(T) error) func(T) (T, error) {
	return func(v T) (T, error) { return v, validate(v) }
}

// findOwnedTransaction loads a transaction and checks it belongs to userID.
func findOwnedTransaction(
	ctx context.Context,
	repo adapter.TransactionRepository,
	transactionID, userID uuid.UUID,
) (*entity.Transaction, error) {
	txn, err := repo.FindByID(ctx, transactionID)
	switch {
	case errors.Is(err, domainerror.ErrTransactionNotFound):
		return nil, domainerror.NewTransactionError(domainerror.ErrCodeTransactionNotFound, "transaction not found", err)
	case err != nil:
		return nil, fmt.Errorf("loading transaction %s: %w", transactionID, err)
	case txn.UserID != userID:
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}
	return txn, nil
}
