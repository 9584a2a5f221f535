package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

type CreateTransactionInput struct {
	UserID        uuid.UUID
	Date          time.Time // Optional, defaults to today
	Description   string
	Amount        decimal.Decimal
	Type          entity.TransactionType
	Category      entity.Category
	PaymentMethod entity.PaymentMethod // Optional, defaults to Cash
	Tags          []string
	Notes         string
}

type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase records a new transaction and announces it.
type CreateTransactionUseCase struct {
	repo    adapter.TransactionRepository
	effects writeEffects
}

func NewCreateTransactionUseCase(
	repo adapter.TransactionRepository,
	statsCache adapter.StatsCache,
	publisher adapter.EventPublisher,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{repo: repo, effects: writeEffects{statsCache: statsCache, publisher: publisher}}
}

// Execute validates input field by field, reporting the first failure.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	for _, err := range []error{
		validated(&input.Description, validateDescription),
		validated(&input.Amount, checked(validateAmount)),
		validated(&input.Type, checked(validateType)),
		validated(&input.Category, checked(validateCategory)),
		validated(&input.PaymentMethod, validatePaymentMethod),
		validated(&input.Notes, checked(validateNotes)),
		validated(&input.Tags, normalizeTags),
	} {
		if err != nil {
			return nil, err
		}
	}
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}

	txn := entity.NewTransaction(
		input.UserID,
		valueobject.CalendarDate(input.Date),
		input.Description,
		input.Amount,
		input.Type,
		input.Category,
		input.PaymentMethod,
		input.Tags,
		input.Notes,
	)
	if err := uc.repo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("saving transaction: %w", err)
	}
	uc.effects.afterWrite(ctx, txn, true)

	return &CreateTransactionOutput{Transaction: txn}, nil
}
