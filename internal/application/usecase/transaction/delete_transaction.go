package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/application/adapter"
)

type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

type DeleteTransactionOutput struct {
	Success bool
}

// DeleteTransactionUseCase soft-deletes a transaction owned by the caller.
type DeleteTransactionUseCase struct {
	repo    adapter.TransactionRepository
	effects writeEffects
}

func NewDeleteTransactionUseCase(
	repo adapter.TransactionRepository,
	statsCache adapter.StatsCache,
	publisher adapter.EventPublisher,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{repo: repo, effects: writeEffects{statsCache: statsCache, publisher: publisher}}
}

func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	txn, err := findOwnedTransaction(ctx, uc.repo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, txn.ID); err != nil {
		return nil, fmt.Errorf("deleting transaction %s: %w", txn.ID, err)
	}

	// Less spending never enters the alert band, so no event is published.
	uc.effects.afterWrite(ctx, txn, false)
	return &DeleteTransactionOutput{Success: true}, nil
}
