package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/domain/entity"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// TransactionRecordedEvent is emitted after a transaction is created or updated.
type TransactionRecordedEvent struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	Type          entity.TransactionType
	Category      entity.Category
	Month         valueobject.Month
}

// EventPublisher publishes domain events to other processes.
type EventPublisher interface {
	// PublishTransactionRecorded announces a new or changed transaction.
	PublishTransactionRecorded(ctx context.Context, event TransactionRecordedEvent) error
}
