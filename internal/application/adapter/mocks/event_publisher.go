package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/manjeet0505/Expense/internal/application/adapter"
)

// EventPublisher is a mock of adapter.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

var _ adapter.EventPublisher = (*EventPublisher)(nil)

func (m *EventPublisher) PublishTransactionRecorded(ctx context.Context, event adapter.TransactionRecordedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
