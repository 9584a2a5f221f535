package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/manjeet0505/Expense/internal/application/adapter"
)

// EmailService is a mock of adapter.EmailService.
type EmailService struct {
	mock.Mock
}

var _ adapter.EmailService = (*EmailService)(nil)

func (m *EmailService) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *EmailService) QueueBudgetAlertEmail(ctx context.Context, input adapter.QueueBudgetAlertInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *EmailService) QueueContactMessage(ctx context.Context, input adapter.QueueContactMessageInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}
