package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/domain/entity"
)

// EmailQueueRepository persists outbound emails between enqueue and delivery.
type EmailQueueRepository interface {
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// ClaimDue moves up to limit due pending jobs to processing and returns
	// them, oldest first. A job is handed to at most one caller.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	Save(ctx context.Context, job *entity.EmailJob) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)

	ListByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error)

	// ReleaseStale returns jobs claimed before the cutoff to pending.
	ReleaseStale(ctx context.Context, claimedBefore time.Time) (int64, error)

	// PurgeSent deletes sent jobs completed before the cutoff.
	PurgeSent(ctx context.Context, completedBefore time.Time) (int64, error)
}
