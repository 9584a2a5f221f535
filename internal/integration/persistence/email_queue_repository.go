package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/integration/persistence/model"
)

type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a gorm-backed email queue.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

func (r *emailQueueRepository) Enqueue(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error
}

// ClaimDue selects candidates and flips each with a conditional update, so a
// row another worker already claimed is skipped rather than sent twice.
func (r *emailQueueRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var candidates []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_attempt_at <= ?", entity.EmailStatusPending, now).
		Order("next_attempt_at ASC").
		Limit(limit).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	claimed := make([]*entity.EmailJob, 0, len(candidates))
	for i := range candidates {
		res := r.db.WithContext(ctx).
			Model(&model.EmailQueueModel{}).
			Where("id = ? AND status = ?", candidates[i].ID, entity.EmailStatusPending).
			Updates(map[string]any{
				"status":     string(entity.EmailStatusProcessing),
				"claimed_at": now,
			})
		if res.Error != nil {
			return claimed, res.Error
		}
		if res.RowsAffected == 0 {
			continue
		}
		job := candidates[i].ToEntity()
		job.Claim(now)
		claimed = append(claimed, job)
	}
	return claimed, nil
}

func (r *emailQueueRepository) Save(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}

func (r *emailQueueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	var row model.EmailQueueModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEmailJobNotFound
		}
		return nil, err
	}
	return row.ToEntity(), nil
}

func (r *emailQueueRepository) ListByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	var rows []model.EmailQueueModel
	if err := r.db.WithContext(ctx).
		Where("recipient_email = ?", email).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	jobs := make([]*entity.EmailJob, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, rows[i].ToEntity())
	}
	return jobs, nil
}

func (r *emailQueueRepository) ReleaseStale(ctx context.Context, claimedBefore time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.EmailQueueModel{}).
		Where("status = ? AND claimed_at < ?", entity.EmailStatusProcessing, claimedBefore).
		Updates(map[string]any{
			"status":     string(entity.EmailStatusPending),
			"claimed_at": nil,
		})
	return res.RowsAffected, res.Error
}

func (r *emailQueueRepository) PurgeSent(ctx context.Context, completedBefore time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status = ? AND completed_at < ?", entity.EmailStatusSent, completedBefore).
		Delete(&model.EmailQueueModel{})
	return res.RowsAffected, res.Error
}
