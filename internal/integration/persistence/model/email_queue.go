package model

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/domain/entity"
)

// EmailQueueModel is a row of email_queue.
type EmailQueueModel struct {
	ID                uuid.UUID    `gorm:"type:uuid;primaryKey"`
	TemplateType      string       `gorm:"type:varchar(50);not null"`
	RecipientEmail    string       `gorm:"type:varchar(255);not null;index"`
	RecipientName     string       `gorm:"type:varchar(255)"`
	ReplyTo           string       `gorm:"type:varchar(255)"`
	Subject           string       `gorm:"type:varchar(500);not null"`
	TemplateData      string       `gorm:"type:jsonb;not null;default:'{}'"`
	Status            string       `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_queue_due,priority:1"`
	Attempts          int          `gorm:"not null;default:0"`
	MaxAttempts       int          `gorm:"not null"`
	LastError         string       `gorm:"type:text"`
	ProviderMessageID string       `gorm:"type:varchar(100)"`
	CreatedAt         time.Time    `gorm:"not null"`
	NextAttemptAt     time.Time    `gorm:"not null;index:idx_email_queue_due,priority:2"`
	ClaimedAt         sql.NullTime `gorm:"type:timestamptz"`
	CompletedAt       sql.NullTime `gorm:"type:timestamptz"`
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts the row to a domain EmailJob. Undecodable template data
// is logged and replaced with an empty map so the worker can fail the job.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	data := map[string]string{}
	if m.TemplateData != "" {
		if err := json.Unmarshal([]byte(m.TemplateData), &data); err != nil {
			slog.Warn("Undecodable email template data", "error", err, "job_id", m.ID)
			data = map[string]string{}
		}
	}

	return &entity.EmailJob{
		ID:                m.ID,
		TemplateType:      entity.EmailTemplateType(m.TemplateType),
		RecipientEmail:    m.RecipientEmail,
		RecipientName:     m.RecipientName,
		ReplyTo:           m.ReplyTo,
		Subject:           m.Subject,
		TemplateData:      data,
		Status:            entity.EmailStatus(m.Status),
		Attempts:          m.Attempts,
		MaxAttempts:       m.MaxAttempts,
		LastError:         m.LastError,
		ProviderMessageID: m.ProviderMessageID,
		CreatedAt:         m.CreatedAt,
		NextAttemptAt:     m.NextAttemptAt,
		ClaimedAt:         timePtr(m.ClaimedAt),
		CompletedAt:       timePtr(m.CompletedAt),
	}
}

// EmailQueueModelFromEntity converts a domain EmailJob to its row.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	data, err := json.Marshal(job.TemplateData)
	if err != nil || job.TemplateData == nil {
		data = []byte("{}")
	}

	return &EmailQueueModel{
		ID:                job.ID,
		TemplateType:      string(job.TemplateType),
		RecipientEmail:    job.RecipientEmail,
		RecipientName:     job.RecipientName,
		ReplyTo:           job.ReplyTo,
		Subject:           job.Subject,
		TemplateData:      string(data),
		Status:            string(job.Status),
		Attempts:          job.Attempts,
		MaxAttempts:       job.MaxAttempts,
		LastError:         job.LastError,
		ProviderMessageID: job.ProviderMessageID,
		CreatedAt:         job.CreatedAt,
		NextAttemptAt:     job.NextAttemptAt,
		ClaimedAt:         nullTime(job.ClaimedAt),
		CompletedAt:       nullTime(job.CompletedAt),
	}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
