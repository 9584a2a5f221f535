// Package email provides email sending functionality.
package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/integration/email/templates"
)

// Worker drains the email queue through an EmailSender.
type Worker struct {
	queue    adapter.EmailQueueRepository
	sender   adapter.EmailSender
	renderer *templates.Renderer
	cfg      WorkerConfig
	now      func() time.Time
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval    time.Duration
	BatchSize       int
	CleanupInterval time.Duration
	// RetentionDays is how long sent jobs are kept. Zero disables cleanup.
	RetentionDays int
	// ClaimTimeout releases jobs left in processing by a crashed worker.
	// Zero disables the release.
	ClaimTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval:    5 * time.Second,
		BatchSize:       10,
		CleanupInterval: 24 * time.Hour,
		RetentionDays:   30,
		ClaimTimeout:    10 * time.Minute,
	}
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, cfg WorkerConfig) *Worker {
	return &Worker{
		queue:    queue,
		sender:   sender,
		renderer: renderer,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start polls the queue until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.cfg.PollInterval,
		"batch_size", w.cfg.BatchSize,
	)

	poll := time.NewTicker(w.cfg.PollInterval)
	defer poll.Stop()

	var housekeeping <-chan time.Time
	if w.cfg.CleanupInterval > 0 {
		t := time.NewTicker(w.cfg.CleanupInterval)
		defer t.Stop()
		housekeeping = t.C
	}

	w.housekeep(ctx)
	w.ProcessNow(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-poll.C:
			w.ProcessNow(ctx)
		case <-housekeeping:
			w.housekeep(ctx)
		}
	}
}

func (w *Worker) housekeep(ctx context.Context) {
	now := w.now()

	if w.cfg.ClaimTimeout > 0 {
		released, err := w.queue.ReleaseStale(ctx, now.Add(-w.cfg.ClaimTimeout))
		if err != nil {
			slog.Error("Failed to release stale email claims", "error", err)
		} else if released > 0 {
			slog.Warn("Released stale email claims", "count", released)
		}
	}

	if w.cfg.RetentionDays > 0 {
		purged, err := w.queue.PurgeSent(ctx, now.AddDate(0, 0, -w.cfg.RetentionDays))
		if err != nil {
			slog.Error("Failed to purge sent emails", "error", err)
		} else if purged > 0 {
			slog.Info("Purged sent emails", "count", purged)
		}
	}
}

// ProcessNow claims and delivers one batch of due emails.
func (w *Worker) ProcessNow(ctx context.Context) {
	jobs, err := w.queue.ClaimDue(ctx, w.now(), w.cfg.BatchSize)
	if err != nil {
		slog.Error("Failed to claim due emails", "error", err)
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.deliver(ctx, job)
	}
}

func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"attempt", job.Attempts+1,
	)

	html, text, err := w.render(job)
	if err != nil {
		w.fail(ctx, logger, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
		ReplyTo: job.ReplyTo,
	})
	if err != nil {
		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodePermanentEmailFailure
		w.fail(ctx, logger, job, err, permanent)
		return
	}

	job.Complete(result.MessageID, w.now())
	if err := w.queue.Save(ctx, job); err != nil {
		logger.Error("Email sent but not recorded", "error", err)
		return
	}
	logger.Info("Email sent", "message_id", result.MessageID)
}

func (w *Worker) fail(ctx context.Context, logger *slog.Logger, job *entity.EmailJob, cause error, permanent bool) {
	job.Fail(cause, permanent, w.now())
	if err := w.queue.Save(ctx, job); err != nil {
		logger.Error("Failed to record email failure", "error", err, "cause", cause)
		return
	}

	if job.Status == entity.EmailStatusFailed {
		logger.Warn("Email abandoned", "error", cause, "permanent", permanent)
		return
	}
	logger.Info("Email will be retried", "error", cause, "next_attempt_at", job.NextAttemptAt)
}

func (w *Worker) render(job *entity.EmailJob) (string, string, error) {
	d := job.TemplateData

	var data any
	switch job.TemplateType {
	case entity.TemplatePasswordReset:
		data = templates.PasswordResetData{
			UserName:  d["user_name"],
			ResetURL:  d["reset_url"],
			ExpiresIn: d["expires_in"],
		}
	case entity.TemplateBudgetAlert:
		data = templates.BudgetAlertData{
			UserName:    d["user_name"],
			Category:    d["category"],
			MonthLabel:  d["month_label"],
			OverBudget:  d["level"] == string(adapter.BudgetAlertLevelOver),
			Budgeted:    d["budgeted"],
			Spent:       d["spent"],
			PercentUsed: d["percent_used"],
			BudgetsURL:  d["budgets_url"],
		}
	case entity.TemplateContactMessage:
		data = templates.ContactMessageData{
			SenderName:  d["sender_name"],
			SenderEmail: d["sender_email"],
			Message:     d["message"],
		}
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template type "+string(job.TemplateType),
			domainerror.ErrInvalidTemplate,
		)
	}

	return w.renderer.Render(string(job.TemplateType), data)
}
