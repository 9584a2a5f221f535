// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
	// MaxTags is the maximum number of tags on a transaction.
	MaxTags = 10
	// MaxTagLength is the maximum allowed length of a single tag.
	MaxTagLength = 30
)

func validateDate(date time.Time) (time.Time, error) {
	if date.IsZero() {
		return time.Time{}, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date must be a valid calendar date",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return valueobject.CalendarDate(date), nil
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"description is required",
			domainerror.ErrDescriptionRequired,
		)
	}
	if len(description) > MaxDescriptionLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return description, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

func validateNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}
	return nil
}

func validateType(transactionType entity.TransactionType) error {
	if !transactionType.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

func validateCategory(category entity.Category) error {
	if !category.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTxnCategory,
			fmt.Sprintf("category %q is not supported", category),
			domainerror.ErrInvalidTransactionCategory,
		)
	}
	return nil
}

func validatePaymentMethod(method entity.PaymentMethod) (entity.PaymentMethod, error) {
	if method == "" {
		return entity.PaymentMethodCash, nil
	}
	if !method.IsValid() {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidPaymentMethod,
			fmt.Sprintf("payment method %q is not supported", method),
			domainerror.ErrInvalidPaymentMethod,
		)
	}
	return method, nil
}

// normalizeTags trims tags and drops empty ones and duplicates.
func normalizeTags(tags []string) ([]string, error) {
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		if len(tag) > MaxTagLength {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTooManyTags,
				fmt.Sprintf("tags must not exceed %d characters", MaxTagLength),
				domainerror.ErrTooManyTags,
			)
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	if len(normalized) > MaxTags {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTooManyTags,
			fmt.Sprintf("a transaction can carry at most %d tags", MaxTags),
			domainerror.ErrTooManyTags,
		)
	}
	return normalized, nil
}

// writeEffects runs the side effects shared by every transaction write.
// Failures are logged and never undo the write.
type writeEffects struct {
	statsCache adapter.StatsCache
	publisher  adapter.EventPublisher
}

func (w writeEffects) afterWrite(ctx context.Context, transaction *entity.Transaction, publish bool) {
	if err := w.statsCache.Invalidate(ctx, transaction.UserID); err != nil {
		slog.Warn("Failed to invalidate stats cache",
			"user_id", transaction.UserID,
			"error", err,
		)
	}

	if !publish {
		return
	}

	event := adapter.TransactionRecordedEvent{
		UserID:        transaction.UserID,
		TransactionID: transaction.ID,
		Type:          transaction.Type,
		Category:      transaction.Category,
		Month:         valueobject.MonthOf(transaction.Date),
	}
	if err := w.publisher.PublishTransactionRecorded(ctx, event); err != nil {
		slog.Warn("Failed to publish transaction event",
			"transaction_id", transaction.ID,
			"error", err,
		)
	}
}
