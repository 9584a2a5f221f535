package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// TransactionRecordedMessage is the wire form of adapter.TransactionRecordedEvent.
// The consumer reloads everything else from the database.
type TransactionRecordedMessage struct {
	UserID        uuid.UUID `json:"user_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	Month         string    `json:"month"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewTransactionRecordedMessage converts an event into its wire form.
func NewTransactionRecordedMessage(event adapter.TransactionRecordedEvent) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		UserID:        event.UserID,
		TransactionID: event.TransactionID,
		Type:          string(event.Type),
		Category:      event.Category.String(),
		Month:         event.Month.Key(),
		Timestamp:     time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Event converts the message back into a domain event.
func (m *TransactionRecordedMessage) Event() (adapter.TransactionRecordedEvent, error) {
	month, err := valueobject.ParseMonth(m.Month)
	if err != nil {
		return adapter.TransactionRecordedEvent{}, err
	}
	category := entity.Category(m.Category)
	if !category.IsValid() {
		return adapter.TransactionRecordedEvent{}, fmt.Errorf("unknown category %q", m.Category)
	}
	txnType := entity.TransactionType(m.Type)
	if !txnType.IsValid() {
		return adapter.TransactionRecordedEvent{}, fmt.Errorf("unknown transaction type %q", m.Type)
	}
	if m.UserID == uuid.Nil {
		return adapter.TransactionRecordedEvent{}, fmt.Errorf("missing user id")
	}
	return adapter.TransactionRecordedEvent{
		UserID:        m.UserID,
		TransactionID: m.TransactionID,
		Type:          txnType,
		Category:      category,
		Month:         month,
	}, nil
}

// TransactionRecordedMessageFromJSON decodes a message from JSON bytes.
func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
