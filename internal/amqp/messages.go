package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Expense change event types.
const (
	EventExpenseCreated = "expense.created"
	EventExpenseUpdated = "expense.updated"
	EventExpenseDeleted = "expense.deleted"
)

// ExpenseEventMessage notifies subscribers that an expense changed.
// It carries only the expense id; consumers fetch current state themselves.
type ExpenseEventMessage struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	ExpenseID int64     `json:"expense_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEventMessage creates an event with a fresh unique id.
func NewExpenseEventMessage(eventType string, expenseID int64) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		EventID:   uuid.NewString(),
		Type:      eventType,
		ExpenseID: expenseID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON decodes a message from JSON bytes.
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
