package amqp

import (
	"encoding/json"
	"time"
)

// SubscriptionChangedMessage announces a collection mutation. Consumers fetch
// the current state from the store; the message only carries the id and the
// kind of change.
type SubscriptionChangedMessage struct {
	ID        string    `json:"id"`
	Change    string    `json:"change"` // "created" or "removed"
	Timestamp time.Time `json:"timestamp"`
}

// PaymentDueMessage tells downstream consumers that a subscription payment
// falls on DueDate (ISO "2006-01-02"). Amount and currency travel with the
// message so exporters need no store access.
type PaymentDueMessage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	DueDate     string    `json:"due_date"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewSubscriptionChangedMessage(id, change string) *SubscriptionChangedMessage {
	return &SubscriptionChangedMessage{
		ID:        id,
		Change:    change,
		Timestamp: time.Now(),
	}
}

func (m *SubscriptionChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func (m *PaymentDueMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func PaymentDueMessageFromJSON(data []byte) (*PaymentDueMessage, error) {
	var msg PaymentDueMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
