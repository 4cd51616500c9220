package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID    string `json:"order_id"`
	ClientID   string `json:"client_id"`
	Items      []Item `json:"items"`
	TotalItems int    `json:"total_items"`
}

type OrderStatusChangedPayload struct {
	OrderID   string `json:"order_id"`
	ClientID  string `json:"client_id"`
	OldStatus Status `json:"old_status"`
	NewStatus Status `json:"new_status"`
}
