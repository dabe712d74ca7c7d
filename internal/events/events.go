package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventCreditDeducted     = "CreditDeducted"
	EventCreditAdded        = "CreditAdded"
	EventStockAdjusted      = "StockAdjusted"
)

// Envelope wraps every published event with routing metadata. The
// correlation id is the order id (or organization id for pure credit
// events) so downstream consumers can partition by entity.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope builds an envelope around a marshalable payload.
func NewEnvelope(eventType, producer, correlationID string, payload interface{}) (*Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		CorrelationID: correlationID,
		Payload:       raw,
	}, nil
}

// Publisher is implemented by the kafka producer; services hold a nil
// Publisher when messaging is not configured.
type Publisher interface {
	Publish(eventType, correlationID string, payload interface{})
}
