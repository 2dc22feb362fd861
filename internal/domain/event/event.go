package event

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies a category of domain event
type Type string

const (
	// TypeTransitionApplied is emitted after a workflow transition has been
	// committed to the entity store
	TypeTransitionApplied Type = "workflow.transition_applied"

	// TypeAuditAppendFailed is emitted when the state write succeeded but the
	// audit append did not; the gap is reconciled out of band
	TypeAuditAppendFailed Type = "workflow.audit_append_failed"
)

// Event represents an in-process domain event
type Event struct {
	ID            string                 `json:"id"`
	Type          Type                   `json:"type"`
	EntityKind    string                 `json:"entity_kind"`
	EntityID      int64                  `json:"entity_id"`
	Payload       map[string]interface{} `json:"payload"`
	Timestamp     time.Time              `json:"timestamp"`
	CorrelationID string                 `json:"correlation_id"`
}

// NewEvent creates a new domain event with a generated ID and timestamp
func NewEvent(eventType Type, entityKind string, entityID int64, payload map[string]interface{}) *Event {
	return &Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		EntityKind:    entityKind,
		EntityID:      entityID,
		Payload:       payload,
		Timestamp:     time.Now(),
		CorrelationID: uuid.NewString(),
	}
}

// NewEventWithCorrelation creates an event linked to an existing correlation chain
func NewEventWithCorrelation(eventType Type, entityKind string, entityID int64, payload map[string]interface{}, correlationID string) *Event {
	evt := NewEvent(eventType, entityKind, entityID, payload)
	evt.CorrelationID = correlationID
	return evt
}

// GetPayloadString retrieves a string value from the payload
func (e *Event) GetPayloadString(key string) string {
	if val, ok := e.Payload[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
