package event

import "testing"

func TestNewEvent(t *testing.T) {
	evt := NewEvent(TypeTransitionApplied, "payment", 42, map[string]interface{}{
		"notification_tag": "payment.approved",
	})

	if evt.ID == "" {
		t.Error("NewEvent() should generate an ID")
	}
	if evt.CorrelationID == "" {
		t.Error("NewEvent() should generate a correlation ID")
	}
	if evt.Type != TypeTransitionApplied {
		t.Errorf("Type = %s, want %s", evt.Type, TypeTransitionApplied)
	}
	if evt.EntityKind != "payment" || evt.EntityID != 42 {
		t.Errorf("entity = %s/%d, want payment/42", evt.EntityKind, evt.EntityID)
	}
	if evt.Timestamp.IsZero() {
		t.Error("NewEvent() should set a timestamp")
	}
}

func TestNewEventWithCorrelation(t *testing.T) {
	evt := NewEventWithCorrelation(TypeAuditAppendFailed, "project", 7, nil, "corr-123")
	if evt.CorrelationID != "corr-123" {
		t.Errorf("CorrelationID = %s, want corr-123", evt.CorrelationID)
	}
}

func TestGetPayloadString(t *testing.T) {
	evt := NewEvent(TypeTransitionApplied, "project", 1, map[string]interface{}{
		"tag":   "project.approved",
		"count": 3,
	})

	if got := evt.GetPayloadString("tag"); got != "project.approved" {
		t.Errorf("GetPayloadString(tag) = %s, want project.approved", got)
	}
	if got := evt.GetPayloadString("count"); got != "" {
		t.Errorf("GetPayloadString(count) = %s, want empty for non-string", got)
	}
	if got := evt.GetPayloadString("missing"); got != "" {
		t.Errorf("GetPayloadString(missing) = %s, want empty", got)
	}
}
