package entity

import "time"

// WorkflowEvent is one immutable entry in the audit trail. Events are
// appended exactly once per applied transition and never updated or deleted.
type WorkflowEvent struct {
	ID              int64             `json:"id"`
	EventUID        string            `json:"event_uid"`
	EntityKind      string            `json:"entity_kind"`
	EntityID        int64             `json:"entity_id"`
	Action          string            `json:"action"`
	PreviousState   string            `json:"previous_state"`
	NewState        string            `json:"new_state"`
	ActorID         string            `json:"actor_id"`
	ActorRoles      []string          `json:"actor_roles"`
	Comment         string            `json:"comment,omitempty"`
	NotificationTag string            `json:"notification_tag"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	Timestamp       time.Time         `json:"timestamp"`
}
