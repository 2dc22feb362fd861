package service

import (
	"context"

	"github.com/mkulanga/cdf-workflow/internal/application/dispatcher"
	"github.com/mkulanga/cdf-workflow/internal/domain/event"
)

// NewNotificationHandler returns a dispatcher handler that records each
// transition's notification tag. Delivery to recipients is a downstream
// concern; this handler is the in-process fan-out point for it.
func NewNotificationHandler(logger Logger) dispatcher.Handler {
	return func(ctx context.Context, evt *event.Event) error {
		logger.Info("Workflow notification",
			"tag", evt.GetPayloadString("notification_tag"),
			"entity_kind", evt.EntityKind,
			"entity_id", evt.EntityID,
			"action", evt.GetPayloadString("action"),
			"new_state", evt.GetPayloadString("new_state"),
			"correlation_id", evt.CorrelationID,
		)
		return nil
	}
}

// NewAuditGapHandler returns a dispatcher handler that flags audit-trail gaps
// for out-of-band reconciliation.
func NewAuditGapHandler(logger Logger) dispatcher.Handler {
	return func(ctx context.Context, evt *event.Event) error {
		logger.Warn("Audit trail gap recorded for reconciliation",
			"entity_kind", evt.EntityKind,
			"entity_id", evt.EntityID,
			"action", evt.GetPayloadString("action"),
			"error", evt.GetPayloadString("error"),
		)
		return nil
	}
}
