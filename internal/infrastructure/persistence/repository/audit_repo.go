package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mkulanga/cdf-workflow/internal/application/port"
	"github.com/mkulanga/cdf-workflow/internal/domain/entity"
)

// AuditLogRepository implements port.AuditLogRepository. The workflow_events
// table is append-only; no update or delete statement exists in this package.
type AuditLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *sql.DB, logger *zap.Logger) port.AuditLogRepository {
	return &AuditLogRepository{
		db:     db,
		logger: logger,
	}
}

// Append records a workflow event
func (r *AuditLogRepository) Append(ctx context.Context, evt *entity.WorkflowEvent) error {
	roles, err := json.Marshal(evt.ActorRoles)
	if err != nil {
		return fmt.Errorf("failed to encode actor roles: %w", err)
	}

	metadata := []byte("{}")
	if len(evt.Metadata) > 0 {
		metadata, err = json.Marshal(evt.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}
	}

	query := `
		INSERT INTO workflow_events (
			event_uid, entity_kind, entity_id, action, previous_state, new_state,
			actor_id, actor_roles, comment, notification_tag, metadata, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		evt.EventUID,
		evt.EntityKind,
		evt.EntityID,
		evt.Action,
		evt.PreviousState,
		evt.NewState,
		evt.ActorID,
		string(roles),
		evt.Comment,
		evt.NotificationTag,
		string(metadata),
		evt.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to append workflow event", zap.Error(err))
		return fmt.Errorf("failed to append workflow event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	evt.ID = id
	return nil
}

// GetByEntity retrieves an entity's events ordered by timestamp descending.
// The id tiebreak keeps events appended within the same instant unambiguous.
func (r *AuditLogRepository) GetByEntity(ctx context.Context, entityKind string, entityID int64) ([]*entity.WorkflowEvent, error) {
	query := `
		SELECT id, event_uid, entity_kind, entity_id, action, previous_state, new_state,
			actor_id, actor_roles, comment, notification_tag, metadata, timestamp
		FROM workflow_events
		WHERE entity_kind = ? AND entity_id = ?
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, entityKind, entityID)
	if err != nil {
		r.logger.Error("Failed to query workflow events",
			zap.String("entity_kind", entityKind),
			zap.Int64("entity_id", entityID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to query workflow events: %w", err)
	}
	defer rows.Close()

	var events []*entity.WorkflowEvent
	for rows.Next() {
		var evt entity.WorkflowEvent
		var roles, metadata string

		err := rows.Scan(
			&evt.ID,
			&evt.EventUID,
			&evt.EntityKind,
			&evt.EntityID,
			&evt.Action,
			&evt.PreviousState,
			&evt.NewState,
			&evt.ActorID,
			&roles,
			&evt.Comment,
			&evt.NotificationTag,
			&metadata,
			&evt.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow event: %w", err)
		}

		if err := json.Unmarshal([]byte(roles), &evt.ActorRoles); err != nil {
			return nil, fmt.Errorf("failed to decode actor roles: %w", err)
		}
		if err := json.Unmarshal([]byte(metadata), &evt.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}

		events = append(events, &evt)
	}

	return events, rows.Err()
}

// Verify interface compliance
var _ port.AuditLogRepository = (*AuditLogRepository)(nil)
