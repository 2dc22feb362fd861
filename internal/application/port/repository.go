package port

import (
	"context"

	"github.com/mkulanga/cdf-workflow/internal/domain/entity"
)

// ProjectRepository defines persistence operations for Project
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id int64) (*entity.Project, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Project, error)

	// GetSnapshot loads the minimal workflow projection; nil when absent
	GetSnapshot(ctx context.Context, id int64) (*entity.Snapshot, error)

	// TransitionState applies the new state and side-effect fields as a single
	// conditional write keyed on the observed state. Returns
	// workflow.ErrStateConflict when the stored state no longer matches
	// expectedState.
	TransitionState(ctx context.Context, id int64, expectedState, newState string, fields entity.ProjectStateFields) error
}

// PaymentRepository defines persistence operations for Payment
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id int64) (*entity.Payment, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Payment, error)

	// GetSnapshot loads the minimal workflow projection including the Panel A
	// approver; nil when absent
	GetSnapshot(ctx context.Context, id int64) (*entity.Snapshot, error)

	// TransitionState applies the new state and side-effect fields as a single
	// conditional write keyed on the observed state. Returns
	// workflow.ErrStateConflict when the stored state no longer matches
	// expectedState.
	TransitionState(ctx context.Context, id int64, expectedState, newState string, fields entity.PaymentStateFields) error
}

// AuditLogRepository defines append-only persistence for WorkflowEvent.
// Events are never updated or deleted.
type AuditLogRepository interface {
	Append(ctx context.Context, evt *entity.WorkflowEvent) error

	// GetByEntity returns the entity's events ordered by timestamp descending
	GetByEntity(ctx context.Context, entityKind string, entityID int64) ([]*entity.WorkflowEvent, error)
}
