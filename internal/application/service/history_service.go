package service

import (
	"context"
	"fmt"

	"github.com/mkulanga/cdf-workflow/internal/application/port"
	"github.com/mkulanga/cdf-workflow/internal/domain/entity"
	"github.com/mkulanga/cdf-workflow/internal/domain/workflow"
)

// HistoryService reconstructs an entity's transition history from the audit
// log. Read-only: it never mutates past events.
type HistoryService interface {
	// GetHistory returns the entity's workflow events, newest first. An entity
	// with no recorded events yields an empty slice, not an error.
	GetHistory(ctx context.Context, kind workflow.Kind, entityID int64) ([]*entity.WorkflowEvent, error)
}

type historyServiceImpl struct {
	auditRepo port.AuditLogRepository
	logger    Logger
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(auditRepo port.AuditLogRepository, logger Logger) HistoryService {
	return &historyServiceImpl{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (s *historyServiceImpl) GetHistory(ctx context.Context, kind workflow.Kind, entityID int64) ([]*entity.WorkflowEvent, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown workflow kind %q", kind)
	}

	events, err := s.auditRepo.GetByEntity(ctx, kind.String(), entityID)
	if err != nil {
		s.logger.Error("Failed to query audit log", "kind", kind.String(), "entity_id", entityID, "error", err)
		return nil, fmt.Errorf("query audit log: %w", err)
	}

	if events == nil {
		events = []*entity.WorkflowEvent{}
	}
	return events, nil
}
