package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkulanga/cdf-workflow/internal/application/dispatcher"
	"github.com/mkulanga/cdf-workflow/internal/application/port"
	"github.com/mkulanga/cdf-workflow/internal/domain/entity"
	"github.com/mkulanga/cdf-workflow/internal/domain/event"
	"github.com/mkulanga/cdf-workflow/internal/domain/workflow"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// TransitionRequest carries everything needed to advance one entity's state
type TransitionRequest struct {
	Kind        workflow.Kind
	EntityID    int64
	TargetState workflow.State
	ActorID     string
	ActorRoles  []workflow.Role
	Comment     string
}

// TransitionResult reports a successfully applied transition
type TransitionResult struct {
	EntityID        int64          `json:"entity_id"`
	EntityKind      workflow.Kind  `json:"entity_kind"`
	PreviousState   workflow.State `json:"previous_state"`
	NewState        workflow.State `json:"new_state"`
	Action          string         `json:"action"`
	NotificationTag string         `json:"notification_tag"`
	Timestamp       time.Time      `json:"timestamp"`
}

// WorkflowService advances entities through their approval pipelines with
// every statutory gate enforced
type WorkflowService interface {
	// ExecuteTransition runs the full gate sequence and applies the transition
	ExecuteTransition(ctx context.Context, req TransitionRequest) (*TransitionResult, error)

	// ListAvailableTransitions returns the transitions the caller's roles can
	// take from the entity's current stored state
	ListAvailableTransitions(ctx context.Context, kind workflow.Kind, entityID int64, roles []workflow.Role) ([]workflow.Transition, error)

	// AvailableTransitionsFromState answers the same question for an explicit
	// state without touching the store
	AvailableTransitionsFromState(kind workflow.Kind, state workflow.State, roles []workflow.Role) []workflow.Transition
}

type workflowServiceImpl struct {
	projectRepo port.ProjectRepository
	paymentRepo port.PaymentRepository
	auditRepo   port.AuditLogRepository
	dispatcher  dispatcher.Dispatcher
	logger      Logger
}

// WorkflowOption configures the workflow service
type WorkflowOption func(*workflowServiceImpl)

// WithDispatcher sets the event dispatcher used for post-commit notifications
func WithDispatcher(d dispatcher.Dispatcher) WorkflowOption {
	return func(s *workflowServiceImpl) {
		s.dispatcher = d
	}
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(
	projectRepo port.ProjectRepository,
	paymentRepo port.PaymentRepository,
	auditRepo port.AuditLogRepository,
	logger Logger,
	opts ...WorkflowOption,
) WorkflowService {
	s := &workflowServiceImpl{
		projectRepo: projectRepo,
		paymentRepo: paymentRepo,
		auditRepo:   auditRepo,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExecuteTransition enforces the gates in fixed order, short-circuiting on the
// first failure: entity exists, transition exists, role authorized,
// segregation of duty (Panel B only), comment supplied. Only then is the state
// written, conditionally on the observed state, and the audit event appended.
func (s *workflowServiceImpl) ExecuteTransition(ctx context.Context, req TransitionRequest) (*TransitionResult, error) {
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown workflow kind %q", workflow.ErrInvalidTransition, req.Kind)
	}

	snapshot, err := s.loadSnapshot(ctx, req.Kind, req.EntityID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, fmt.Errorf("%w: %s %d", workflow.ErrNotFound, req.Kind, req.EntityID)
	}

	currentState := workflow.State(snapshot.CurrentState)

	transition, ok := workflow.GetTransition(req.Kind, currentState, req.TargetState)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no edge %s -> %s",
			workflow.ErrInvalidTransition, req.Kind, currentState, req.TargetState)
	}

	if !transition.Authorizes(req.ActorRoles) {
		return nil, fmt.Errorf("%w: action %s requires one of %v",
			workflow.ErrUnauthorized, transition.Action, transition.RequiredRoles)
	}

	if transition.Panel == workflow.PanelB {
		if err := workflow.CheckSegregation(snapshot.PanelAApproverID, req.ActorID); err != nil {
			return nil, err
		}
	}

	if transition.RequiresComment && strings.TrimSpace(req.Comment) == "" {
		return nil, fmt.Errorf("%w: action %s", workflow.ErrCommentRequired, transition.Action)
	}

	now := time.Now().UTC()

	if err := s.applyTransition(ctx, req, transition, currentState, now); err != nil {
		return nil, err
	}

	s.logger.Info("Workflow transition applied",
		"kind", req.Kind.String(),
		"entity_id", req.EntityID,
		"action", transition.Action,
		"previous_state", currentState.String(),
		"new_state", transition.To.String(),
		"actor_id", req.ActorID,
	)

	// The state change stands even if the audit append fails; the gap is
	// surfaced as a warning and reconciled out of band.
	s.appendAuditEvent(ctx, req, transition, currentState, now)

	if s.dispatcher != nil {
		s.dispatcher.DispatchAsync(ctx, event.NewEvent(
			event.TypeTransitionApplied,
			req.Kind.String(),
			req.EntityID,
			map[string]interface{}{
				"notification_tag": transition.NotificationTag,
				"action":           transition.Action,
				"previous_state":   currentState.String(),
				"new_state":        transition.To.String(),
				"actor_id":         req.ActorID,
			},
		))
	}

	return &TransitionResult{
		EntityID:        req.EntityID,
		EntityKind:      req.Kind,
		PreviousState:   currentState,
		NewState:        transition.To,
		Action:          transition.Action,
		NotificationTag: transition.NotificationTag,
		Timestamp:       now,
	}, nil
}

func (s *workflowServiceImpl) ListAvailableTransitions(ctx context.Context, kind workflow.Kind, entityID int64, roles []workflow.Role) ([]workflow.Transition, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown workflow kind %q", workflow.ErrInvalidTransition, kind)
	}

	snapshot, err := s.loadSnapshot(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, fmt.Errorf("%w: %s %d", workflow.ErrNotFound, kind, entityID)
	}

	return workflow.AvailableTransitions(kind, workflow.State(snapshot.CurrentState), roles), nil
}

func (s *workflowServiceImpl) AvailableTransitionsFromState(kind workflow.Kind, state workflow.State, roles []workflow.Role) []workflow.Transition {
	return workflow.AvailableTransitions(kind, state, roles)
}

// loadSnapshot reads the entity projection fresh from the store; it is never
// cached across requests
func (s *workflowServiceImpl) loadSnapshot(ctx context.Context, kind workflow.Kind, entityID int64) (*entity.Snapshot, error) {
	switch kind {
	case workflow.KindProject:
		return s.projectRepo.GetSnapshot(ctx, entityID)
	case workflow.KindPayment:
		return s.paymentRepo.GetSnapshot(ctx, entityID)
	default:
		return nil, fmt.Errorf("%w: unknown workflow kind %q", workflow.ErrInvalidTransition, kind)
	}
}

// applyTransition performs the conditional state write together with the
// kind-specific side-effect fields
func (s *workflowServiceImpl) applyTransition(ctx context.Context, req TransitionRequest, t workflow.Transition, from workflow.State, now time.Time) error {
	switch req.Kind {
	case workflow.KindProject:
		fields := projectFieldsFor(t, req.ActorID, now)
		return s.projectRepo.TransitionState(ctx, req.EntityID, from.String(), t.To.String(), fields)
	case workflow.KindPayment:
		fields := paymentFieldsFor(t, req.ActorID, req.Comment, now)
		return s.paymentRepo.TransitionState(ctx, req.EntityID, from.String(), t.To.String(), fields)
	default:
		return fmt.Errorf("%w: unknown workflow kind %q", workflow.ErrInvalidTransition, req.Kind)
	}
}

func (s *workflowServiceImpl) appendAuditEvent(ctx context.Context, req TransitionRequest, t workflow.Transition, from workflow.State, now time.Time) {
	roles := make([]string, len(req.ActorRoles))
	for i, r := range req.ActorRoles {
		roles[i] = r.String()
	}

	metadata := map[string]string{}
	if t.Panel != workflow.PanelNone {
		metadata["panel"] = string(t.Panel)
	}

	evt := &entity.WorkflowEvent{
		EventUID:        uuid.NewString(),
		EntityKind:      req.Kind.String(),
		EntityID:        req.EntityID,
		Action:          t.Action,
		PreviousState:   from.String(),
		NewState:        t.To.String(),
		ActorID:         req.ActorID,
		ActorRoles:      roles,
		Comment:         req.Comment,
		NotificationTag: t.NotificationTag,
		Metadata:        metadata,
		Timestamp:       now,
	}

	if err := s.auditRepo.Append(ctx, evt); err != nil {
		s.logger.Warn("Audit append failed after committed state change",
			"kind", req.Kind.String(),
			"entity_id", req.EntityID,
			"action", t.Action,
			"error", err,
		)
		if s.dispatcher != nil {
			s.dispatcher.DispatchAsync(ctx, event.NewEvent(
				event.TypeAuditAppendFailed,
				req.Kind.String(),
				req.EntityID,
				map[string]interface{}{"action": t.Action, "error": err.Error()},
			))
		}
	}
}

// projectFieldsFor computes the side-effect columns for a project target state
func projectFieldsFor(t workflow.Transition, actorID string, now time.Time) entity.ProjectStateFields {
	var f entity.ProjectStateFields
	switch t.To {
	case workflow.StateSubmitted:
		f.SubmittedAt = &now
		f.SubmittedBy = &actorID
	case workflow.StateApproved:
		f.ApprovedAt = &now
		f.ApprovedBy = &actorID
	case workflow.StateCompleted:
		f.ActualEndDate = &now
	}
	return f
}

// paymentFieldsFor computes the side-effect columns for a payment transition.
// Panel decisions record the deciding officer; the Panel A approver identity
// recorded here is what the segregation check reads on the Panel B attempt.
func paymentFieldsFor(t workflow.Transition, actorID, comment string, now time.Time) entity.PaymentStateFields {
	var f entity.PaymentStateFields
	switch t.Panel {
	case workflow.PanelA:
		decision := "approved"
		if t.To == workflow.StatePanelARejected {
			decision = "rejected"
		}
		f.PanelAApproverID = &actorID
		f.PanelAApprovedAt = &now
		f.PanelADecision = &decision
		if comment != "" {
			f.PanelAComment = &comment
		}
	case workflow.PanelB:
		decision := "approved"
		if t.To == workflow.StateRejected {
			decision = "rejected"
		}
		f.PanelBApproverID = &actorID
		f.PanelBApprovedAt = &now
		f.PanelBDecision = &decision
		if comment != "" {
			f.PanelBComment = &comment
		}
	default:
		if t.To == workflow.StateDisbursed {
			f.DisbursedAt = &now
			f.DisbursedBy = &actorID
		}
	}
	return f
}
