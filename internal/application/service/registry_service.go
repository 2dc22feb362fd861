package service

import (
	"context"
	"fmt"

	"github.com/mkulanga/cdf-workflow/internal/application/port"
	"github.com/mkulanga/cdf-workflow/internal/domain/entity"
	"github.com/mkulanga/cdf-workflow/internal/domain/workflow"
	"github.com/mkulanga/cdf-workflow/pkg/utils"
)

// RegistryService manages the project and payment registers. Creation places
// entities in their initial workflow state; everything after that goes
// through the workflow service.
type RegistryService interface {
	CreateProject(ctx context.Context, project *entity.Project) error
	GetProject(ctx context.Context, id int64) (*entity.Project, error)
	ListProjects(ctx context.Context, limit, offset int) ([]*entity.Project, error)

	CreatePayment(ctx context.Context, payment *entity.Payment) error
	GetPayment(ctx context.Context, id int64) (*entity.Payment, error)
	ListPayments(ctx context.Context, limit, offset int) ([]*entity.Payment, error)
}

type registryServiceImpl struct {
	projectRepo port.ProjectRepository
	paymentRepo port.PaymentRepository
	logger      Logger
}

// NewRegistryService creates a new RegistryService
func NewRegistryService(projectRepo port.ProjectRepository, paymentRepo port.PaymentRepository, logger Logger) RegistryService {
	return &registryServiceImpl{
		projectRepo: projectRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// CreateProject registers a new project in the draft state
func (s *registryServiceImpl) CreateProject(ctx context.Context, project *entity.Project) error {
	if err := utils.ValidateProjectCode(project.Code); err != nil {
		return err
	}
	if project.Title == "" {
		return fmt.Errorf("project title is required")
	}
	if project.AmountCents <= 0 {
		return fmt.Errorf("project amount must be positive")
	}

	project.Status = workflow.StateDraft.String()

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return err
	}

	s.logger.Info("Project registered",
		"project_id", project.ID,
		"code", project.Code,
		"constituency", project.Constituency,
	)
	return nil
}

// GetProject retrieves a project by ID
func (s *registryServiceImpl) GetProject(ctx context.Context, id int64) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %d", workflow.ErrNotFound, id)
	}
	return project, nil
}

// ListProjects retrieves projects newest first
func (s *registryServiceImpl) ListProjects(ctx context.Context, limit, offset int) ([]*entity.Project, error) {
	return s.projectRepo.List(ctx, limit, offset)
}

// CreatePayment registers a new payment in the pending state. The parent
// project must exist and be in a state that admits disbursement requests.
func (s *registryServiceImpl) CreatePayment(ctx context.Context, payment *entity.Payment) error {
	if err := utils.ValidatePaymentReference(payment.Reference); err != nil {
		return err
	}
	if payment.Payee == "" {
		return fmt.Errorf("payment payee is required")
	}
	if payment.AmountCents <= 0 {
		return fmt.Errorf("payment amount must be positive")
	}

	project, err := s.projectRepo.GetByID(ctx, payment.ProjectID)
	if err != nil {
		return err
	}
	if project == nil {
		return fmt.Errorf("%w: project %d", workflow.ErrNotFound, payment.ProjectID)
	}

	projectState := workflow.State(project.Status)
	if projectState != workflow.StateApproved && projectState != workflow.StateImplementation {
		return fmt.Errorf("%w: project %d is %s, payments require an approved or implementing project",
			workflow.ErrInvalidTransition, project.ID, project.Status)
	}

	payment.Status = workflow.StatePending.String()

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return err
	}

	s.logger.Info("Payment registered",
		"payment_id", payment.ID,
		"project_id", payment.ProjectID,
		"reference", payment.Reference,
	)
	return nil
}

// GetPayment retrieves a payment by ID
func (s *registryServiceImpl) GetPayment(ctx context.Context, id int64) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: payment %d", workflow.ErrNotFound, id)
	}
	return payment, nil
}

// ListPayments retrieves payments newest first
func (s *registryServiceImpl) ListPayments(ctx context.Context, limit, offset int) ([]*entity.Payment, error) {
	return s.paymentRepo.List(ctx, limit, offset)
}
