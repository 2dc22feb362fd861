package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkulanga/cdf-workflow/internal/domain/entity"
	"github.com/mkulanga/cdf-workflow/internal/domain/workflow"
)

func TestCreateProject(t *testing.T) {
	projectRepo := &mockProjectRepo{}
	svc := NewRegistryService(projectRepo, &mockPaymentRepo{}, &testLogger{})

	project := &entity.Project{
		Code:         "CDF-2026-0431",
		Title:        "Kabwata market roofing",
		Constituency: "Kabwata",
		AmountCents:  250_000_00,
	}
	err := svc.CreateProject(context.Background(), project)
	require.NoError(t, err)

	assert.Equal(t, "draft", project.Status, "new projects always start in draft")
	assert.NotZero(t, project.ID)
}

func TestCreateProject_Invalid(t *testing.T) {
	svc := NewRegistryService(&mockProjectRepo{}, &mockPaymentRepo{}, &testLogger{})

	tests := []struct {
		name    string
		project entity.Project
	}{
		{"bad code format", entity.Project{Code: "431", Title: "x", AmountCents: 100}},
		{"missing title", entity.Project{Code: "CDF-2026-0431", AmountCents: 100}},
		{"zero amount", entity.Project{Code: "CDF-2026-0431", Title: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.project
			assert.Error(t, svc.CreateProject(context.Background(), &p))
		})
	}
}

func TestCreatePayment(t *testing.T) {
	projectRepo := &mockProjectRepo{project: &entity.Project{ID: 3, Status: "implementation"}}
	paymentRepo := &mockPaymentRepo{}
	svc := NewRegistryService(projectRepo, paymentRepo, &testLogger{})

	payment := &entity.Payment{
		ProjectID:   3,
		Reference:   "PAY-2026-00017",
		Payee:       "Mwamba Contractors Ltd",
		AmountCents: 80_000_00,
	}
	err := svc.CreatePayment(context.Background(), payment)
	require.NoError(t, err)
	assert.Equal(t, "pending", payment.Status)
}

func TestCreatePayment_ProjectNotDisbursable(t *testing.T) {
	projectRepo := &mockProjectRepo{project: &entity.Project{ID: 3, Status: "cdfc_review"}}
	svc := NewRegistryService(projectRepo, &mockPaymentRepo{}, &testLogger{})

	payment := &entity.Payment{ProjectID: 3, Reference: "PAY-2026-00017", Payee: "x", AmountCents: 100}
	err := svc.CreatePayment(context.Background(), payment)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestCreatePayment_ProjectMissing(t *testing.T) {
	svc := NewRegistryService(&mockProjectRepo{}, &mockPaymentRepo{}, &testLogger{})

	payment := &entity.Payment{ProjectID: 99, Reference: "PAY-2026-00017", Payee: "x", AmountCents: 100}
	err := svc.CreatePayment(context.Background(), payment)
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestGetProject_NotFound(t *testing.T) {
	svc := NewRegistryService(&mockProjectRepo{}, &mockPaymentRepo{}, &testLogger{})

	_, err := svc.GetProject(context.Background(), 42)
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestGetPayment(t *testing.T) {
	paymentRepo := &mockPaymentRepo{payment: &entity.Payment{ID: 7, Reference: "PAY-2026-00017"}}
	svc := NewRegistryService(&mockProjectRepo{}, paymentRepo, &testLogger{})

	payment, err := svc.GetPayment(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "PAY-2026-00017", payment.Reference)

	empty := NewRegistryService(&mockProjectRepo{}, &mockPaymentRepo{}, &testLogger{})
	_, err = empty.GetPayment(context.Background(), 8)
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestCreateProject_RepoError(t *testing.T) {
	projectRepo := &mockProjectRepo{createErr: errors.New("disk gone")}
	svc := NewRegistryService(projectRepo, &mockPaymentRepo{}, &testLogger{})

	project := &entity.Project{Code: "CDF-2026-0431", Title: "x", AmountCents: 100}
	assert.Error(t, svc.CreateProject(context.Background(), project))
}
