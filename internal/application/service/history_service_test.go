package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkulanga/cdf-workflow/internal/domain/entity"
	"github.com/mkulanga/cdf-workflow/internal/domain/workflow"
)

func TestGetHistory(t *testing.T) {
	now := time.Now()
	auditRepo := &mockAuditRepo{events: []*entity.WorkflowEvent{
		{EntityKind: "payment", EntityID: 7, Action: "panel_b_approve", Timestamp: now},
		{EntityKind: "payment", EntityID: 7, Action: "panel_a_approve", Timestamp: now.Add(-time.Hour)},
	}}
	svc := NewHistoryService(auditRepo, &testLogger{})

	events, err := svc.GetHistory(context.Background(), workflow.KindPayment, 7)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "panel_b_approve", events[0].Action, "events come back newest first")
}

func TestGetHistory_EmptyIsNotAnError(t *testing.T) {
	svc := NewHistoryService(&mockAuditRepo{}, &testLogger{})

	events, err := svc.GetHistory(context.Background(), workflow.KindProject, 1)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestGetHistory_UnknownKind(t *testing.T) {
	svc := NewHistoryService(&mockAuditRepo{}, &testLogger{})

	_, err := svc.GetHistory(context.Background(), workflow.Kind("ledger"), 1)
	assert.Error(t, err)
}

func TestGetHistory_StoreError(t *testing.T) {
	auditRepo := &mockAuditRepo{queryErr: errors.New("disk gone")}
	svc := NewHistoryService(auditRepo, &testLogger{})

	_, err := svc.GetHistory(context.Background(), workflow.KindProject, 1)
	assert.Error(t, err)
}
