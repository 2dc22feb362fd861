package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mkulanga/cdf-workflow/internal/domain/entity"
	"github.com/mkulanga/cdf-workflow/internal/domain/workflow"
)

func TestWriteHistoryReport(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	auditRepo := &mockAuditRepo{events: []*entity.WorkflowEvent{
		{
			EntityKind:      "payment",
			EntityID:        7,
			Action:          "panel_a_approve",
			PreviousState:   "pending",
			NewState:        "panel_a_approved",
			ActorID:         "u-1",
			ActorRoles:      []string{"mp"},
			NotificationTag: "payment.panel_a_approved",
			Timestamp:       now,
		},
	}}
	logger := &testLogger{}
	svc := NewReportService(NewHistoryService(auditRepo, logger), logger)

	var buf bytes.Buffer
	err := svc.WriteHistoryReport(context.Background(), workflow.KindPayment, 7, &buf)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Workflow History")
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one event")

	assert.Equal(t, "Timestamp", rows[0][0])
	assert.Equal(t, "panel_a_approve", rows[1][1])
	assert.Equal(t, "pending", rows[1][2])
	assert.Equal(t, "panel_a_approved", rows[1][3])
	assert.Equal(t, "u-1", rows[1][4])
}

func TestWriteHistoryReport_NoEvents(t *testing.T) {
	logger := &testLogger{}
	svc := NewReportService(NewHistoryService(&mockAuditRepo{}, logger), logger)

	var buf bytes.Buffer
	err := svc.WriteHistoryReport(context.Background(), workflow.KindProject, 1, &buf)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len(), "an empty history still produces a report with headers")
}
