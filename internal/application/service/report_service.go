package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mkulanga/cdf-workflow/internal/domain/workflow"
)

// ReportService renders audit reports for oversight bodies
type ReportService interface {
	// WriteHistoryReport streams an xlsx report of the entity's workflow
	// history to w, newest event first
	WriteHistoryReport(ctx context.Context, kind workflow.Kind, entityID int64, w io.Writer) error
}

type reportServiceImpl struct {
	history HistoryService
	logger  Logger
}

// NewReportService creates a new ReportService
func NewReportService(history HistoryService, logger Logger) ReportService {
	return &reportServiceImpl{
		history: history,
		logger:  logger,
	}
}

var reportHeaders = []string{
	"Timestamp", "Action", "Previous State", "New State",
	"Actor", "Roles", "Comment", "Notification Tag",
}

func (s *reportServiceImpl) WriteHistoryReport(ctx context.Context, kind workflow.Kind, entityID int64, w io.Writer) error {
	events, err := s.history.GetHistory(ctx, kind, entityID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, "Workflow History"); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sheet = "Workflow History"

	for col, header := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set header: %w", err)
		}
	}

	for row, evt := range events {
		values := []interface{}{
			evt.Timestamp.UTC().Format(time.RFC3339),
			evt.Action,
			evt.PreviousState,
			evt.NewState,
			evt.ActorID,
			strings.Join(evt.ActorRoles, ", "),
			evt.Comment,
			evt.NotificationTag,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	s.logger.Info("History report generated",
		"kind", kind.String(),
		"entity_id", entityID,
		"events", len(events),
	)
	return nil
}
