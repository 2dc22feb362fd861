package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mkulanga/cdf-workflow/internal/application/port"
	"github.com/mkulanga/cdf-workflow/internal/domain/entity"
	"github.com/mkulanga/cdf-workflow/internal/domain/workflow"
)

// PaymentRepository implements port.PaymentRepository
type PaymentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB, logger *zap.Logger) port.PaymentRepository {
	return &PaymentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (
			project_id, reference, payee, amount_cents, status
		) VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		payment.ProjectID,
		payment.Reference,
		payment.Payee,
		payment.AmountCents,
		payment.Status,
	)
	if err != nil {
		r.logger.Error("Failed to create payment", zap.Error(err))
		return fmt.Errorf("failed to create payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	payment.ID = id
	return nil
}

// GetByID retrieves a payment by ID; returns nil when absent
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	query := `
		SELECT id, project_id, reference, payee, amount_cents, status,
			panel_a_approver_id, panel_a_approved_at, panel_a_decision, panel_a_comment,
			panel_b_approver_id, panel_b_approved_at, panel_b_decision, panel_b_comment,
			disbursed_at, disbursed_by, created_at, updated_at
		FROM payments
		WHERE id = ?
	`

	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get payment by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return payment, nil
}

// List retrieves payments ordered by creation time descending
func (r *PaymentRepository) List(ctx context.Context, limit, offset int) ([]*entity.Payment, error) {
	query := `
		SELECT id, project_id, reference, payee, amount_cents, status,
			panel_a_approver_id, panel_a_approved_at, panel_a_decision, panel_a_comment,
			panel_b_approver_id, panel_b_approved_at, panel_b_decision, panel_b_comment,
			disbursed_at, disbursed_by, created_at, updated_at
		FROM payments
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

// GetSnapshot loads the minimal workflow projection including the Panel A
// approver; returns nil when absent
func (r *PaymentRepository) GetSnapshot(ctx context.Context, id int64) (*entity.Snapshot, error) {
	var snapshot entity.Snapshot
	var panelAApprover sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, status, panel_a_approver_id FROM payments WHERE id = ?`, id).
		Scan(&snapshot.ID, &snapshot.CurrentState, &panelAApprover)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to load payment snapshot", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to load payment snapshot: %w", err)
	}

	snapshot.PanelAApproverID = panelAApprover.String
	return &snapshot, nil
}

// TransitionState applies the new state and side-effect fields conditionally
// on the observed state. Zero rows affected means another transition won the
// race since the snapshot was read.
func (r *PaymentRepository) TransitionState(ctx context.Context, id int64, expectedState, newState string, fields entity.PaymentStateFields) error {
	set := []string{"status = ?", "updated_at = CURRENT_TIMESTAMP"}
	args := []interface{}{newState}

	if fields.PanelAApproverID != nil {
		set = append(set, "panel_a_approver_id = ?")
		args = append(args, *fields.PanelAApproverID)
	}
	if fields.PanelAApprovedAt != nil {
		set = append(set, "panel_a_approved_at = ?")
		args = append(args, *fields.PanelAApprovedAt)
	}
	if fields.PanelADecision != nil {
		set = append(set, "panel_a_decision = ?")
		args = append(args, *fields.PanelADecision)
	}
	if fields.PanelAComment != nil {
		set = append(set, "panel_a_comment = ?")
		args = append(args, *fields.PanelAComment)
	}
	if fields.PanelBApproverID != nil {
		set = append(set, "panel_b_approver_id = ?")
		args = append(args, *fields.PanelBApproverID)
	}
	if fields.PanelBApprovedAt != nil {
		set = append(set, "panel_b_approved_at = ?")
		args = append(args, *fields.PanelBApprovedAt)
	}
	if fields.PanelBDecision != nil {
		set = append(set, "panel_b_decision = ?")
		args = append(args, *fields.PanelBDecision)
	}
	if fields.PanelBComment != nil {
		set = append(set, "panel_b_comment = ?")
		args = append(args, *fields.PanelBComment)
	}
	if fields.DisbursedAt != nil {
		set = append(set, "disbursed_at = ?")
		args = append(args, *fields.DisbursedAt)
	}
	if fields.DisbursedBy != nil {
		set = append(set, "disbursed_by = ?")
		args = append(args, *fields.DisbursedBy)
	}

	args = append(args, id, expectedState)
	query := fmt.Sprintf("UPDATE payments SET %s WHERE id = ? AND status = ?", strings.Join(set, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to transition payment state", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to transition payment state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return workflow.ErrStateConflict
	}

	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*entity.Payment, error) {
	var payment entity.Payment
	var panelAApprover, panelADecision, panelAComment sql.NullString
	var panelBApprover, panelBDecision, panelBComment sql.NullString
	var disbursedBy sql.NullString
	var panelAAt, panelBAt, disbursedAt sql.NullTime

	err := row.Scan(
		&payment.ID,
		&payment.ProjectID,
		&payment.Reference,
		&payment.Payee,
		&payment.AmountCents,
		&payment.Status,
		&panelAApprover,
		&panelAAt,
		&panelADecision,
		&panelAComment,
		&panelBApprover,
		&panelBAt,
		&panelBDecision,
		&panelBComment,
		&disbursedAt,
		&disbursedBy,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	payment.PanelAApproverID = panelAApprover.String
	payment.PanelADecision = panelADecision.String
	payment.PanelAComment = panelAComment.String
	payment.PanelBApproverID = panelBApprover.String
	payment.PanelBDecision = panelBDecision.String
	payment.PanelBComment = panelBComment.String
	payment.DisbursedBy = disbursedBy.String
	if panelAAt.Valid {
		payment.PanelAApprovedAt = &panelAAt.Time
	}
	if panelBAt.Valid {
		payment.PanelBApprovedAt = &panelBAt.Time
	}
	if disbursedAt.Valid {
		payment.DisbursedAt = &disbursedAt.Time
	}

	return &payment, nil
}

// Verify interface compliance
var _ port.PaymentRepository = (*PaymentRepository)(nil)
