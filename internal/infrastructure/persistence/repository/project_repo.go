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

// ProjectRepository implements port.ProjectRepository
type ProjectRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB, logger *zap.Logger) port.ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	query := `
		INSERT INTO projects (
			code, title, description, constituency, amount_cents, status
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		project.Code,
		project.Title,
		project.Description,
		project.Constituency,
		project.AmountCents,
		project.Status,
	)
	if err != nil {
		r.logger.Error("Failed to create project", zap.Error(err))
		return fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	project.ID = id
	return nil
}

// GetByID retrieves a project by ID; returns nil when absent
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	query := `
		SELECT id, code, title, description, constituency, amount_cents, status,
			submitted_at, submitted_by, approved_at, approved_by, actual_end_date,
			created_at, updated_at
		FROM projects
		WHERE id = ?
	`

	var project entity.Project
	var submittedAt, approvedAt, actualEndDate sql.NullTime
	var submittedBy, approvedBy sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.Code,
		&project.Title,
		&project.Description,
		&project.Constituency,
		&project.AmountCents,
		&project.Status,
		&submittedAt,
		&submittedBy,
		&approvedAt,
		&approvedBy,
		&actualEndDate,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get project by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if submittedAt.Valid {
		project.SubmittedAt = &submittedAt.Time
	}
	project.SubmittedBy = submittedBy.String
	if approvedAt.Valid {
		project.ApprovedAt = &approvedAt.Time
	}
	project.ApprovedBy = approvedBy.String
	if actualEndDate.Valid {
		project.ActualEndDate = &actualEndDate.Time
	}

	return &project, nil
}

// List retrieves projects ordered by creation time descending
func (r *ProjectRepository) List(ctx context.Context, limit, offset int) ([]*entity.Project, error) {
	query := `
		SELECT id, code, title, description, constituency, amount_cents, status,
			submitted_at, submitted_by, approved_at, approved_by, actual_end_date,
			created_at, updated_at
		FROM projects
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list projects", zap.Error(err))
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		var project entity.Project
		var submittedAt, approvedAt, actualEndDate sql.NullTime
		var submittedBy, approvedBy sql.NullString

		err := rows.Scan(
			&project.ID,
			&project.Code,
			&project.Title,
			&project.Description,
			&project.Constituency,
			&project.AmountCents,
			&project.Status,
			&submittedAt,
			&submittedBy,
			&approvedAt,
			&approvedBy,
			&actualEndDate,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}

		if submittedAt.Valid {
			project.SubmittedAt = &submittedAt.Time
		}
		project.SubmittedBy = submittedBy.String
		if approvedAt.Valid {
			project.ApprovedAt = &approvedAt.Time
		}
		project.ApprovedBy = approvedBy.String
		if actualEndDate.Valid {
			project.ActualEndDate = &actualEndDate.Time
		}

		projects = append(projects, &project)
	}

	return projects, rows.Err()
}

// GetSnapshot loads the minimal workflow projection; returns nil when absent
func (r *ProjectRepository) GetSnapshot(ctx context.Context, id int64) (*entity.Snapshot, error) {
	var snapshot entity.Snapshot
	err := r.db.QueryRowContext(ctx, `SELECT id, status FROM projects WHERE id = ?`, id).
		Scan(&snapshot.ID, &snapshot.CurrentState)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to load project snapshot", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to load project snapshot: %w", err)
	}

	return &snapshot, nil
}

// TransitionState applies the new state and side-effect fields conditionally
// on the observed state. Zero rows affected means another transition won the
// race since the snapshot was read.
func (r *ProjectRepository) TransitionState(ctx context.Context, id int64, expectedState, newState string, fields entity.ProjectStateFields) error {
	set := []string{"status = ?", "updated_at = CURRENT_TIMESTAMP"}
	args := []interface{}{newState}

	if fields.SubmittedAt != nil {
		set = append(set, "submitted_at = ?")
		args = append(args, *fields.SubmittedAt)
	}
	if fields.SubmittedBy != nil {
		set = append(set, "submitted_by = ?")
		args = append(args, *fields.SubmittedBy)
	}
	if fields.ApprovedAt != nil {
		set = append(set, "approved_at = ?")
		args = append(args, *fields.ApprovedAt)
	}
	if fields.ApprovedBy != nil {
		set = append(set, "approved_by = ?")
		args = append(args, *fields.ApprovedBy)
	}
	if fields.ActualEndDate != nil {
		set = append(set, "actual_end_date = ?")
		args = append(args, *fields.ActualEndDate)
	}

	args = append(args, id, expectedState)
	query := fmt.Sprintf("UPDATE projects SET %s WHERE id = ? AND status = ?", strings.Join(set, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to transition project state", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to transition project state: %w", err)
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

// Verify interface compliance
var _ port.ProjectRepository = (*ProjectRepository)(nil)
