package entity

import "time"

// Project is a constituency development project moving through the
// multi-committee approval pipeline.
type Project struct {
	ID            int64      `json:"id"`
	Code          string     `json:"code"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Constituency  string     `json:"constituency"`
	AmountCents   int64      `json:"amount_cents"`
	Status        string     `json:"status"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	SubmittedBy   string     `json:"submitted_by,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	ApprovedBy    string     `json:"approved_by,omitempty"`
	ActualEndDate *time.Time `json:"actual_end_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ProjectStateFields are the side-effect columns written together with a
// project state change. Nil fields are left untouched.
type ProjectStateFields struct {
	SubmittedAt   *time.Time
	SubmittedBy   *string
	ApprovedAt    *time.Time
	ApprovedBy    *string
	ActualEndDate *time.Time
}
