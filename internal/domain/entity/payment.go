package entity

import "time"

// Payment is a fund disbursement moving through the segregated two-panel
// financial authorization pipeline.
type Payment struct {
	ID               int64      `json:"id"`
	ProjectID        int64      `json:"project_id"`
	Reference        string     `json:"reference"`
	Payee            string     `json:"payee"`
	AmountCents      int64      `json:"amount_cents"`
	Status           string     `json:"status"`
	PanelAApproverID string     `json:"panel_a_approver_id,omitempty"`
	PanelAApprovedAt *time.Time `json:"panel_a_approved_at,omitempty"`
	PanelADecision   string     `json:"panel_a_decision,omitempty"`
	PanelAComment    string     `json:"panel_a_comment,omitempty"`
	PanelBApproverID string     `json:"panel_b_approver_id,omitempty"`
	PanelBApprovedAt *time.Time `json:"panel_b_approved_at,omitempty"`
	PanelBDecision   string     `json:"panel_b_decision,omitempty"`
	PanelBComment    string     `json:"panel_b_comment,omitempty"`
	DisbursedAt      *time.Time `json:"disbursed_at,omitempty"`
	DisbursedBy      string     `json:"disbursed_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// PaymentStateFields are the side-effect columns written together with a
// payment state change. Nil fields are left untouched.
type PaymentStateFields struct {
	PanelAApproverID *string
	PanelAApprovedAt *time.Time
	PanelADecision   *string
	PanelAComment    *string
	PanelBApproverID *string
	PanelBApprovedAt *time.Time
	PanelBDecision   *string
	PanelBComment    *string
	DisbursedAt      *time.Time
	DisbursedBy      *string
}
