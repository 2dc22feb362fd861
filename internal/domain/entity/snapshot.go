package entity

// Snapshot is the minimal projection the workflow core reads before
// evaluating a transition. It is loaded fresh for every request and never
// cached; PanelAApproverID is populated for payments only.
type Snapshot struct {
	ID               int64
	CurrentState     string
	PanelAApproverID string
}
