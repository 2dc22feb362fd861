package workflow

// State represents a workflow state in an approval lifecycle
type State string

// Project states
const (
	StateDraft          State = "draft"
	StateSubmitted      State = "submitted"
	StateCDFCReview     State = "cdfc_review"
	StateTACAppraisal   State = "tac_appraisal"
	StatePLGOReview     State = "plgo_review"
	StateApproved       State = "approved"
	StateImplementation State = "implementation"
	StateCompleted      State = "completed"
	StateRejected       State = "rejected"
	StateCancelled      State = "cancelled"
)

// Payment states. StateApproved, StateRejected and StateCancelled are shared
// with the project set.
const (
	StatePending        State = "pending"
	StatePanelAApproved State = "panel_a_approved"
	StatePanelARejected State = "panel_a_rejected"
	StatePanelBApproved State = "panel_b_approved"
	StateDisbursed      State = "disbursed"
)

var projectStates = map[State]bool{
	StateDraft:          true,
	StateSubmitted:      true,
	StateCDFCReview:     true,
	StateTACAppraisal:   true,
	StatePLGOReview:     true,
	StateApproved:       true,
	StateImplementation: true,
	StateCompleted:      true,
	StateRejected:       true,
	StateCancelled:      true,
}

// panel_b_approved is declared in the statutory state set but no transition
// currently targets or originates from it. Kept until the schedule is amended
// or the state is formally retired.
var paymentStates = map[State]bool{
	StatePending:        true,
	StatePanelAApproved: true,
	StatePanelARejected: true,
	StatePanelBApproved: true,
	StateApproved:       true,
	StateRejected:       true,
	StateDisbursed:      true,
	StateCancelled:      true,
}

var projectTerminalStates = map[State]bool{
	StateCompleted: true,
	StateCancelled: true,
}

var paymentTerminalStates = map[State]bool{
	StateDisbursed: true,
	StateRejected:  true,
	StateCancelled: true,
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValidState returns true if the state belongs to the given kind's state set
func IsValidState(kind Kind, s State) bool {
	switch kind {
	case KindProject:
		return projectStates[s]
	case KindPayment:
		return paymentStates[s]
	default:
		return false
	}
}

// IsTerminalState returns true if the state has no outgoing transitions by design
func IsTerminalState(kind Kind, s State) bool {
	switch kind {
	case KindProject:
		return projectTerminalStates[s]
	case KindPayment:
		return paymentTerminalStates[s]
	default:
		return false
	}
}
