package workflow

// The transition tables are the declarative catalog of every legal state
// change per workflow kind. They are package-level constants in all but name:
// constructed once at init, never mutated, safe for concurrent reads.
//
// Invariant (maintained by hand, checked in tests): no (from, to) pair appears
// twice within one table.

var projectTransitions = []Transition{
	{
		From:            StateDraft,
		To:              StateSubmitted,
		Action:          "submit",
		RequiredRoles:   []Role{RoleMP},
		NotificationTag: "project.submitted",
	},
	{
		From:            StateDraft,
		To:              StateCancelled,
		Action:          "cancel",
		RequiredRoles:   []Role{RoleMP, RoleSuperAdmin},
		NotificationTag: "project.cancelled",
	},
	{
		From:            StateSubmitted,
		To:              StateCDFCReview,
		Action:          "accept_for_review",
		RequiredRoles:   []Role{RoleCDFCChair},
		NotificationTag: "project.accepted_for_review",
	},
	{
		From:            StateSubmitted,
		To:              StateRejected,
		Action:          "reject",
		RequiredRoles:   []Role{RoleCDFCChair},
		RequiresComment: true,
		NotificationTag: "project.rejected",
	},
	{
		From:            StateSubmitted,
		To:              StateCancelled,
		Action:          "cancel",
		RequiredRoles:   []Role{RoleMP, RoleSuperAdmin},
		NotificationTag: "project.cancelled",
	},
	{
		From:            StateCDFCReview,
		To:              StateTACAppraisal,
		Action:          "refer_for_appraisal",
		RequiredRoles:   []Role{RoleCDFCChair},
		NotificationTag: "project.referred_for_appraisal",
	},
	{
		From:            StateCDFCReview,
		To:              StateRejected,
		Action:          "reject",
		RequiredRoles:   []Role{RoleCDFCChair},
		RequiresComment: true,
		NotificationTag: "project.rejected",
	},
	{
		From:            StateTACAppraisal,
		To:              StatePLGOReview,
		Action:          "recommend",
		RequiredRoles:   []Role{RoleTACChair},
		NotificationTag: "project.recommended",
	},
	{
		From:            StateTACAppraisal,
		To:              StateRejected,
		Action:          "reject",
		RequiredRoles:   []Role{RoleTACChair},
		RequiresComment: true,
		NotificationTag: "project.rejected",
	},
	{
		From:            StatePLGOReview,
		To:              StateApproved,
		Action:          "approve",
		RequiredRoles:   []Role{RolePLGO, RoleMinistryOfficial},
		NotificationTag: "project.approved",
	},
	{
		From:            StatePLGOReview,
		To:              StateRejected,
		Action:          "reject",
		RequiredRoles:   []Role{RolePLGO},
		RequiresComment: true,
		NotificationTag: "project.rejected",
	},
	{
		From:            StateApproved,
		To:              StateImplementation,
		Action:          "commence",
		RequiredRoles:   []Role{RolePLGO, RoleCDFCChair},
		NotificationTag: "project.implementation_started",
	},
	{
		From:            StateApproved,
		To:              StateCancelled,
		Action:          "cancel",
		RequiredRoles:   []Role{RoleMinistryOfficial, RoleSuperAdmin},
		RequiresComment: true,
		NotificationTag: "project.cancelled",
	},
	{
		From:            StateImplementation,
		To:              StateCompleted,
		Action:          "complete",
		RequiredRoles:   []Role{RoleCDFCChair, RolePLGO},
		NotificationTag: "project.completed",
	},
	{
		From:            StateImplementation,
		To:              StateCancelled,
		Action:          "cancel",
		RequiredRoles:   []Role{RoleMinistryOfficial, RoleSuperAdmin},
		RequiresComment: true,
		NotificationTag: "project.cancelled",
	},
	// The single revise back-edge: a rejected project returns to draft for rework.
	{
		From:            StateRejected,
		To:              StateDraft,
		Action:          "revise",
		RequiredRoles:   []Role{RoleMP},
		NotificationTag: "project.returned_for_revision",
	},
}

var paymentTransitions = []Transition{
	{
		From:            StatePending,
		To:              StatePanelAApproved,
		Action:          "panel_a_approve",
		RequiredRoles:   []Role{RoleMP, RoleCDFCChair},
		NotificationTag: "payment.panel_a_approved",
		Panel:           PanelA,
	},
	{
		From:            StatePending,
		To:              StatePanelARejected,
		Action:          "panel_a_reject",
		RequiredRoles:   []Role{RoleMP, RoleCDFCChair},
		RequiresComment: true,
		NotificationTag: "payment.panel_a_rejected",
		Panel:           PanelA,
	},
	{
		From:            StatePending,
		To:              StateCancelled,
		Action:          "cancel",
		RequiredRoles:   []Role{RoleFinanceOfficer, RoleSuperAdmin},
		RequiresComment: true,
		NotificationTag: "payment.cancelled",
	},
	// Panel B approval moves straight to approved; panel_b_approved is not an
	// edge target in the current schedule.
	{
		From:            StatePanelAApproved,
		To:              StateApproved,
		Action:          "panel_b_approve",
		RequiredRoles:   []Role{RolePLGO, RoleMinistryOfficial},
		NotificationTag: "payment.approved",
		Panel:           PanelB,
	},
	{
		From:            StatePanelAApproved,
		To:              StateRejected,
		Action:          "panel_b_reject",
		RequiredRoles:   []Role{RolePLGO, RoleMinistryOfficial},
		RequiresComment: true,
		NotificationTag: "payment.rejected",
		Panel:           PanelB,
	},
	{
		From:            StatePanelAApproved,
		To:              StateCancelled,
		Action:          "cancel",
		RequiredRoles:   []Role{RoleFinanceOfficer, RoleSuperAdmin},
		RequiresComment: true,
		NotificationTag: "payment.cancelled",
	},
	// The single revise back-edge: a Panel A rejection returns the payment to
	// pending for resubmission.
	{
		From:            StatePanelARejected,
		To:              StatePending,
		Action:          "resubmit",
		RequiredRoles:   []Role{RoleFinanceOfficer},
		NotificationTag: "payment.resubmitted",
	},
	{
		From:            StateApproved,
		To:              StateDisbursed,
		Action:          "disburse",
		RequiredRoles:   []Role{RoleFinanceOfficer},
		NotificationTag: "payment.disbursed",
	},
	{
		From:            StateApproved,
		To:              StateCancelled,
		Action:          "cancel",
		RequiredRoles:   []Role{RoleMinistryOfficial, RoleSuperAdmin},
		RequiresComment: true,
		NotificationTag: "payment.cancelled",
	},
}

// TransitionsFor returns the ordered transition table for the given kind.
// The returned slice must be treated as read-only.
func TransitionsFor(kind Kind) []Transition {
	switch kind {
	case KindProject:
		return projectTransitions
	case KindPayment:
		return paymentTransitions
	default:
		return nil
	}
}
