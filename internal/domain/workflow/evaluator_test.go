package workflow

import "testing"

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		from     State
		to       State
		expected bool
	}{
		{"project submit", KindProject, StateDraft, StateSubmitted, true},
		{"project accept for review", KindProject, StateSubmitted, StateCDFCReview, true},
		{"project revise back-edge", KindProject, StateRejected, StateDraft, true},
		{"project skip pipeline", KindProject, StateDraft, StateApproved, false},
		{"project backwards", KindProject, StateApproved, StateSubmitted, false},
		{"project out of terminal", KindProject, StateCompleted, StateDraft, false},
		{"payment panel a", KindPayment, StatePending, StatePanelAApproved, true},
		{"payment panel b", KindPayment, StatePanelAApproved, StateApproved, true},
		{"payment resubmit back-edge", KindPayment, StatePanelARejected, StatePending, true},
		{"payment skip panel a", KindPayment, StatePending, StateApproved, false},
		{"payment disburse unapproved", KindPayment, StatePending, StateDisbursed, false},
		{"payment panel_b_approved unreachable", KindPayment, StatePanelAApproved, StatePanelBApproved, false},
		{"unknown kind", Kind("ledger"), StateDraft, StateSubmitted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidTransition(tt.kind, tt.from, tt.to); got != tt.expected {
				t.Errorf("IsValidTransition(%s, %s, %s) = %v, want %v", tt.kind, tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestGetTransition(t *testing.T) {
	tr, ok := GetTransition(KindProject, StateSubmitted, StateCDFCReview)
	if !ok {
		t.Fatal("GetTransition() should find submitted -> cdfc_review")
	}
	if tr.Action != "accept_for_review" {
		t.Errorf("Action = %s, want accept_for_review", tr.Action)
	}
	if tr.NotificationTag != "project.accepted_for_review" {
		t.Errorf("NotificationTag = %s, want project.accepted_for_review", tr.NotificationTag)
	}

	if _, ok := GetTransition(KindPayment, StateDisbursed, StatePending); ok {
		t.Error("GetTransition() should not find an edge out of a terminal state")
	}
}

func TestNextStates(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		from     State
		expected map[State]bool
	}{
		{
			"project draft",
			KindProject, StateDraft,
			map[State]bool{StateSubmitted: true, StateCancelled: true},
		},
		{
			"payment pending",
			KindPayment, StatePending,
			map[State]bool{StatePanelAApproved: true, StatePanelARejected: true, StateCancelled: true},
		},
		{
			"terminal state",
			KindPayment, StateDisbursed,
			map[State]bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextStates(tt.kind, tt.from)
			if len(got) != len(tt.expected) {
				t.Fatalf("NextStates() returned %d states, want %d: %v", len(got), len(tt.expected), got)
			}
			for _, s := range got {
				if !tt.expected[s] {
					t.Errorf("NextStates() returned unexpected state %s", s)
				}
			}
		})
	}
}

func TestAvailableTransitions(t *testing.T) {
	// cdfc_chair can accept or reject a submitted project
	available := AvailableTransitions(KindProject, StateSubmitted, []Role{RoleCDFCChair})
	if len(available) != 2 {
		t.Fatalf("AvailableTransitions() = %d transitions, want 2", len(available))
	}

	// finance_officer has nothing to do with a submitted project
	available = AvailableTransitions(KindProject, StateSubmitted, []Role{RoleFinanceOfficer})
	if len(available) != 0 {
		t.Errorf("AvailableTransitions() = %d transitions, want 0", len(available))
	}

	// no roles, nothing available
	available = AvailableTransitions(KindPayment, StatePending, nil)
	if len(available) != 0 {
		t.Errorf("AvailableTransitions() with no roles = %d transitions, want 0", len(available))
	}
}

func TestCanUserTransition_AnyOneRoleSuffices(t *testing.T) {
	tests := []struct {
		name     string
		roles    []Role
		expected bool
	}{
		{"exact role", []Role{RolePLGO}, true},
		{"alternate role", []Role{RoleMinistryOfficial}, true},
		{"one of many held roles matches", []Role{RoleFinanceOfficer, RoleMP, RolePLGO}, true},
		{"disjoint roles", []Role{RoleMP, RoleCDFCChair}, false},
		{"no roles", nil, false},
		{"unknown role string", []Role{Role("auditor_general")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanUserTransition(KindProject, StatePLGOReview, StateApproved, tt.roles)
			if got != tt.expected {
				t.Errorf("CanUserTransition() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCanUserTransition_NoEdge(t *testing.T) {
	// role is fine but the edge does not exist
	if CanUserTransition(KindProject, StateDraft, StateApproved, []Role{RoleSuperAdmin}) {
		t.Error("CanUserTransition() should be false when no table entry matches")
	}
}

func TestQueriesAreIdempotent(t *testing.T) {
	first := AvailableTransitions(KindPayment, StatePending, []Role{RoleMP})
	second := AvailableTransitions(KindPayment, StatePending, []Role{RoleMP})
	if len(first) != len(second) {
		t.Fatalf("repeated AvailableTransitions() differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Action != second[i].Action || first[i].To != second[i].To {
			t.Errorf("repeated AvailableTransitions() differ at %d", i)
		}
	}
}
