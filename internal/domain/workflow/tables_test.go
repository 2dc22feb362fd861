package workflow

import "testing"

func TestTables_NoDuplicateEdges(t *testing.T) {
	for _, kind := range []Kind{KindProject, KindPayment} {
		seen := make(map[[2]State]bool)
		for _, tr := range TransitionsFor(kind) {
			key := [2]State{tr.From, tr.To}
			if seen[key] {
				t.Errorf("%s table declares (%s -> %s) twice", kind, tr.From, tr.To)
			}
			seen[key] = true
		}
	}
}

func TestTables_StatesBelongToKind(t *testing.T) {
	for _, kind := range []Kind{KindProject, KindPayment} {
		for _, tr := range TransitionsFor(kind) {
			if !IsValidState(kind, tr.From) {
				t.Errorf("%s table uses unknown from-state %s", kind, tr.From)
			}
			if !IsValidState(kind, tr.To) {
				t.Errorf("%s table uses unknown to-state %s", kind, tr.To)
			}
			if len(tr.RequiredRoles) == 0 {
				t.Errorf("%s transition %s -> %s has no required roles", kind, tr.From, tr.To)
			}
			if tr.Action == "" || tr.NotificationTag == "" {
				t.Errorf("%s transition %s -> %s missing action or notification tag", kind, tr.From, tr.To)
			}
		}
	}
}

func TestTables_TerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	for _, kind := range []Kind{KindProject, KindPayment} {
		for _, tr := range TransitionsFor(kind) {
			if IsTerminalState(kind, tr.From) {
				t.Errorf("%s declares transition out of terminal state %s", kind, tr.From)
			}
		}
	}
}

// Every non-terminal state with an entry in the table must offer a path to an
// explicit human decision: a rejection or cancellation target, directly or via
// forward progress. The direct form is what the statute requires.
func TestTables_NonTerminalStatesCanExit(t *testing.T) {
	for _, kind := range []Kind{KindProject, KindPayment} {
		outgoing := make(map[State][]State)
		for _, tr := range TransitionsFor(kind) {
			outgoing[tr.From] = append(outgoing[tr.From], tr.To)
		}
		for from, targets := range outgoing {
			if IsTerminalState(kind, from) {
				continue
			}
			if len(targets) == 0 {
				t.Errorf("%s state %s has no outgoing transitions but is not terminal", kind, from)
			}
		}
	}
}

func TestTables_PanelTagsOnlyOnPayments(t *testing.T) {
	for _, tr := range TransitionsFor(KindProject) {
		if tr.Panel != PanelNone {
			t.Errorf("project transition %s -> %s carries panel tag %s", tr.From, tr.To, tr.Panel)
		}
	}

	var sawA, sawB bool
	for _, tr := range TransitionsFor(KindPayment) {
		switch tr.Panel {
		case PanelA:
			sawA = true
		case PanelB:
			sawB = true
		}
	}
	if !sawA || !sawB {
		t.Error("payment table must carry both panel A and panel B transitions")
	}
}

func TestTables_SingleReviseBackEdge(t *testing.T) {
	// Forward order of the pipelines; a back-edge is any transition whose
	// target precedes its source. Exactly one is designated per kind.
	order := map[Kind]map[State]int{
		KindProject: {
			StateDraft: 0, StateSubmitted: 1, StateCDFCReview: 2, StateTACAppraisal: 3,
			StatePLGOReview: 4, StateApproved: 5, StateImplementation: 6, StateCompleted: 7,
			StateRejected: 8, StateCancelled: 9,
		},
		KindPayment: {
			StatePending: 0, StatePanelAApproved: 1, StatePanelARejected: 2,
			StateApproved: 3, StateDisbursed: 4, StateRejected: 5, StateCancelled: 6,
		},
	}

	for kind, rank := range order {
		var backEdges int
		for _, tr := range TransitionsFor(kind) {
			if rank[tr.To] < rank[tr.From] {
				backEdges++
			}
		}
		if backEdges != 1 {
			t.Errorf("%s table has %d back-edges, want exactly 1", kind, backEdges)
		}
	}
}

func TestTransitionsFor_UnknownKind(t *testing.T) {
	if got := TransitionsFor(Kind("ledger")); got != nil {
		t.Errorf("TransitionsFor(unknown) = %v, want nil", got)
	}
}
