package workflow

import "fmt"

// CheckSegregation enforces the statutory separation of the two payment
// control points: the officer who decided Panel A may not decide Panel B on
// the same payment. panelAApproverID is empty when Panel A has not been
// decided yet, in which case there is nothing to enforce.
//
// Only transitions tagged PanelB are subject to this check; the execution
// service decides when to invoke it.
func CheckSegregation(panelAApproverID, actorID string) error {
	if panelAApproverID != "" && panelAApproverID == actorID {
		return fmt.Errorf("%w: actor %s authorized panel A and may not authorize panel B on the same payment (CDF Act s.34(2))",
			ErrSegregationViolation, actorID)
	}
	return nil
}
