package workflow

// Panel marks which financial-authorization control point a payment
// transition represents
type Panel string

const (
	// PanelNone marks transitions outside the two-panel authorization
	PanelNone Panel = ""
	// PanelA is the first control point (constituency level)
	PanelA Panel = "A"
	// PanelB is the second control point (provincial/ministry level)
	PanelB Panel = "B"
)

// Transition is one legal state-machine edge with its authorization and
// procedural requirements. Transitions are immutable records; the tables in
// tables.go are the only place they are constructed.
type Transition struct {
	From            State
	To              State
	Action          string
	RequiredRoles   []Role
	RequiresComment bool
	NotificationTag string
	// Panel applies only to payment transitions
	Panel Panel
}

// Authorizes reports whether any of the held roles satisfies this transition
func (t Transition) Authorizes(held []Role) bool {
	return hasAnyRole(t.RequiredRoles, held)
}
