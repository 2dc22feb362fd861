package workflow

// Pure queries over the transition tables. No I/O, no side effects; every
// function here may be called concurrently and repeatedly with identical
// results.

// IsValidTransition reports whether some table entry matches (from, to)
func IsValidTransition(kind Kind, from, to State) bool {
	_, ok := GetTransition(kind, from, to)
	return ok
}

// GetTransition returns the first table entry matching (from, to)
func GetTransition(kind Kind, from, to State) (Transition, bool) {
	for _, t := range TransitionsFor(kind) {
		if t.From == from && t.To == to {
			return t, true
		}
	}
	return Transition{}, false
}

// NextStates returns every state reachable from the given state in one step
func NextStates(kind Kind, from State) []State {
	seen := make(map[State]bool)
	var states []State
	for _, t := range TransitionsFor(kind) {
		if t.From == from && !seen[t.To] {
			seen[t.To] = true
			states = append(states, t.To)
		}
	}
	return states
}

// AvailableTransitions returns the transitions out of the given state whose
// required roles intersect the caller's roles
func AvailableTransitions(kind Kind, from State, roles []Role) []Transition {
	var available []Transition
	for _, t := range TransitionsFor(kind) {
		if t.From == from && t.Authorizes(roles) {
			available = append(available, t)
		}
	}
	return available
}

// CanUserTransition reports whether a matching transition exists and any one
// of the caller's roles satisfies its role requirement
func CanUserTransition(kind Kind, from, to State, roles []Role) bool {
	t, ok := GetTransition(kind, from, to)
	return ok && t.Authorizes(roles)
}
