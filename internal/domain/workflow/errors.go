package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the entity snapshot does not exist
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidTransition is returned when no transition table entry matches
	// the requested (from, to) pair
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrUnauthorized is returned when none of the caller's roles matches the
	// transition's required roles
	ErrUnauthorized = errors.New("role not authorized for transition")

	// ErrSegregationViolation is returned when the Panel A approver attempts a
	// Panel B decision on the same payment (CDF Act s.34(2): the two control
	// points of a payment must be authorized by different officers)
	ErrSegregationViolation = errors.New("segregation of duty violation")

	// ErrCommentRequired is returned when a transition mandates a comment and
	// none was supplied
	ErrCommentRequired = errors.New("comment required for transition")
)

// ErrStateConflict is returned when the conditional state write lost a race
// with a concurrent transition. It is an ErrInvalidTransition-class error:
// the caller may re-read the entity and retry against the fresh state.
var ErrStateConflict = fmt.Errorf("%w: entity state changed concurrently", ErrInvalidTransition)
