package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a single legal successor per state:
//
//	Prep ──> Ready ──> Picked ──> OnRoute ──> Delivered
//
// Delivered is terminal. Any pair absent from the transition table, including
// same-state transitions, is rejected.
//
// String representations use the persisted wire names (PREP, READY, PICKED,
// ON_ROUTE, DELIVERED), which are a compatibility surface with existing data.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Prep is the initial status: the kitchen is preparing the order.
	Prep

	// Ready means preparation is finished and the order awaits pickup.
	Ready

	// Picked means the courier has collected the order.
	Picked

	// OnRoute means the order is being delivered.
	OnRoute

	// Delivered is the terminal status. No further transitions are allowed.
	Delivered
)

// transitions is the explicit transition table: each status maps to its only
// legal successor. Delivered has no entry because it is terminal.
func transitions() map[Status]Status {
	return map[Status]Status{
		Prep:    Ready,
		Ready:   Picked,
		Picked:  OnRoute,
		OnRoute: Delivered,
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Prep:      "PREP",
		Ready:     "READY",
		Picked:    "PICKED",
		OnRoute:   "ON_ROUTE",
		Delivered: "DELIVERED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Prep:      "PREP",
		Ready:     "READY",
		Picked:    "PICKED",
		OnRoute:   "ON_ROUTE",
		Delivered: "DELIVERED",
	}
}

// StatusFromString parses a persisted or user-supplied status name.
// Returns a ValueIsInvalidError for anything outside the five wire names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks that the Status value is one of the five valid states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
// Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	_, ok := transitions()[s]
	return !ok && s == Delivered
}

// AllowsAssignment reports whether a partner may be assigned in this status.
// A partner is only useful while the food is cooking or ready for pickup.
func (s Status) AllowsAssignment() bool {
	return s == Prep || s == Ready
}

// CanTransitionTo reports whether next is the legal successor of s,
// without performing the transition.
func (s Status) CanTransitionTo(next Status) bool {
	successor, ok := transitions()[s]
	return ok && successor == next
}

// TransitionTo moves the status to next.
//
// Returns (next, nil) when next is the single legal successor of s, and
// (0, ConflictError) otherwise. Used by Order.TransitionTo to enforce the
// lifecycle; the prep-window guard on Prep -> Ready lives on the aggregate
// because it needs the order's timestamps.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(next) {
		return 0, NewInvalidTransitionError(s, next)
	}

	return next, nil
}

// NewInvalidTransitionError builds the conflict error reported when a status
// change does not follow the transition table.
func NewInvalidTransitionError(from, to Status) *errs.ConflictError {
	return errs.NewConflictErrorWithCause(
		"status transition",
		fmt.Errorf("%s -> %s is not allowed", from, to),
	)
}
