package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrItemsAreRequired is returned when an order is created without an
	// items description.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")

	// ErrPrepTimeIsRequired is returned when an order is created without a
	// positive prep time.
	ErrPrepTimeIsRequired = errs.NewValueIsRequiredError("prep time")

	// ErrCreatedAtIsRequired is returned when an order is created with a zero
	// creation timestamp.
	ErrCreatedAtIsRequired = errs.NewValueIsRequiredError("created at")

	// ErrPartnerAlreadyAssigned is returned on an attempt to assign a partner
	// to an order that already has one. Assignment happens at most once per
	// order lifetime; repeats are rejected, not silently ignored.
	ErrPartnerAlreadyAssigned = errs.NewConflictError("order is already assigned to a partner")

	// ErrPrematureTransition is the sentinel for PrematureTransitionError,
	// usable with errors.Is.
	ErrPrematureTransition = errors.New("order cannot be marked as ready yet")
)

// PrematureTransitionError is returned when a Prep -> Ready transition is
// attempted before the kitchen prep window has elapsed. Unlike the conflict
// errors it is retryable: the caller only has to wait RemainingMinutes.
type PrematureTransitionError struct {
	// RemainingMinutes is the whole minutes left until the order may be
	// marked ready, truncated toward zero.
	RemainingMinutes int
}

func (e *PrematureTransitionError) Error() string {
	return fmt.Sprintf("order cannot be marked as ready yet, wait %d more minutes", e.RemainingMinutes)
}

func (e *PrematureTransitionError) Unwrap() error {
	return ErrPrematureTransition
}

// NewInvalidStateForAssignmentError builds the conflict error reported when a
// partner assignment is attempted outside the Prep/Ready window.
func NewInvalidStateForAssignmentError(s Status) *errs.ConflictError {
	return errs.NewConflictErrorWithCause(
		"partner assignment",
		fmt.Errorf("%s is not a valid status to assign a partner", s),
	)
}

// Order is the aggregate root for a food-delivery order. It owns the status
// lifecycle, the dispatch-time estimate, and the single partner binding.
//
// Invariants:
//   - status only moves forward along the fixed transition graph
//   - at most one partner is ever assigned, and never reassigned
//   - dispatchTime is never before createdAt
//   - prepTime is positive and immutable after creation
//
// Fields are private; all mutation goes through validated methods, and
// instances are only created through NewOrder or RestoreOrder.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// items is the free-text description of what the kitchen prepares
	items string

	// prepTime is the kitchen preparation window in minutes
	prepTime int

	// createdAt is the moment the order was accepted
	createdAt time.Time

	// dispatchTime is the current best estimate of the hand-off moment
	dispatchTime time.Time

	// partnerID is the assigned delivery partner (nil while unassigned)
	partnerID *kernel.UUID

	// status is the current state in the order lifecycle
	status Status

	// guard ensures the order was created via a factory function
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Prep status.
//
// Parameters:
//   - id: unique identifier (must be a constructed UUID)
//   - items: description of the order contents (must be non-empty)
//   - prepTime: kitchen prep window in minutes (must be positive)
//   - createdAt: creation timestamp (must be non-zero)
//   - dispatchTime: initial dispatch estimate (must not precede createdAt)
//
// Returns a validation error if any argument breaks an invariant; errors for
// multiple invalid arguments are joined.
func NewOrder(
	id kernel.UUID,
	items string,
	prepTime int,
	createdAt time.Time,
	dispatchTime time.Time,
) (*Order, error) {
	o := &Order{
		status: Prep,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
		o.setPrepTime(prepTime),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	if err := o.setDispatchTime(dispatchTime); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state. Unlike NewOrder it
// accepts any valid status and an optional partner binding, re-validating the
// persisted values on the way in.
func RestoreOrder(
	id kernel.UUID,
	items string,
	prepTime int,
	createdAt time.Time,
	dispatchTime time.Time,
	status Status,
	partnerID *kernel.UUID,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
		o.setPrepTime(prepTime),
		o.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := o.setDispatchTime(dispatchTime); err != nil {
		return nil, err
	}

	if partnerID != nil {
		if err := partnerID.Validate(); err != nil {
			return nil, err
		}
		partner := *partnerID
		o.partnerID = &partner
	}

	o.status = status
	return o, nil
}

// Validate ensures the Order instance was created through a factory function.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Items returns the order contents description.
func (o *Order) Items() string {
	return o.items
}

// PrepTime returns the kitchen prep window in minutes.
func (o *Order) PrepTime() int {
	return o.prepTime
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DispatchTime returns the current dispatch estimate.
func (o *Order) DispatchTime() time.Time {
	return o.dispatchTime
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Partner returns the assigned partner's ID, or nil while unassigned.
func (o *Order) Partner() *kernel.UUID {
	return o.partnerID
}

// MinReadyTime returns the earliest moment the order may be marked ready:
// createdAt plus the prep window.
func (o *Order) MinReadyTime() time.Time {
	return o.createdAt.Add(time.Duration(o.prepTime) * time.Minute)
}

// TransitionTo advances the order to next at the given moment.
//
// The transition must follow the status table (each state has exactly one
// legal successor). The Prep -> Ready edge is additionally guarded by the
// prep window: before MinReadyTime the call fails with a
// PrematureTransitionError carrying the remaining whole minutes, truncated.
// A transition attempted exactly at MinReadyTime succeeds.
//
// On success only the status field changes. Releasing the partner on
// Delivered is owned by the caller, since it touches another aggregate.
func (o *Order) TransitionTo(next Status, now time.Time) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	if next == Ready {
		if minReady := o.MinReadyTime(); now.Before(minReady) {
			return &PrematureTransitionError{
				RemainingMinutes: int(minReady.Sub(now) / time.Minute),
			}
		}
	}

	o.status = newStatus
	return nil
}

// AssignPartner binds the order to a delivery partner.
//
// Fails with ErrPartnerAlreadyAssigned if a partner is already bound (the
// binding is permanent for the order's lifetime), and with an
// invalid-state conflict unless the order is in Prep or Ready.
func (o *Order) AssignPartner(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	if o.partnerID != nil {
		return ErrPartnerAlreadyAssigned
	}

	if !o.status.AllowsAssignment() {
		return NewInvalidStateForAssignmentError(o.status)
	}

	o.partnerID = &partnerID
	return nil
}

// RescheduleDispatch replaces the dispatch estimate. The new estimate must
// not precede the creation timestamp.
func (o *Order) RescheduleDispatch(t time.Time) error {
	return o.setDispatchTime(t)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setItems(items string) error {
	if items == "" {
		return ErrItemsAreRequired
	}
	o.items = items
	return nil
}

func (o *Order) setPrepTime(prepTime int) error {
	if prepTime == 0 {
		return ErrPrepTimeIsRequired
	}
	if prepTime < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"prep time", fmt.Errorf("%d is not greater than 0", prepTime))
	}
	o.prepTime = prepTime
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return ErrCreatedAtIsRequired
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setDispatchTime(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("dispatch time")
	}
	if t.Before(o.createdAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"dispatch time",
			fmt.Errorf("dispatch time %s is before creation time %s", t, o.createdAt))
	}
	o.dispatchTime = t
	return nil
}
