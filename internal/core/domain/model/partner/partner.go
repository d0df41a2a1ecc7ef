package partner

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when creating a partner without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrPartnerIsNotConstructed is returned when using a DeliveryPartner
	// that was not created via NewDeliveryPartner or RestoreDeliveryPartner.
	ErrPartnerIsNotConstructed = errors.New(
		"DeliveryPartner must be created via NewDeliveryPartner or RestoreDeliveryPartner")

	// ErrPartnerUnavailable is returned on an attempt to reserve a partner
	// who is already bound to an active order.
	ErrPartnerUnavailable = errs.NewConflictError("delivery partner is not available")
)

// DeliveryPartner is the aggregate root for a courier who delivers orders.
//
// Availability is the mutual-exclusion flag for assignment: an available
// partner may be reserved for exactly one order, stays unavailable while that
// order is active, and is released back when the order reaches DELIVERED.
//
// The optional ETA is the extra travel time in minutes the partner needs once
// assigned; it is added on top of the order's existing dispatch estimate.
type DeliveryPartner struct {
	// id uniquely identifies the partner
	id kernel.UUID
	// name is the partner's display name
	name string
	// isAvailable is true while the partner may take a new order
	isAvailable bool
	// eta is the additional travel time in minutes (nil when unknown)
	eta *int
	// guard ensures the partner was created via a factory function
	guard guard.ConstructorGuard
}

// NewDeliveryPartner registers a new partner. New partners start available.
//
// Parameters:
//   - id: unique identifier (must be a constructed UUID)
//   - name: display name (must be non-empty)
//   - eta: optional travel time in minutes; must be non-negative when set
func NewDeliveryPartner(id kernel.UUID, name string, eta *int) (*DeliveryPartner, error) {
	p := &DeliveryPartner{
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setETA(eta),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreDeliveryPartner reconstructs a partner from persisted state,
// including the current availability flag.
func RestoreDeliveryPartner(id kernel.UUID, name string, isAvailable bool, eta *int) (*DeliveryPartner, error) {
	p, err := NewDeliveryPartner(id, name, eta)
	if err != nil {
		return nil, err
	}

	p.isAvailable = isAvailable
	return p, nil
}

// Validate ensures the partner was created through a factory function.
func (p *DeliveryPartner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

// IsEqual compares two partners by identifier.
func (p *DeliveryPartner) IsEqual(other *DeliveryPartner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the partner's unique identifier.
func (p *DeliveryPartner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's display name.
func (p *DeliveryPartner) Name() string {
	return p.name
}

// IsAvailable reports whether the partner may take a new order.
func (p *DeliveryPartner) IsAvailable() bool {
	return p.isAvailable
}

// ETA returns the partner's additional travel time in minutes, or nil when
// unknown.
func (p *DeliveryPartner) ETA() *int {
	return p.eta
}

// Reserve binds the partner to an order, making them unavailable for further
// assignment. Fails with ErrPartnerUnavailable if the partner is already
// reserved, so two orders can never hold the same partner.
func (p *DeliveryPartner) Reserve() error {
	if !p.isAvailable {
		return ErrPartnerUnavailable
	}
	p.isAvailable = false
	return nil
}

// Release returns the partner to the available pool. Called exactly when the
// order holding the reservation reaches DELIVERED. Releasing an already
// available partner is a no-op.
func (p *DeliveryPartner) Release() {
	p.isAvailable = true
}

func (p *DeliveryPartner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *DeliveryPartner) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *DeliveryPartner) setETA(eta *int) error {
	if eta == nil {
		return nil
	}
	if *eta < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"eta", fmt.Errorf("%d is not a non-negative minute count", *eta))
	}
	minutes := *eta
	p.eta = &minutes
	return nil
}
