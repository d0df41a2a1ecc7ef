package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/clock"
)

// AssignPartnerCommandHandler coordinates the binding of a delivery partner
// to an order.
//
// Guards are evaluated in a fixed sequence, first failure wins: order exists,
// partner exists, partner is available, order has no partner yet, order is in
// PREP or READY. On success the partner's ETA is folded into the order's
// dispatch estimate, the partner is reserved, and both records are persisted
// in one transaction.
//
// The handler serializes per order and per partner: it holds the order-key
// lock across the whole operation and the partner-key lock across the
// availability change, so concurrent assignments cannot double-bind either
// side.
type AssignPartnerCommandHandler struct {
	uowFactory UoWFactory
	locks      Locker
	clock      clock.Clock
	calculator services.DispatchTimeCalculator
}

// NewAssignPartnerCommandHandler creates a handler for partner assignment.
func NewAssignPartnerCommandHandler(uowFactory UoWFactory, locks Locker, clk clock.Clock) AssignPartnerCommandHandler {
	return AssignPartnerCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		clock:      clk,
		calculator: services.NewDispatchTimeCalculator(),
	}
}

// Handle processes the assignment command and returns the updated order.
func (h AssignPartnerCommandHandler) Handle(ctx context.Context, cmd AssignPartnerCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	releaseOrder, err := h.locks.Acquire(ctx, orderLockKey(cmd.OrderID()))
	if err != nil {
		return nil, err
	}
	defer releaseOrder()

	releasePartner, err := h.locks.Acquire(ctx, partnerLockKey(cmd.PartnerID()))
	if err != nil {
		return nil, err
	}
	defer releasePartner()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	partnerRepo := uow.PartnerRepository()

	targetOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	targetPartner, err := partnerRepo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return nil, err
	}

	if err = targetPartner.Reserve(); err != nil {
		return nil, err
	}

	if err = targetOrder.AssignPartner(targetPartner.ID()); err != nil {
		return nil, err
	}

	revised := h.calculator.Revise(targetOrder.DispatchTime(), h.clock.Now(), targetPartner.ETA())
	if err = targetOrder.RescheduleDispatch(revised); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, targetOrder); err != nil {
		return nil, err
	}

	if err = partnerRepo.Update(ctx, targetPartner); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return targetOrder, nil
}
