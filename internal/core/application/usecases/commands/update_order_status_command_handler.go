package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/clock"
)

// UpdateOrderStatusCommandHandler advances an order along its lifecycle.
//
// Transitions follow the strict linear sequence PREP, READY, PICKED,
// ON_ROUTE, DELIVERED with no skipping and no reversal. Moving to READY is
// additionally gated on the order's minimum preparation window. When the
// order reaches DELIVERED its partner is released back to the available pool
// in the same transaction.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	locks      Locker
	clock      clock.Clock
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory, locks Locker, clk clock.Clock) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		clock:      clk,
	}
}

// Handle processes the status update command and returns the updated order.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	releaseOrder, err := h.locks.Acquire(ctx, orderLockKey(cmd.OrderID()))
	if err != nil {
		return nil, err
	}
	defer releaseOrder()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	targetOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = targetOrder.TransitionTo(cmd.Status(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, targetOrder); err != nil {
		return nil, err
	}

	if cmd.Status() == order.Delivered && targetOrder.Partner() != nil {
		if err = h.releasePartner(ctx, uow, targetOrder); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return targetOrder, nil
}

// releasePartner frees the partner bound to a delivered order. The partner
// key lock is held only for the duration of the availability flip.
func (h UpdateOrderStatusCommandHandler) releasePartner(ctx context.Context, uow UoW, deliveredOrder *order.Order) error {
	partnerID := *deliveredOrder.Partner()

	releaseLock, err := h.locks.Acquire(ctx, partnerLockKey(partnerID))
	if err != nil {
		return err
	}
	defer releaseLock()

	boundPartner, err := uow.PartnerRepository().Get(ctx, partnerID)
	if err != nil {
		return err
	}

	boundPartner.Release()

	return uow.PartnerRepository().Update(ctx, boundPartner)
}
