package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

var (
	ErrNoPendingOrders     = errors.New("no pending orders found")
	ErrNoAvailablePartners = errors.New("no available partners found")
)

// AssignPendingOrdersCommandHandler runs the automatic assignment sweep.
//
// It reads the oldest unassigned order still in PREP or READY and the set of
// available partners, picks the best candidate via PartnerSelector, then
// delegates the actual binding to AssignPartnerCommandHandler. The delegate
// re-reads both records under the per-key locks, so a partner or order that
// changed between the candidate read and the binding fails the usual guards
// instead of being double-booked.
type AssignPendingOrdersCommandHandler struct {
	uowFactory UoWFactory
	assigner   AssignPartnerCommandHandler
	selector   services.PartnerSelector
}

// NewAssignPendingOrdersCommandHandler creates a handler for the assignment sweep.
func NewAssignPendingOrdersCommandHandler(uowFactory UoWFactory, assigner AssignPartnerCommandHandler) AssignPendingOrdersCommandHandler {
	return AssignPendingOrdersCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		selector:   services.NewPartnerSelector(),
	}
}

// Handle processes the sweep command.
// Returns ErrNoPendingOrders when every order already has a partner and
// ErrNoAvailablePartners when the whole fleet is busy. Both are expected
// outcomes for an idle system, not failures.
func (h AssignPendingOrdersCommandHandler) Handle(ctx context.Context, cmd AssignPendingOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pendingOrder, err := uow.OrderRepository().GetFirstUnassigned(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoPendingOrders
	}
	if err != nil {
		return err
	}

	partners, err := uow.PartnerRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}
	if len(partners) == 0 {
		return ErrNoAvailablePartners
	}

	candidate, err := h.selector.Select(partners)
	if errors.Is(err, services.ErrNoPartnerAvailable) {
		return ErrNoAvailablePartners
	}
	if err != nil {
		return err
	}

	// The candidate read is advisory. Release the read transaction before
	// taking the assignment locks to keep lock-then-transaction ordering
	// consistent with the direct assignment path.
	if err = uow.Rollback(ctx); err != nil {
		return err
	}

	assignCmd, err := NewAssignPartnerCommand(pendingOrder.ID(), candidate.ID())
	if err != nil {
		return err
	}

	_, err = h.assigner.Handle(ctx, assignCmd)
	return err
}
