package commands

import (
	"context"

	"dispatch/internal/core/domain/model/partner"
)

// CreatePartnerCommandHandler registers new delivery partners.
// Partners enter the pool available for assignment.
type CreatePartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewCreatePartnerCommandHandler creates a handler for partner registration.
func NewCreatePartnerCommandHandler(uowFactory PartnerUoWFactory) CreatePartnerCommandHandler {
	return CreatePartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the partner registration command and returns the created
// partner.
func (h CreatePartnerCommandHandler) Handle(
	ctx context.Context,
	cmd CreatePartnerCommand,
) (*partner.DeliveryPartner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newPartner, err := partner.NewDeliveryPartner(cmd.PartnerID(), cmd.Name(), cmd.ETA())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PartnerRepository().Add(ctx, newPartner); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newPartner, nil
}
