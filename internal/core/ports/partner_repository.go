package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for delivery partner
// aggregates.
type PartnerRepository interface {
	// Add persists a new partner aggregate to storage.
	Add(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Update persists changes to an existing partner aggregate.
	Update(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Get retrieves a partner by its unique identifier.
	// Returns an ObjectNotFoundError when the partner does not exist.
	Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error)

	// GetAll retrieves every registered partner.
	GetAll(ctx context.Context) ([]*partner.DeliveryPartner, error)

	// GetAllAvailable retrieves all partners currently eligible for a new
	// assignment. Used by the automatic assignment sweep.
	GetAllAvailable(ctx context.Context) ([]*partner.DeliveryPartner, error)
}
