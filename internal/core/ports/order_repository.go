// Package ports defines the persistence contracts consumed by the dispatch
// coordinator. The interfaces carry no business logic; they establish the
// boundary between the application core and infrastructure adapters.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	// Returns an ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every order, oldest first.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status,
	// oldest first.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetFirstUnassigned retrieves the oldest order that has no partner
	// bound and is still in a status that allows assignment (PREP or READY).
	// Used by the automatic assignment sweep.
	GetFirstUnassigned(ctx context.Context) (*order.Order, error)
}
