// Package commands contains the write operations of the dispatch coordinator.
// Each operation follows the same shape: a validated command value, and a
// handler that acquires the per-key locks it needs, runs the domain logic
// inside a unit-of-work transaction, and persists all-or-nothing.
package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Narrow per-command interfaces keep each handler coupled only to
// the repositories it actually touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PartnerRepoFactory provides access to the partner repository within a transaction.
	PartnerRepoFactory interface {
		PartnerRepository() ports.PartnerRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PartnerUoW manages transactions for partner-only operations.
	PartnerUoW interface {
		TxManager
		PartnerRepoFactory
	}

	// PartnerUoWFactory creates new partner unit of work instances.
	PartnerUoWFactory interface {
		Create() PartnerUoW
	}

	// UoW manages transactions across both order and partner aggregates.
	// Used by operations that must persist changes to both records as a
	// single unit (assignment, the delivered release).
	UoW interface {
		TxManager
		OrderRepoFactory
		PartnerRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Locker hands out scoped per-key locks with bounded acquisition.
// Handlers take the order key before mutating an order and the partner key
// before committing partner-availability changes; acquisition failure
// surfaces as a retryable ContentionError.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

func orderLockKey(id kernel.UUID) string {
	return fmt.Sprintf("order:%s", id)
}

func partnerLockKey(id kernel.UUID) string {
	return fmt.Sprintf("partner:%s", id)
}
