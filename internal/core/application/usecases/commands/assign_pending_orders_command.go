package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrAssignPendingOrdersCommandIsNotConstructed = errors.New(
	"AssignPendingOrdersCommand must be created via NewAssignPendingOrdersCommand constructor",
)

// AssignPendingOrdersCommand triggers the automatic assignment sweep.
// It finds the oldest unassigned order still open for assignment and binds
// the best available partner to it.
type AssignPendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignPendingOrdersCommand creates a parameterless command that
// initiates the order-partner matching sweep.
func NewAssignPendingOrdersCommand() AssignPendingOrdersCommand {
	return AssignPendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *AssignPendingOrdersCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignPendingOrdersCommandIsNotConstructed,
	)
}
