package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to accept a new food order.
// Carries the order contents and the kitchen prep window; the dispatch
// estimate is derived by the handler, not supplied by the caller.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	items    string
	prepTime int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to accept a new order.
// Validates that the order ID is constructed, items are present, and the
// prep time is a positive minute count.
func NewCreateOrderCommand(orderID kernel.UUID, items string, prepTime int) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
		cmd.setPrepTime(prepTime),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the order contents description.
func (c CreateOrderCommand) Items() string {
	return c.items
}

// PrepTime returns the kitchen prep window in minutes.
func (c CreateOrderCommand) PrepTime() int {
	return c.prepTime
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setItems(items string) error {
	if items == "" {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = items
	return nil
}

func (c *CreateOrderCommand) setPrepTime(prepTime int) error {
	if prepTime == 0 {
		return errs.NewValueIsRequiredError("prep time")
	}
	if prepTime < 0 {
		return errs.NewValueIsInvalidError("prep time")
	}
	c.prepTime = prepTime
	return nil
}
