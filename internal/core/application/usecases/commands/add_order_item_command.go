package commands

import (
	"errors"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/order"
	"portal/internal/pkg/guard"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// AddOrderItemCommand represents a request to append an item to an order.
// Item edits are subject to the shared edit guard: the order must be
// unlocked and not in a date-bound or terminal status.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	item    *order.Item

	guard guard.ConstructorGuard
}

// NewAddOrderItemCommand creates a command to add an item to an order.
func NewAddOrderItemCommand(orderID kernel.UUID, item *order.Item) (AddOrderItemCommand, error) {
	cmd := AddOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItem(item),
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being edited.
func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Item returns the item to append.
func (c AddOrderItemCommand) Item() *order.Item {
	return c.item
}

func (c *AddOrderItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddOrderItemCommand) setItem(item *order.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	c.item = item
	return nil
}
