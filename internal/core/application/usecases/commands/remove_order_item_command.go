package commands

import (
	"errors"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/pkg/guard"
)

var ErrRemoveOrderItemCommandIsNotConstructed = errors.New(
	"RemoveOrderItemCommand must be created via NewRemoveOrderItemCommand constructor",
)

// RemoveOrderItemCommand represents a request to delete an item from an
// order. Removing the last remaining item is rejected by the aggregate.
type RemoveOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveOrderItemCommand creates a command to remove an order item.
func NewRemoveOrderItemCommand(orderID, itemID kernel.UUID) (RemoveOrderItemCommand, error) {
	cmd := RemoveOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
	); err != nil {
		return RemoveOrderItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderItemCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being edited.
func (c RemoveOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the identifier of the item being removed.
func (c RemoveOrderItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c *RemoveOrderItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RemoveOrderItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}
