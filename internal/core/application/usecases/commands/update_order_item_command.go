package commands

import (
	"errors"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/order"
	"portal/internal/pkg/errs"
	"portal/internal/pkg/guard"
)

var ErrUpdateOrderItemCommandIsNotConstructed = errors.New(
	"UpdateOrderItemCommand must be created via NewUpdateOrderItemCommand constructor",
)

// UpdateOrderItemCommand represents a request to replace the contents of an
// existing order item.
type UpdateOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	itemID      kernel.UUID
	productName string
	quantity    string
	notes       string
	store       string
	imageRefs   []order.ImageRef

	guard guard.ConstructorGuard
}

// NewUpdateOrderItemCommand creates a command to update an order item.
// The image list invariant is re-checked by the aggregate on apply.
func NewUpdateOrderItemCommand(
	orderID kernel.UUID,
	itemID kernel.UUID,
	productName string,
	quantity string,
	notes string,
	store string,
	imageRefs []order.ImageRef,
) (UpdateOrderItemCommand, error) {
	cmd := UpdateOrderItemCommand{
		notes: notes,
		store: store,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setProductName(productName),
		cmd.setQuantity(quantity),
	); err != nil {
		return UpdateOrderItemCommand{}, err
	}

	cmd.imageRefs = make([]order.ImageRef, len(imageRefs))
	copy(cmd.imageRefs, imageRefs)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderItemCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being edited.
func (c UpdateOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the identifier of the item being updated.
func (c UpdateOrderItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// ProductName returns the new product label.
func (c UpdateOrderItemCommand) ProductName() string {
	return c.productName
}

// Quantity returns the new free-text quantity.
func (c UpdateOrderItemCommand) Quantity() string {
	return c.quantity
}

// Notes returns the new free-text notes.
func (c UpdateOrderItemCommand) Notes() string {
	return c.notes
}

// Store returns the new merchant label.
func (c UpdateOrderItemCommand) Store() string {
	return c.store
}

// ImageRefs returns the new ordered image reference list.
func (c UpdateOrderItemCommand) ImageRefs() []order.ImageRef {
	refs := make([]order.ImageRef, len(c.imageRefs))
	copy(refs, c.imageRefs)
	return refs
}

func (c *UpdateOrderItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *UpdateOrderItemCommand) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}

	c.productName = productName
	return nil
}

func (c *UpdateOrderItemCommand) setQuantity(quantity string) error {
	if quantity == "" {
		return errs.NewValueIsRequiredError("quantity")
	}

	c.quantity = quantity
	return nil
}
