package commands

import (
	"errors"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/order"
	"portal/internal/pkg/errs"
	"portal/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new order from
// checkout. Encapsulates the customer's identity, delivery address, desired
// delivery date, and the initial item list.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(
//	    orderID, "ORD-1001", customerID, addressID, "Corner Store",
//	    desired, "ring twice", items,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, notifier, publisher, adminUserID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID                kernel.UUID
	orderNumber            string
	customerID             kernel.UUID
	addressID              kernel.UUID
	store                  string
	desired                kernel.DeliveryDate
	additionalInstructions string
	items                  []*order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identities, the desired delivery date, and that at least one
// valid item is present.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	addressID kernel.UUID,
	store string,
	desired kernel.DeliveryDate,
	additionalInstructions string,
	items []*order.Item,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		store:                  store,
		additionalInstructions: additionalInstructions,
		guard:                  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderNumber(orderNumber),
		cmd.setCustomerID(customerID),
		cmd.setAddressID(addressID),
		cmd.setDesired(desired),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNumber returns the human-facing order number.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// CustomerID returns the identifier of the customer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// AddressID returns the identifier of the delivery address.
func (c CreateOrderCommand) AddressID() kernel.UUID {
	return c.addressID
}

// Store returns the free-text merchant label of the order.
func (c CreateOrderCommand) Store() string {
	return c.store
}

// Desired returns the customer's desired delivery date.
func (c CreateOrderCommand) Desired() kernel.DeliveryDate {
	return c.desired
}

// AdditionalInstructions returns the customer's free-text delivery notes.
func (c CreateOrderCommand) AdditionalInstructions() string {
	return c.additionalInstructions
}

// Items returns the initial item list.
func (c CreateOrderCommand) Items() []*order.Item {
	items := make([]*order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}

	c.addressID = addressID
	return nil
}

func (c *CreateOrderCommand) setDesired(desired kernel.DeliveryDate) error {
	if err := desired.Validate(); err != nil {
		return err
	}

	c.desired = desired
	return nil
}

func (c *CreateOrderCommand) setItems(items []*order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]*order.Item, len(items))
	copy(c.items, items)
	return nil
}
