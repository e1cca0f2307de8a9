package commands

import (
	"errors"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/pkg/guard"
)

var ErrForceDeliveryDateCommandIsNotConstructed = errors.New(
	"ForceDeliveryDateCommand must be created via NewForceDeliveryDateCommand constructor",
)

// ForceDeliveryDateCommand represents the back office setting the final
// delivery date unilaterally. The optional comment is included in the
// customer's notification.
type ForceDeliveryDateCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	date    kernel.DeliveryDate
	comment string

	guard guard.ConstructorGuard
}

// NewForceDeliveryDateCommand creates a command to force a final delivery date.
func NewForceDeliveryDateCommand(
	orderID kernel.UUID,
	date kernel.DeliveryDate,
	comment string,
) (ForceDeliveryDateCommand, error) {
	cmd := ForceDeliveryDateCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDate(date),
	); err != nil {
		return ForceDeliveryDateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ForceDeliveryDateCommand) Validate() error {
	return c.guard.Validate(ErrForceDeliveryDateCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being negotiated.
func (c ForceDeliveryDateCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Date returns the forced delivery date.
func (c ForceDeliveryDateCommand) Date() kernel.DeliveryDate {
	return c.date
}

// Comment returns the optional back-office explanation.
func (c ForceDeliveryDateCommand) Comment() string {
	return c.comment
}

func (c *ForceDeliveryDateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ForceDeliveryDateCommand) setDate(date kernel.DeliveryDate) error {
	if err := date.Validate(); err != nil {
		return err
	}

	c.date = date
	return nil
}
