package commands

import (
	"errors"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/order"
	"portal/internal/pkg/guard"
)

var ErrAcceptDeliveryDateCommandIsNotConstructed = errors.New(
	"AcceptDeliveryDateCommand must be created via NewAcceptDeliveryDateCommand constructor",
)

// AcceptDeliveryDateCommand represents the responding side accepting the
// pending delivery-date suggestion, making it the final date.
type AcceptDeliveryDateCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryDateCommand creates a command to accept the pending
// suggestion on behalf of actor.
func NewAcceptDeliveryDateCommand(
	orderID kernel.UUID,
	actor order.Actor,
) (AcceptDeliveryDateCommand, error) {
	cmd := AcceptDeliveryDateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return AcceptDeliveryDateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptDeliveryDateCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryDateCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being negotiated.
func (c AcceptDeliveryDateCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the side accepting the suggestion.
func (c AcceptDeliveryDateCommand) Actor() order.Actor {
	return c.actor
}

func (c *AcceptDeliveryDateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptDeliveryDateCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
