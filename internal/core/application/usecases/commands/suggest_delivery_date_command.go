package commands

import (
	"errors"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/order"
	"portal/internal/pkg/guard"
)

var ErrSuggestDeliveryDateCommandIsNotConstructed = errors.New(
	"SuggestDeliveryDateCommand must be created via NewSuggestDeliveryDateCommand constructor",
)

// SuggestDeliveryDateCommand represents a delivery-date proposal by one side
// of the negotiation. The other side is moved into review and notified.
//
// Example:
//
//	date, _ := kernel.ParseDeliveryDate("2025-02-01@morning")
//	cmd, err := NewSuggestDeliveryDateCommand(orderID, order.Customer, date)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewSuggestDeliveryDateCommandHandler(uowFactory, notifier, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errors.Is(err, order.ErrInvalidTransition) when the order is
//	    // locked, forced, or terminal
//	}
type SuggestDeliveryDateCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	date    kernel.DeliveryDate

	guard guard.ConstructorGuard
}

// NewSuggestDeliveryDateCommand creates a command to propose a delivery date.
func NewSuggestDeliveryDateCommand(
	orderID kernel.UUID,
	actor order.Actor,
	date kernel.DeliveryDate,
) (SuggestDeliveryDateCommand, error) {
	cmd := SuggestDeliveryDateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setDate(date),
	); err != nil {
		return SuggestDeliveryDateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SuggestDeliveryDateCommand) Validate() error {
	return c.guard.Validate(ErrSuggestDeliveryDateCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being negotiated.
func (c SuggestDeliveryDateCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the side authoring the suggestion.
func (c SuggestDeliveryDateCommand) Actor() order.Actor {
	return c.actor
}

// Date returns the proposed delivery date.
func (c SuggestDeliveryDateCommand) Date() kernel.DeliveryDate {
	return c.date
}

func (c *SuggestDeliveryDateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SuggestDeliveryDateCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *SuggestDeliveryDateCommand) setDate(date kernel.DeliveryDate) error {
	if err := date.Validate(); err != nil {
		return err
	}

	c.date = date
	return nil
}
