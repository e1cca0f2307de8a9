package commands

import (
	"context"

	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
	"portal/internal/core/domain/services"
	"portal/internal/core/ports"
)

// AcceptDeliveryDateCommandHandler promotes the pending suggestion to the
// final delivery date and locks the order. Both sides are notified after
// commit.
type AcceptDeliveryDateCommandHandler struct {
	executor     transitionExecutor
	stateMachine services.OrderStateMachine
}

// NewAcceptDeliveryDateCommandHandler creates a handler for accepting
// delivery-date suggestions.
func NewAcceptDeliveryDateCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	publisher ports.OrderEventPublisher,
) AcceptDeliveryDateCommandHandler {
	return AcceptDeliveryDateCommandHandler{
		executor:     newTransitionExecutor(uowFactory, notifier, publisher),
		stateMachine: services.NewOrderStateMachine(),
	}
}

// Handle processes the acceptance command and returns the committed order.
func (h AcceptDeliveryDateCommandHandler) Handle(
	ctx context.Context,
	cmd AcceptDeliveryDateCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.executor.mutate(ctx, cmd.OrderID(),
		func(aggregate *order.Order) ([]notification.Intent, error) {
			return h.stateMachine.Transition(aggregate, cmd.Actor(), services.AcceptDate{})
		})
}
