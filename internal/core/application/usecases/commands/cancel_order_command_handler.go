package commands

import (
	"context"

	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
	"portal/internal/core/domain/services"
	"portal/internal/core/ports"
)

// CancelOrderCommandHandler withdraws an order. The other side of the
// negotiation is notified after commit.
type CancelOrderCommandHandler struct {
	executor     transitionExecutor
	stateMachine services.OrderStateMachine
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	publisher ports.OrderEventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		executor:     newTransitionExecutor(uowFactory, notifier, publisher),
		stateMachine: services.NewOrderStateMachine(),
	}
}

// Handle processes the cancellation command and returns the committed order.
func (h CancelOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CancelOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.executor.mutate(ctx, cmd.OrderID(),
		func(aggregate *order.Order) ([]notification.Intent, error) {
			return h.stateMachine.Transition(aggregate, cmd.Actor(), services.Cancel{})
		})
}
