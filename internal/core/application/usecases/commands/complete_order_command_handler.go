package commands

import (
	"context"

	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
	"portal/internal/core/domain/services"
	"portal/internal/core/ports"
)

// CompleteOrderCommandHandler marks a date-bound order as fulfilled.
// Completion emits no notifications.
type CompleteOrderCommandHandler struct {
	executor     transitionExecutor
	stateMachine services.OrderStateMachine
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	publisher ports.OrderEventPublisher,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		executor:     newTransitionExecutor(uowFactory, notifier, publisher),
		stateMachine: services.NewOrderStateMachine(),
	}
}

// Handle processes the completion command and returns the committed order.
func (h CompleteOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.executor.mutate(ctx, cmd.OrderID(),
		func(aggregate *order.Order) ([]notification.Intent, error) {
			return h.stateMachine.Transition(aggregate, order.Admin, services.Complete{})
		})
}
