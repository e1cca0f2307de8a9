package commands

import (
	"context"

	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
	"portal/internal/core/domain/services"
	"portal/internal/core/ports"
)

// DeleteOrderCommandHandler soft-deletes an order. The negotiation state is
// preserved so a later restore brings the order back exactly as it was.
type DeleteOrderCommandHandler struct {
	executor     transitionExecutor
	stateMachine services.OrderStateMachine
}

// NewDeleteOrderCommandHandler creates a handler for soft deletion.
func NewDeleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	publisher ports.OrderEventPublisher,
) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		executor:     newTransitionExecutor(uowFactory, notifier, publisher),
		stateMachine: services.NewOrderStateMachine(),
	}
}

// Handle processes the deletion command and returns the committed order.
func (h DeleteOrderCommandHandler) Handle(
	ctx context.Context,
	cmd DeleteOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.executor.mutate(ctx, cmd.OrderID(),
		func(aggregate *order.Order) ([]notification.Intent, error) {
			return h.stateMachine.Transition(aggregate, order.Admin, services.SoftDelete{})
		})
}
