package commands

import (
	"context"

	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
	"portal/internal/core/domain/services"
	"portal/internal/core/ports"
)

// RestoreOrderCommandHandler reverses a soft delete, bringing the order back
// with its negotiation state untouched.
type RestoreOrderCommandHandler struct {
	executor     transitionExecutor
	stateMachine services.OrderStateMachine
}

// NewRestoreOrderCommandHandler creates a handler for restoring orders.
func NewRestoreOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	publisher ports.OrderEventPublisher,
) RestoreOrderCommandHandler {
	return RestoreOrderCommandHandler{
		executor:     newTransitionExecutor(uowFactory, notifier, publisher),
		stateMachine: services.NewOrderStateMachine(),
	}
}

// Handle processes the restore command and returns the committed order.
func (h RestoreOrderCommandHandler) Handle(
	ctx context.Context,
	cmd RestoreOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.executor.mutate(ctx, cmd.OrderID(),
		func(aggregate *order.Order) ([]notification.Intent, error) {
			return h.stateMachine.Transition(aggregate, order.Admin, services.Restore{})
		})
}
