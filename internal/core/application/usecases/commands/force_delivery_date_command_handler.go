package commands

import (
	"context"

	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
	"portal/internal/core/domain/services"
	"portal/internal/core/ports"
)

// ForceDeliveryDateCommandHandler sets the final delivery date unilaterally
// on behalf of the back office, bypassing any pending suggestion and locking
// the order.
type ForceDeliveryDateCommandHandler struct {
	executor     transitionExecutor
	stateMachine services.OrderStateMachine
}

// NewForceDeliveryDateCommandHandler creates a handler for forcing delivery
// dates.
func NewForceDeliveryDateCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	publisher ports.OrderEventPublisher,
) ForceDeliveryDateCommandHandler {
	return ForceDeliveryDateCommandHandler{
		executor:     newTransitionExecutor(uowFactory, notifier, publisher),
		stateMachine: services.NewOrderStateMachine(),
	}
}

// Handle processes the force command and returns the committed order.
func (h ForceDeliveryDateCommandHandler) Handle(
	ctx context.Context,
	cmd ForceDeliveryDateCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.executor.mutate(ctx, cmd.OrderID(),
		func(aggregate *order.Order) ([]notification.Intent, error) {
			return h.stateMachine.Transition(aggregate, order.Admin,
				services.ForceDate{Date: cmd.Date(), Comment: cmd.Comment()})
		})
}
