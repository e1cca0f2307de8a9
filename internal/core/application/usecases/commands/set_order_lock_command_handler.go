package commands

import (
	"context"

	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
	"portal/internal/core/domain/services"
	"portal/internal/core/ports"
)

// SetOrderLockCommandHandler toggles the explicit edit lock of an order on
// behalf of the back office. The customer is notified either way.
type SetOrderLockCommandHandler struct {
	executor     transitionExecutor
	stateMachine services.OrderStateMachine
}

// NewSetOrderLockCommandHandler creates a handler for lock toggling.
func NewSetOrderLockCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	publisher ports.OrderEventPublisher,
) SetOrderLockCommandHandler {
	return SetOrderLockCommandHandler{
		executor:     newTransitionExecutor(uowFactory, notifier, publisher),
		stateMachine: services.NewOrderStateMachine(),
	}
}

// Handle processes the lock command and returns the committed order.
func (h SetOrderLockCommandHandler) Handle(
	ctx context.Context,
	cmd SetOrderLockCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var machineCmd services.Command = services.Lock{}
	if !cmd.Locked() {
		machineCmd = services.Unlock{}
	}

	return h.executor.mutate(ctx, cmd.OrderID(),
		func(aggregate *order.Order) ([]notification.Intent, error) {
			return h.stateMachine.Transition(aggregate, order.Admin, machineCmd)
		})
}
