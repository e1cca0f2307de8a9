package commands

import (
	"context"

	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
	"portal/internal/core/ports"
)

// RemoveOrderItemCommandHandler deletes an item from an order, subject to
// the aggregate's edit guards and the last-item protection.
type RemoveOrderItemCommandHandler struct {
	executor transitionExecutor
}

// NewRemoveOrderItemCommandHandler creates a handler for removing order items.
func NewRemoveOrderItemCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	publisher ports.OrderEventPublisher,
) RemoveOrderItemCommandHandler {
	return RemoveOrderItemCommandHandler{
		executor: newTransitionExecutor(uowFactory, notifier, publisher),
	}
}

// Handle processes the remove-item command and returns the committed order.
func (h RemoveOrderItemCommandHandler) Handle(
	ctx context.Context,
	cmd RemoveOrderItemCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.executor.mutate(ctx, cmd.OrderID(),
		func(aggregate *order.Order) ([]notification.Intent, error) {
			return nil, aggregate.RemoveItem(cmd.ItemID())
		})
}
