package commands

import (
	"context"

	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
	"portal/internal/core/ports"
)

// UpdateOrderItemCommandHandler replaces the contents of an order item,
// subject to the aggregate's edit guards.
type UpdateOrderItemCommandHandler struct {
	executor transitionExecutor
}

// NewUpdateOrderItemCommandHandler creates a handler for updating order items.
func NewUpdateOrderItemCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	publisher ports.OrderEventPublisher,
) UpdateOrderItemCommandHandler {
	return UpdateOrderItemCommandHandler{
		executor: newTransitionExecutor(uowFactory, notifier, publisher),
	}
}

// Handle processes the update-item command and returns the committed order.
func (h UpdateOrderItemCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderItemCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.executor.mutate(ctx, cmd.OrderID(),
		func(aggregate *order.Order) ([]notification.Intent, error) {
			return nil, aggregate.UpdateItem(
				cmd.ItemID(),
				cmd.ProductName(),
				cmd.Quantity(),
				cmd.Notes(),
				cmd.Store(),
				cmd.ImageRefs(),
			)
		})
}
