package commands

import (
	"context"

	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
	"portal/internal/core/ports"
)

// AddOrderItemCommandHandler appends an item to an order. Item edits go
// through the same optimistic retry loop as date transitions but emit no
// notifications.
type AddOrderItemCommandHandler struct {
	executor transitionExecutor
}

// NewAddOrderItemCommandHandler creates a handler for adding order items.
func NewAddOrderItemCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	publisher ports.OrderEventPublisher,
) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		executor: newTransitionExecutor(uowFactory, notifier, publisher),
	}
}

// Handle processes the add-item command and returns the committed order.
func (h AddOrderItemCommandHandler) Handle(
	ctx context.Context,
	cmd AddOrderItemCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.executor.mutate(ctx, cmd.OrderID(),
		func(aggregate *order.Order) ([]notification.Intent, error) {
			return nil, aggregate.AddItem(cmd.Item())
		})
}
