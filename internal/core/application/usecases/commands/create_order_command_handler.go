package commands

import (
	"context"
	"fmt"
	"log/slog"

	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
	"portal/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Persists a new order in "new" status at version 1, notifies the back
// office, and publishes the order-changed event.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
	publisher  ports.OrderEventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	publisher ports.OrderEventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// Uses a transaction to ensure the order is properly persisted or rolled
// back on error. The back-office notification and the broker publish run
// after commit and are best-effort.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.OrderNumber(),
		cmd.CustomerID(),
		cmd.AddressID(),
		cmd.Store(),
		cmd.Desired(),
		cmd.AdditionalInstructions(),
		cmd.Items(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	intent, err := notification.NewIntent(
		notification.AudienceAdmin,
		notification.NewOrder,
		aggregate.ID(),
		fmt.Sprintf("Order %s was placed, desired delivery on %s",
			aggregate.OrderNumber(), aggregate.DesiredDate()),
	)
	if err != nil {
		return err
	}
	h.notifier.Dispatch(ctx, aggregate, []notification.Intent{intent})

	if err = h.publisher.PublishOrderChanged(ctx, aggregate); err != nil {
		slog.Error("publish order changed event",
			"orderId", aggregate.ID().String(),
			"error", err,
		)
	}

	return nil
}
