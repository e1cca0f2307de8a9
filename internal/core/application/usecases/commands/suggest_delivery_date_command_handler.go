package commands

import (
	"context"

	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
	"portal/internal/core/domain/services"
	"portal/internal/core/ports"
)

// SuggestDeliveryDateCommandHandler applies a delivery-date suggestion to an
// order. Concurrent writers are absorbed by the optimistic retry loop: on a
// version conflict the suggestion is re-evaluated against the fresh state,
// so it may legitimately fail with ErrInvalidTransition when the other side
// got there first (e.g. a force landed in between).
type SuggestDeliveryDateCommandHandler struct {
	executor     transitionExecutor
	stateMachine services.OrderStateMachine
}

// NewSuggestDeliveryDateCommandHandler creates a handler for delivery-date
// suggestions.
func NewSuggestDeliveryDateCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	publisher ports.OrderEventPublisher,
) SuggestDeliveryDateCommandHandler {
	return SuggestDeliveryDateCommandHandler{
		executor:     newTransitionExecutor(uowFactory, notifier, publisher),
		stateMachine: services.NewOrderStateMachine(),
	}
}

// Handle processes the suggestion command and returns the committed order.
func (h SuggestDeliveryDateCommandHandler) Handle(
	ctx context.Context,
	cmd SuggestDeliveryDateCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.executor.mutate(ctx, cmd.OrderID(),
		func(aggregate *order.Order) ([]notification.Intent, error) {
			return h.stateMachine.Transition(aggregate, cmd.Actor(),
				services.SuggestDate{Date: cmd.Date()})
		})
}
