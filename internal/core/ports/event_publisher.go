package ports

import (
	"context"

	"portal/internal/core/domain/model/order"
)

// OrderEventPublisher publishes order change events to the message broker
// after a transition was committed. Publishing is best-effort: a broker
// failure never rolls back the transition, it is logged and dropped.
type OrderEventPublisher interface {
	// PublishOrderChanged emits the current state of the order to the
	// order-changed topic.
	PublishOrderChanged(ctx context.Context, aggregate *order.Order) error
}
