package commands

import (
	"context"
	"log/slog"
	"time"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
)

// NotificationDispatcher is the default Notifier. It resolves the audience of
// each intent to a concrete user — the order's customer or the configured
// back-office account — and persists the notifications in one transaction.
type NotificationDispatcher struct {
	uowFactory  NotificationUoWFactory
	adminUserID kernel.UUID
	now         func() time.Time
}

// NewNotificationDispatcher creates a dispatcher addressing admin-audience
// intents to adminUserID.
func NewNotificationDispatcher(
	uowFactory NotificationUoWFactory,
	adminUserID kernel.UUID,
) NotificationDispatcher {
	return NotificationDispatcher{
		uowFactory:  uowFactory,
		adminUserID: adminUserID,
		now:         time.Now,
	}
}

// Dispatch persists one notification per intent. Failures are logged and
// swallowed: the transition that produced the intents has already committed
// and must not be affected.
func (d NotificationDispatcher) Dispatch(
	ctx context.Context,
	aggregate *order.Order,
	intents []notification.Intent,
) {
	if len(intents) == 0 {
		return
	}

	if err := d.dispatch(ctx, aggregate, intents); err != nil {
		slog.Error("dispatch notifications",
			"orderId", aggregate.ID().String(),
			"count", len(intents),
			"error", err,
		)
	}
}

func (d NotificationDispatcher) dispatch(
	ctx context.Context,
	aggregate *order.Order,
	intents []notification.Intent,
) error {
	uow := d.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notificationRepo := uow.NotificationRepository()
	createdAt := d.now()

	for _, intent := range intents {
		userID := aggregate.CustomerID()
		if intent.Audience() == notification.AudienceAdmin {
			userID = d.adminUserID
		}

		n, err := notification.NewNotification(
			kernel.NewUUID(),
			userID,
			intent.Type(),
			intent.RelatedOrderID(),
			intent.Message(),
			createdAt,
		)
		if err != nil {
			return err
		}

		if err = notificationRepo.Add(ctx, n); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
