package commands

import (
	"context"
	"log/slog"
)

// PurgeReadNotificationsCommandHandler deletes read notifications past the
// retention cutoff. Invoked periodically by the notification purge job.
type PurgeReadNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewPurgeReadNotificationsCommandHandler creates a handler for notification
// purging.
func NewPurgeReadNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
) PurgeReadNotificationsCommandHandler {
	return PurgeReadNotificationsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the purge command.
func (h PurgeReadNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd PurgeReadNotificationsCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purged, err := uow.NotificationRepository().PurgeRead(ctx, cmd.Cutoff())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if purged > 0 {
		slog.Info("purged read notifications", "count", purged)
	}

	return nil
}
