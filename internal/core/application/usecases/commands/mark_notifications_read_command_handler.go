package commands

import (
	"context"
)

// MarkNotificationsReadCommandHandler flags a user's notifications as read
// and lets the repository keep the unread counter in step.
type MarkNotificationsReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationsReadCommandHandler creates a handler for marking
// notifications read.
func NewMarkNotificationsReadCommandHandler(
	uowFactory NotificationUoWFactory,
) MarkNotificationsReadCommandHandler {
	return MarkNotificationsReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the mark-read command.
func (h MarkNotificationsReadCommandHandler) Handle(
	ctx context.Context,
	cmd MarkNotificationsReadCommand,
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

	if err := uow.NotificationRepository().MarkRead(ctx, cmd.UserID(), cmd.IDs()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
