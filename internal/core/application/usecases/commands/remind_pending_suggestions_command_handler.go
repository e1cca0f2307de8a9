package commands

import (
	"context"
	"fmt"

	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
)

// RemindPendingSuggestionsCommandHandler finds orders whose pending
// suggestion has gone unreviewed for too long and re-notifies the side that
// owes a response. Invoked periodically by the suggestion reminder job.
type RemindPendingSuggestionsCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
}

// NewRemindPendingSuggestionsCommandHandler creates a handler for suggestion
// reminders.
func NewRemindPendingSuggestionsCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
) RemindPendingSuggestionsCommandHandler {
	return RemindPendingSuggestionsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the reminder command. Orders are read in one transaction;
// the reminders themselves are dispatched best-effort afterwards.
func (h RemindPendingSuggestionsCommandHandler) Handle(
	ctx context.Context,
	cmd RemindPendingSuggestionsCommand,
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

	stale, err := uow.OrderRepository().GetStalePendingReview(ctx, cmd.Cutoff())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range stale {
		suggested := aggregate.SuggestedDate()
		if suggested == nil {
			continue
		}

		// The author's counterpart owes the review.
		audience := notification.AudienceAdmin
		if aggregate.SuggestedBy() == order.Admin {
			audience = notification.AudienceCustomer
		}

		intent, intentErr := notification.NewIntent(
			audience,
			notification.DateChangeRequest,
			aggregate.ID(),
			fmt.Sprintf("Order %s: the proposed delivery on %s is still awaiting your review",
				aggregate.OrderNumber(), suggested),
		)
		if intentErr != nil {
			return intentErr
		}

		h.notifier.Dispatch(ctx, aggregate, []notification.Intent{intent})
	}

	return nil
}
