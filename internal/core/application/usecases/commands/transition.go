package commands

import (
	"context"
	"errors"
	"log/slog"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
	"portal/internal/core/ports"
	"portal/internal/pkg/errs"
)

// maxTransitionAttempts bounds the optimistic-concurrency retry loop. A
// version conflict means another writer committed between our load and our
// save; the transition is re-evaluated against the fresh state. Three
// attempts absorb realistic contention; persistent conflicts surface as
// VersionConflictError to the client.
const maxTransitionAttempts = 3

// transitionExecutor is the shared load-mutate-save loop behind every
// order-mutating handler. It owns the transaction lifecycle, the
// compare-and-swap retry, and the post-commit side effects (notification
// dispatch and broker publish), so individual handlers reduce to building
// the mutation closure.
type transitionExecutor struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
	publisher  ports.OrderEventPublisher
}

func newTransitionExecutor(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	publisher ports.OrderEventPublisher,
) transitionExecutor {
	return transitionExecutor{
		uowFactory: uowFactory,
		notifier:   notifier,
		publisher:  publisher,
	}
}

// mutate loads the order, applies the mutation, and saves it with a
// compare-and-swap on the loaded version. On a version conflict the whole
// attempt is rolled back and re-run against fresh state, up to
// maxTransitionAttempts times. On commit the intents returned by the
// mutation are dispatched, the order-changed event is published, and the
// committed aggregate is returned for the caller's response.
func (e transitionExecutor) mutate(
	ctx context.Context,
	orderID kernel.UUID,
	apply func(aggregate *order.Order) ([]notification.Intent, error),
) (*order.Order, error) {
	var lastErr error

	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		aggregate, intents, err := e.attempt(ctx, orderID, apply)
		if errors.Is(err, errs.ErrVersionConflict) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		e.afterCommit(ctx, aggregate, intents)
		return aggregate, nil
	}

	return nil, lastErr
}

func (e transitionExecutor) attempt(
	ctx context.Context,
	orderID kernel.UUID,
	apply func(aggregate *order.Order) ([]notification.Intent, error),
) (*order.Order, []notification.Intent, error) {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	loadedVersion := aggregate.Version()
	intents, err := apply(aggregate)
	if err != nil {
		return nil, nil, err
	}

	if err = orderRepo.Update(ctx, aggregate, loadedVersion); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return aggregate, intents, nil
}

// afterCommit runs the best-effort side effects of a committed transition.
// The transition itself is already durable; a failed dispatch or publish is
// logged and dropped.
func (e transitionExecutor) afterCommit(
	ctx context.Context,
	aggregate *order.Order,
	intents []notification.Intent,
) {
	if len(intents) > 0 {
		e.notifier.Dispatch(ctx, aggregate, intents)
	}

	if err := e.publisher.PublishOrderChanged(ctx, aggregate); err != nil {
		slog.Error("publish order changed event",
			"orderId", aggregate.ID().String(),
			"error", err,
		)
	}
}
