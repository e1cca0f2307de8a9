package commands_test

import (
	"testing"
	"time"

	"portal/internal/core/application/usecases/commands"
	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemindPendingSuggestionsCommandHandler_Handle_RemindsReviewingSide(t *testing.T) {
	ctx := t.Context()
	cutoff := time.Now().Add(-48 * time.Hour)
	cmd, err := commands.NewRemindPendingSuggestionsCommand(cutoff)
	require.NoError(t, err)

	awaitingAdmin := testOrder(t)
	require.NoError(t, awaitingAdmin.SuggestDate(
		order.Customer, testDeliveryDate(t, "2025-02-01", kernel.Morning)))

	awaitingCustomer := testOrder(t)
	require.NoError(t, awaitingCustomer.SuggestDate(
		order.Admin, testDeliveryDate(t, "2025-02-02", kernel.Evening)))

	repo := new(MockOrderRepository)
	repo.On("GetStalePendingReview", mock.Anything, cutoff).
		Return([]*order.Order{awaitingAdmin, awaitingCustomer}, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Dispatch", ctx, awaitingAdmin,
		mock.MatchedBy(func(intents []notification.Intent) bool {
			return len(intents) == 1 && intents[0].Audience() == notification.AudienceAdmin
		})).Once()
	notifier.On("Dispatch", ctx, awaitingCustomer,
		mock.MatchedBy(func(intents []notification.Intent) bool {
			return len(intents) == 1 && intents[0].Audience() == notification.AudienceCustomer
		})).Once()

	h := commands.NewRemindPendingSuggestionsCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRemindPendingSuggestionsCommandHandler_Handle_NoStaleOrders(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRemindPendingSuggestionsCommand(time.Now())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetStalePendingReview", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*order.Order{}, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)

	h := commands.NewRemindPendingSuggestionsCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	notifier.AssertExpectations(t)
}
