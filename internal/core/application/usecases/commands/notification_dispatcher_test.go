package commands_test

import (
	"errors"
	"testing"

	"portal/internal/core/application/usecases/commands"
	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/notification"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationDispatcher_Dispatch_ResolvesRecipients(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t)
	adminUserID := kernel.NewUUID()

	toAdmin, err := notification.NewIntent(
		notification.AudienceAdmin, notification.DateChangeRequest, aggregate.ID(), "proposed")
	require.NoError(t, err)
	toCustomer, err := notification.NewIntent(
		notification.AudienceCustomer, notification.DateAccepted, aggregate.ID(), "confirmed")
	require.NoError(t, err)

	repo := new(MockNotificationRepository)
	repo.On("Add", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.UserID().IsEqual(adminUserID) && n.Type() == notification.DateChangeRequest
	})).Return(nil).Once()
	repo.On("Add", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.UserID().IsEqual(aggregate.CustomerID()) && n.Type() == notification.DateAccepted
	})).Return(nil).Once()

	uow := new(MockNotificationUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NotificationRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	d := commands.NewNotificationDispatcher(factory, adminUserID)
	d.Dispatch(ctx, aggregate, []notification.Intent{toAdmin, toCustomer})

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestNotificationDispatcher_Dispatch_SwallowsFailures(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t)

	intent, err := notification.NewIntent(
		notification.AudienceCustomer, notification.OrderLocked, aggregate.ID(), "locked")
	require.NoError(t, err)

	repo := new(MockNotificationRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("insert error")).Once()

	uow := new(MockNotificationUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NotificationRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	d := commands.NewNotificationDispatcher(factory, kernel.NewUUID())

	// Must not panic or surface the error.
	d.Dispatch(ctx, aggregate, []notification.Intent{intent})

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNotificationDispatcher_Dispatch_NoIntentsIsNoOp(t *testing.T) {
	ctx := t.Context()
	factory := new(MockNotificationUoWFactory)

	d := commands.NewNotificationDispatcher(factory, kernel.NewUUID())
	d.Dispatch(ctx, testOrder(t), nil)

	factory.AssertExpectations(t)
}
