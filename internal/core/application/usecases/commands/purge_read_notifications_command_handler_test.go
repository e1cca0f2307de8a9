package commands_test

import (
	"errors"
	"testing"
	"time"

	"portal/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPurgeReadNotificationsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cmd, err := commands.NewPurgeReadNotificationsCommand(cutoff)
	require.NoError(t, err)

	repo := new(MockNotificationRepository)
	uow := new(MockNotificationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NotificationRepository").Return(repo).Once(),
		repo.On("PurgeRead", mock.Anything, cutoff).Return(int64(7), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeReadNotificationsCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPurgeReadNotificationsCommandHandler_Handle_PurgeError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPurgeReadNotificationsCommand(time.Now())
	require.NoError(t, err)

	repo := new(MockNotificationRepository)
	uow := new(MockNotificationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NotificationRepository").Return(repo).Once(),
		repo.On("PurgeRead", mock.Anything, mock.AnythingOfType("time.Time")).
			Return(int64(0), errors.New("purge error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeReadNotificationsCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestPurgeReadNotificationsCommand_RequiresCutoff(t *testing.T) {
	_, err := commands.NewPurgeReadNotificationsCommand(time.Time{})
	require.Error(t, err)
}
