package commands_test

import (
	"testing"

	"portal/internal/core/application/usecases/commands"
	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemoveOrderItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t)
	extra, err := order.NewItem(kernel.NewUUID(), "Bread", "1 loaf", "", "", nil)
	require.NoError(t, err)
	require.NoError(t, aggregate.AddItem(extra))

	cmd, err := commands.NewRemoveOrderItemCommand(aggregate.ID(), extra.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate, int64(1)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)
	publisher.On("PublishOrderChanged", ctx, aggregate).Return(nil).Once()

	// Item edits emit no intents, so the notifier must stay untouched.
	notifier := new(MockNotifier)

	h := commands.NewRemoveOrderItemCommandHandler(factory, notifier, publisher)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Same(t, aggregate, updated)
	require.Len(t, aggregate.Items(), 1)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRemoveOrderItemCommandHandler_Handle_LastItemProtected(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t)
	onlyItem := aggregate.Items()[0]

	cmd, err := commands.NewRemoveOrderItemCommand(aggregate.ID(), onlyItem.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRemoveOrderItemCommandHandler(
		factory, new(MockNotifier), new(MockOrderEventPublisher))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrLastItemProtected)
	require.Len(t, aggregate.Items(), 1)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
