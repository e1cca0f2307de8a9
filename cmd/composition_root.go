package cmd

import (
	"fmt"

	"portal/internal/adapters/out/postgres"
	"portal/internal/core/application/usecases/commands"
	"portal/internal/core/application/usecases/queries"
	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	publisher   ports.OrderEventPublisher
	adminUserID kernel.UUID
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
) (CompositionRoot, error) {
	adminUserID, err := kernel.UUIDFromString(configs.AdminUserID)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("parse ADMIN_USER_ID: %w", err)
	}

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:   publisher,
		adminUserID: adminUserID,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

// CreateNotificationDispatcher builds the shared intent dispatcher. All
// command handlers route their post-commit notifications through it.
func (c *CompositionRoot) CreateNotificationDispatcher() commands.NotificationDispatcher {
	return commands.NewNotificationDispatcher(c.notificationUoWFactory(), c.adminUserID)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.CreateNotificationDispatcher(), c.publisher)
}

func (c *CompositionRoot) CreateSuggestDeliveryDateCommandHandler() commands.SuggestDeliveryDateCommandHandler {
	return commands.NewSuggestDeliveryDateCommandHandler(
		c.orderUoWFactory(), c.CreateNotificationDispatcher(), c.publisher)
}

func (c *CompositionRoot) CreateAcceptDeliveryDateCommandHandler() commands.AcceptDeliveryDateCommandHandler {
	return commands.NewAcceptDeliveryDateCommandHandler(
		c.orderUoWFactory(), c.CreateNotificationDispatcher(), c.publisher)
}

func (c *CompositionRoot) CreateForceDeliveryDateCommandHandler() commands.ForceDeliveryDateCommandHandler {
	return commands.NewForceDeliveryDateCommandHandler(
		c.orderUoWFactory(), c.CreateNotificationDispatcher(), c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(
		c.orderUoWFactory(), c.CreateNotificationDispatcher(), c.publisher)
}

func (c *CompositionRoot) CreateSetOrderLockCommandHandler() commands.SetOrderLockCommandHandler {
	return commands.NewSetOrderLockCommandHandler(
		c.orderUoWFactory(), c.CreateNotificationDispatcher(), c.publisher)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(
		c.orderUoWFactory(), c.CreateNotificationDispatcher(), c.publisher)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(
		c.orderUoWFactory(), c.CreateNotificationDispatcher(), c.publisher)
}

func (c *CompositionRoot) CreateRestoreOrderCommandHandler() commands.RestoreOrderCommandHandler {
	return commands.NewRestoreOrderCommandHandler(
		c.orderUoWFactory(), c.CreateNotificationDispatcher(), c.publisher)
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	return commands.NewAddOrderItemCommandHandler(
		c.orderUoWFactory(), c.CreateNotificationDispatcher(), c.publisher)
}

func (c *CompositionRoot) CreateUpdateOrderItemCommandHandler() commands.UpdateOrderItemCommandHandler {
	return commands.NewUpdateOrderItemCommandHandler(
		c.orderUoWFactory(), c.CreateNotificationDispatcher(), c.publisher)
}

func (c *CompositionRoot) CreateRemoveOrderItemCommandHandler() commands.RemoveOrderItemCommandHandler {
	return commands.NewRemoveOrderItemCommandHandler(
		c.orderUoWFactory(), c.CreateNotificationDispatcher(), c.publisher)
}

func (c *CompositionRoot) CreateMarkNotificationsReadCommandHandler() commands.MarkNotificationsReadCommandHandler {
	return commands.NewMarkNotificationsReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreatePurgeReadNotificationsCommandHandler() commands.PurgeReadNotificationsCommandHandler {
	return commands.NewPurgeReadNotificationsCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateRemindPendingSuggestionsCommandHandler() commands.RemindPendingSuggestionsCommandHandler {
	return commands.NewRemindPendingSuggestionsCommandHandler(
		c.orderUoWFactory(), c.CreateNotificationDispatcher())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAdminOrdersQueryHandler() queries.GetAdminOrdersQueryHandler {
	return queries.NewGetAdminOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
