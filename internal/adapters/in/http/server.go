// Package http exposes the delivery date negotiation workflow over a JSON
// API. Handlers translate wire payloads into commands and queries; all
// business rules stay behind the application layer.
//
// The caller's role arrives in the X-Actor-Role header ("customer" or
// "admin"); user identity rides in the path. Authentication itself is an
// upstream gateway concern.
//
// Order-mutating endpoints reply with the committed order projection, so a
// client always holds the authoritative state and the version it must use
// for its next read-modify-write.
package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"portal/internal/core/application/usecases/commands"
	"portal/internal/core/application/usecases/queries"
	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/order"
	"portal/internal/pkg/errs"
)

const headerActorRole = "X-Actor-Role"

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	CreateOrder         commands.CreateOrderCommandHandler
	SuggestDeliveryDate commands.SuggestDeliveryDateCommandHandler
	AcceptDeliveryDate  commands.AcceptDeliveryDateCommandHandler
	ForceDeliveryDate   commands.ForceDeliveryDateCommandHandler
	CancelOrder         commands.CancelOrderCommandHandler
	SetOrderLock        commands.SetOrderLockCommandHandler
	CompleteOrder       commands.CompleteOrderCommandHandler
	DeleteOrder         commands.DeleteOrderCommandHandler
	RestoreOrder        commands.RestoreOrderCommandHandler
	AddOrderItem        commands.AddOrderItemCommandHandler
	UpdateOrderItem     commands.UpdateOrderItemCommandHandler
	RemoveOrderItem     commands.RemoveOrderItemCommandHandler
	MarkRead            commands.MarkNotificationsReadCommandHandler

	GetOrder          queries.GetOrderQueryHandler
	GetCustomerOrders queries.GetCustomerOrdersQueryHandler
	GetAdminOrders    queries.GetAdminOrdersQueryHandler
	GetNotifications  queries.GetNotificationsQueryHandler
}

// Server wires the negotiation API onto an Echo router.
type Server struct {
	handlers Handlers
}

// NewServer creates an HTTP server dispatching to the given handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes binds every API route on the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", s.CreateOrder)
	e.GET("/orders/:id", s.GetOrder)
	e.GET("/customers/:customerId/orders", s.GetCustomerOrders)

	e.POST("/orders/:id/suggest-date", s.SuggestDate)
	e.POST("/orders/:id/accept-date", s.AcceptDate)
	e.POST("/orders/:id/cancel", s.CancelOrder)

	e.POST("/orders/:id/items", s.AddOrderItem)
	e.PATCH("/orders/:id/items/:itemId", s.UpdateOrderItem)
	e.DELETE("/orders/:id/items/:itemId", s.RemoveOrderItem)

	e.GET("/users/:userId/notifications", s.GetNotifications)
	e.POST("/users/:userId/notifications/read", s.MarkNotificationsRead)

	e.GET("/admin/orders", s.GetAdminOrders)
	e.POST("/admin/orders/:id/force-date", s.ForceDate)
	e.PATCH("/admin/orders/:id/lock", s.SetLock)
	e.POST("/admin/orders/:id/complete", s.CompleteOrder)
	e.DELETE("/admin/orders/:id", s.DeleteOrder)
	e.POST("/admin/orders/:id/restore", s.RestoreOrder)
}

// CreateOrder handles POST /orders - places a new order from checkout.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer id")
	}
	addressID, err := kernel.UUIDFromString(req.AddressID)
	if err != nil {
		return badRequest(ctx, "invalid address id")
	}

	desired, err := parseDeliveryDate(req.DesiredDate.Date, req.DesiredDate.TimeSlot)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]*order.Item, 0, len(req.Items))
	for _, body := range req.Items {
		item, itemErr := buildItem(kernel.NewUUID(), body)
		if itemErr != nil {
			return respondError(ctx, itemErr)
		}
		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		req.OrderNumber,
		customerID,
		addressID,
		req.Store,
		desired,
		req.AdditionalInstructions,
		items,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// GetOrder handles GET /orders/:id. Admin callers also see soft-deleted
// orders; for customers they read as not found.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	includeDeleted := ctx.Request().Header.Get(headerActorRole) == order.Admin.String()

	query, err := queries.NewGetOrderQuery(orderID, includeDeleted)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(resp))
}

// GetCustomerOrders handles GET /customers/:customerId/orders.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "invalid customer id")
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.handlers.GetCustomerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderListResponse(resp))
}

// SuggestDate handles POST /orders/:id/suggest-date for either side of the
// negotiation.
func (s *Server) SuggestDate(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	actor, err := actorFromHeader(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req SuggestDateRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	date, err := parseDeliveryDate(req.Date, req.TimeSlot)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSuggestDeliveryDateCommand(orderID, actor, date)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.handlers.SuggestDeliveryDate.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponseFromDomain(updated))
}

// AcceptDate handles POST /orders/:id/accept-date.
func (s *Server) AcceptDate(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	actor, err := actorFromHeader(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAcceptDeliveryDateCommand(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.handlers.AcceptDeliveryDate.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponseFromDomain(updated))
}

// CancelOrder handles POST /orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	actor, err := actorFromHeader(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponseFromDomain(updated))
}

// AddOrderItem handles POST /orders/:id/items.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req OrderItemBody
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	itemID := kernel.NewUUID()
	item, err := buildItem(itemID, req)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAddOrderItemCommand(orderID, item)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.handlers.AddOrderItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponseFromDomain(updated))
}

// UpdateOrderItem handles PATCH /orders/:id/items/:itemId.
func (s *Server) UpdateOrderItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "invalid item id")
	}

	var req OrderItemBody
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	refs, err := buildImageRefs(req.ImageRefs)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderItemCommand(
		orderID, itemID, req.ProductName, req.Quantity, req.Notes, req.Store, refs)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.handlers.UpdateOrderItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponseFromDomain(updated))
}

// RemoveOrderItem handles DELETE /orders/:id/items/:itemId.
func (s *Server) RemoveOrderItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "invalid item id")
	}

	cmd, err := commands.NewRemoveOrderItemCommand(orderID, itemID)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.handlers.RemoveOrderItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponseFromDomain(updated))
}

// GetNotifications handles GET /users/:userId/notifications. The unreadOnly
// query parameter limits the list to unread rows; the badge count is always
// included.
func (s *Server) GetNotifications(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("userId"))
	if err != nil {
		return badRequest(ctx, "invalid user id")
	}

	unreadOnly := ctx.QueryParam("unreadOnly") == "true"

	query, err := queries.NewGetNotificationsQuery(userID, unreadOnly)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.handlers.GetNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toNotificationsResponse(resp))
}

// MarkNotificationsRead handles POST /users/:userId/notifications/read.
func (s *Server) MarkNotificationsRead(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("userId"))
	if err != nil {
		return badRequest(ctx, "invalid user id")
	}

	var req MarkNotificationsReadRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	ids := make([]kernel.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "invalid notification id")
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewMarkNotificationsReadCommand(userID, ids)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.MarkRead.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAdminOrders handles GET /admin/orders with an optional ?status= filter.
// Soft-deleted orders are included, flagged by deletedAt.
func (s *Server) GetAdminOrders(ctx echo.Context) error {
	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.ParseStatus(raw)
		if err != nil {
			return respondError(ctx, err)
		}
		statusFilter = &status
	}

	query, err := queries.NewGetAdminOrdersQuery(statusFilter)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.handlers.GetAdminOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderListResponse(resp))
}

// ForceDate handles POST /admin/orders/:id/force-date.
func (s *Server) ForceDate(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req ForceDateRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	date, err := parseDeliveryDate(req.Date, req.TimeSlot)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewForceDeliveryDateCommand(orderID, date, req.Comment)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.handlers.ForceDeliveryDate.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponseFromDomain(updated))
}

// SetLock handles PATCH /admin/orders/:id/lock.
func (s *Server) SetLock(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req SetLockRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSetOrderLockCommand(orderID, req.IsLocked)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.handlers.SetOrderLock.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponseFromDomain(updated))
}

// CompleteOrder handles POST /admin/orders/:id/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.handlers.CompleteOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponseFromDomain(updated))
}

// DeleteOrder handles DELETE /admin/orders/:id - soft delete.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponseFromDomain(updated))
}

// RestoreOrder handles POST /admin/orders/:id/restore.
func (s *Server) RestoreOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewRestoreOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.handlers.RestoreOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponseFromDomain(updated))
}

func actorFromHeader(ctx echo.Context) (order.Actor, error) {
	return order.ParseActor(ctx.Request().Header.Get(headerActorRole))
}

func parseDeliveryDate(date, timeSlot string) (kernel.DeliveryDate, error) {
	slot, err := kernel.ParseTimeSlot(timeSlot)
	if err != nil {
		return kernel.DeliveryDate{}, err
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return kernel.DeliveryDate{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}

	return kernel.NewDeliveryDate(day, slot)
}

func buildItem(itemID kernel.UUID, body OrderItemBody) (*order.Item, error) {
	refs, err := buildImageRefs(body.ImageRefs)
	if err != nil {
		return nil, err
	}

	return order.NewItem(itemID, body.ProductName, body.Quantity, body.Notes, body.Store, refs)
}

func buildImageRefs(bodies []ImageRefBody) ([]order.ImageRef, error) {
	refs := make([]order.ImageRef, 0, len(bodies))
	for _, body := range bodies {
		ref, err := order.NewImageRef(body.URL, body.IsMain, body.SortOrder)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
