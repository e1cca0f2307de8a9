package http

import (
	"time"

	"portal/internal/core/application/usecases/queries"
	"portal/internal/core/domain/model/order"
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// DeliveryDateBody carries a delivery date proposal on the wire: the calendar
// day as "YYYY-MM-DD" plus the slot name ("morning", "afternoon", "evening").
type DeliveryDateBody struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}

// ImageRefBody is one product image reference of an order item.
type ImageRefBody struct {
	URL       string `json:"url"`
	IsMain    bool   `json:"isMain"`
	SortOrder int    `json:"sortOrder"`
}

// OrderItemBody is the payload for creating or updating an order item.
type OrderItemBody struct {
	ProductName string         `json:"productName"`
	Quantity    string         `json:"quantity"`
	Notes       string         `json:"notes"`
	Store       string         `json:"store"`
	ImageRefs   []ImageRefBody `json:"imageRefs"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	OrderNumber            string           `json:"orderNumber"`
	CustomerID             string           `json:"customerId"`
	AddressID              string           `json:"addressId"`
	Store                  string           `json:"store"`
	DesiredDate            DeliveryDateBody `json:"desiredDate"`
	AdditionalInstructions string           `json:"additionalInstructions"`
	Items                  []OrderItemBody  `json:"items"`
}

// SuggestDateRequest proposes a new delivery date.
type SuggestDateRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}

// ForceDateRequest sets the final delivery date unilaterally.
type ForceDateRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Comment  string `json:"comment"`
}

// SetLockRequest toggles the order's edit lock.
type SetLockRequest struct {
	IsLocked bool `json:"isLocked"`
}

// MarkNotificationsReadRequest lists the notifications to flag as read.
type MarkNotificationsReadRequest struct {
	IDs []string `json:"ids"`
}

// CreatedResponse returns the server-minted identifier of a new resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// OrderResponse is the JSON projection of an order.
type OrderResponse struct {
	ID                     string              `json:"id"`
	OrderNumber            string              `json:"orderNumber"`
	CustomerID             string              `json:"customerId"`
	AddressID              string              `json:"addressId"`
	Store                  string              `json:"store"`
	Status                 string              `json:"status"`
	StatusLabel            string              `json:"statusLabel"`
	DesiredDate            string              `json:"desiredDate"`
	SuggestedDate          *string             `json:"suggestedDate,omitempty"`
	SuggestedBy            *string             `json:"suggestedBy,omitempty"`
	FinalDate              *string             `json:"finalDate,omitempty"`
	IsLocked               bool                `json:"isLocked"`
	AdditionalInstructions string              `json:"additionalInstructions"`
	CancelledAt            *time.Time          `json:"cancelledAt,omitempty"`
	DeletedAt              *time.Time          `json:"deletedAt,omitempty"`
	Version                int64               `json:"version"`
	Items                  []OrderItemResponse `json:"items,omitempty"`
}

// OrderItemResponse is the JSON projection of one order item.
type OrderItemResponse struct {
	ID          string         `json:"id"`
	ProductName string         `json:"productName"`
	Quantity    string         `json:"quantity"`
	Notes       string         `json:"notes"`
	Store       string         `json:"store"`
	ImageRefs   []ImageRefBody `json:"imageRefs,omitempty"`
}

// NotificationsResponse lists a user's notifications with the unread badge
// count.
type NotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
}

// NotificationResponse is the JSON projection of one notification.
type NotificationResponse struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	RelatedOrderID string    `json:"relatedOrderId"`
	Message        string    `json:"message"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toOrderResponse(resp queries.OrderResponse) OrderResponse {
	out := OrderResponse{
		ID:                     resp.ID.String(),
		OrderNumber:            resp.OrderNumber,
		CustomerID:             resp.CustomerID.String(),
		AddressID:              resp.AddressID.String(),
		Store:                  resp.Store,
		Status:                 resp.Status,
		StatusLabel:            resp.StatusLabel,
		DesiredDate:            resp.DesiredDate,
		SuggestedDate:          resp.SuggestedDate,
		SuggestedBy:            resp.SuggestedBy,
		FinalDate:              resp.FinalDate,
		IsLocked:               resp.IsLocked,
		AdditionalInstructions: resp.AdditionalInstructions,
		CancelledAt:            resp.CancelledAt,
		DeletedAt:              resp.DeletedAt,
		Version:                resp.Version,
	}

	for _, item := range resp.Items {
		itemResp := OrderItemResponse{
			ID:          item.ID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Notes:       item.Notes,
			Store:       item.Store,
		}
		for _, img := range item.ImageRefs {
			itemResp.ImageRefs = append(itemResp.ImageRefs, ImageRefBody{
				URL:       img.URL,
				IsMain:    img.IsMain,
				SortOrder: img.SortOrder,
			})
		}
		out.Items = append(out.Items, itemResp)
	}

	return out
}

// toOrderResponseFromDomain projects a freshly committed aggregate for the
// mutation endpoints, mirroring the read-side projection field for field.
func toOrderResponseFromDomain(o *order.Order) OrderResponse {
	out := OrderResponse{
		ID:                     o.ID().String(),
		OrderNumber:            o.OrderNumber(),
		CustomerID:             o.CustomerID().String(),
		AddressID:              o.AddressID().String(),
		Store:                  o.Store(),
		Status:                 o.Status().String(),
		StatusLabel:            o.Status().DisplayLabel(),
		DesiredDate:            o.DesiredDate().String(),
		IsLocked:               o.IsLocked(),
		AdditionalInstructions: o.AdditionalInstructions(),
		CancelledAt:            o.CancelledAt(),
		DeletedAt:              o.DeletedAt(),
		Version:                o.Version(),
	}

	if d := o.SuggestedDate(); d != nil {
		encoded := d.String()
		out.SuggestedDate = &encoded
		author := o.SuggestedBy().String()
		out.SuggestedBy = &author
	}
	if d := o.FinalDate(); d != nil {
		encoded := d.String()
		out.FinalDate = &encoded
	}

	for _, item := range o.Items() {
		itemResp := OrderItemResponse{
			ID:          item.ID().String(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			Notes:       item.Notes(),
			Store:       item.Store(),
		}
		for _, img := range item.ImageRefs() {
			itemResp.ImageRefs = append(itemResp.ImageRefs, ImageRefBody{
				URL:       img.URL(),
				IsMain:    img.IsMain(),
				SortOrder: img.SortOrder(),
			})
		}
		out.Items = append(out.Items, itemResp)
	}

	return out
}

func toOrderListResponse(resps []queries.OrderResponse) []OrderResponse {
	out := make([]OrderResponse, 0, len(resps))
	for _, resp := range resps {
		out = append(out, toOrderResponse(resp))
	}
	return out
}

func toNotificationsResponse(resp queries.GetNotificationsQueryResponse) NotificationsResponse {
	out := NotificationsResponse{
		Notifications: make([]NotificationResponse, 0, len(resp.Notifications)),
		UnreadCount:   resp.UnreadCount,
	}
	for _, n := range resp.Notifications {
		out.Notifications = append(out.Notifications, NotificationResponse{
			ID:             n.ID.String(),
			Type:           n.Type,
			RelatedOrderID: n.RelatedOrderID.String(),
			Message:        n.Message,
			IsRead:         n.IsRead,
			CreatedAt:      n.CreatedAt,
		})
	}
	return out
}
