// Package queries contains read-only operations over the persistence layer.
// Query handlers bypass the domain aggregates and project rows straight into
// response structs, per the read side of the CQRS split.
package queries

import (
	"errors"
	"time"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its items and image references.
//
// IncludeDeleted controls the visibility of soft-deleted orders: customer
// endpoints treat them as not found, the back office sees them flagged.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, false)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown id, or a deleted order on a customer endpoint
//	}
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	includeDeleted bool

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(orderID kernel.UUID, includeDeleted bool) (GetOrderQuery, error) {
	query := GetOrderQuery{
		includeDeleted: includeDeleted,
		guard:          guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// IncludeDeleted reports whether soft-deleted orders are visible to this query.
func (q GetOrderQuery) IncludeDeleted() bool {
	return q.includeDeleted
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// OrderResponse is the read-model projection of an order. Dates are encoded
// in the wire format ("YYYY-MM-DD@slot"); the status carries both its wire
// name and its human-facing label so clients never branch on the raw name.
type OrderResponse struct {
	ID                     kernel.UUID
	OrderNumber            string
	CustomerID             kernel.UUID
	AddressID              kernel.UUID
	Store                  string
	Status                 string
	StatusLabel            string
	DesiredDate            string
	SuggestedDate          *string
	SuggestedBy            *string
	FinalDate              *string
	IsLocked               bool
	AdditionalInstructions string
	CancelledAt            *time.Time
	DeletedAt              *time.Time
	Version                int64
	Items                  []OrderItemResponse
}

// OrderItemResponse is the read-model projection of one order item.
type OrderItemResponse struct {
	ID          kernel.UUID
	ProductName string
	Quantity    string
	Notes       string
	Store       string
	ImageRefs   []OrderItemImageResponse
}

// OrderItemImageResponse is the read-model projection of one image reference.
type OrderItemImageResponse struct {
	URL       string
	IsMain    bool
	SortOrder int
}
