package queries

import (
	"errors"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/pkg/guard"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery retrieves all orders of one customer, newest first.
// Soft-deleted orders are never visible on this query.
type GetCustomerOrdersQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates a query for a customer's order list.
func NewGetCustomerOrdersQuery(customerID kernel.UUID) (GetCustomerOrdersQuery, error) {
	query := GetCustomerOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setCustomerID(customerID); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// CustomerID returns the identifier of the customer whose orders are listed.
func (q GetCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q *GetCustomerOrdersQuery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	q.customerID = customerID
	return nil
}
