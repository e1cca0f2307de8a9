package queries

import (
	"errors"

	"portal/internal/core/domain/model/order"
	"portal/internal/pkg/errs"
	"portal/internal/pkg/guard"
)

var ErrGetAdminOrdersQueryIsNotConstructed = errors.New(
	"GetAdminOrdersQuery must be created via NewGetAdminOrdersQuery constructor",
)

// GetAdminOrdersQuery retrieves the back-office order list, soft-deleted
// orders included. An optional status filter narrows the result.
type GetAdminOrdersQuery struct { //nolint:recvcheck //using for validation
	status *order.Status

	guard guard.ConstructorGuard
}

// NewGetAdminOrdersQuery creates a back-office list query. A nil status
// means no filtering.
func NewGetAdminOrdersQuery(status *order.Status) (GetAdminOrdersQuery, error) {
	query := GetAdminOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setStatus(status); err != nil {
		return GetAdminOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAdminOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAdminOrdersQueryIsNotConstructed)
}

// Status returns the optional status filter, or nil for all statuses.
func (q GetAdminOrdersQuery) Status() *order.Status {
	if q.status == nil {
		return nil
	}
	s := *q.status
	return &s
}

func (q *GetAdminOrdersQuery) setStatus(status *order.Status) error {
	if status == nil {
		return nil
	}
	if err := status.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}

	s := *status
	q.status = &s
	return nil
}
