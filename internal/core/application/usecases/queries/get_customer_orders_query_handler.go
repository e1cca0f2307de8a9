package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetCustomerOrdersQueryHandler retrieves the order list of one customer.
// Items are not loaded; list views only show the order headline.
type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerOrdersQueryHandler creates a handler for customer order lists.
func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

// Handle executes the query. Soft-deleted orders are filtered out; results
// are sorted newest first.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			address_id,
			store,
			status,
			desired_day,
			desired_slot,
			suggested_day,
			suggested_slot,
			suggested_by,
			final_day,
			final_slot,
			is_locked,
			additional_instructions,
			cancelled_at,
			deleted_at,
			version
		FROM orders
		WHERE customer_id = ? AND deleted_at IS NULL
		ORDER BY created_at DESC, id
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		resp, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
