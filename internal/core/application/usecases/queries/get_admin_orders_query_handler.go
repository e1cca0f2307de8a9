package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAdminOrdersQueryHandler retrieves the back-office order list.
// Unlike the customer list, soft-deleted orders are included and flagged via
// DeletedAt so the back office can restore them.
type GetAdminOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAdminOrdersQueryHandler creates a handler for back-office order lists.
func NewGetAdminOrdersQueryHandler(db *gorm.DB) GetAdminOrdersQueryHandler {
	return GetAdminOrdersQueryHandler{db: db}
}

// Handle executes the query, newest orders first.
func (h GetAdminOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAdminOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
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
	`
	args := make([]any, 0, 1)
	if status := query.Status(); status != nil {
		sql += ` WHERE status = ?`
		args = append(args, int(*status))
	}
	sql += ` ORDER BY created_at DESC, id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
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
