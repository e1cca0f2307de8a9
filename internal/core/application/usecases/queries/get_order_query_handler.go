package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/order"
	"portal/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order projection from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound for an unknown
// id, and likewise for a soft-deleted order unless IncludeDeleted is set.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	resp, err := scanOrderRow(h.db.WithContext(ctx).Raw(`
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
		WHERE id = ?
	`, query.OrderID().Bytes()).Row())
	if errors.Is(err, sql.ErrNoRows) {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return OrderResponse{}, err
	}

	if resp.DeletedAt != nil && !query.IncludeDeleted() {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	items, err := loadOrderItems(ctx, h.db, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanOrderRow maps one orders row onto the response projection.
// Shared by the single-order and list handlers; the column order is fixed.
func scanOrderRow(row rowScanner) (OrderResponse, error) {
	var (
		resp          OrderResponse
		id            uuid.UUID
		customerID    uuid.UUID
		addressID     uuid.UUID
		status        int
		desiredDay    time.Time
		desiredSlot   int
		suggestedDay  sql.NullTime
		suggestedSlot sql.NullInt64
		suggestedBy   int
		finalDay      sql.NullTime
		finalSlot     sql.NullInt64
		cancelledAt   sql.NullTime
		deletedAt     sql.NullTime
	)

	err := row.Scan(
		&id,
		&resp.OrderNumber,
		&customerID,
		&addressID,
		&resp.Store,
		&status,
		&desiredDay,
		&desiredSlot,
		&suggestedDay,
		&suggestedSlot,
		&suggestedBy,
		&finalDay,
		&finalSlot,
		&resp.IsLocked,
		&resp.AdditionalInstructions,
		&cancelledAt,
		&deletedAt,
		&resp.Version,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.AddressID, err = kernel.UUIDFromBytes(addressID[:]); err != nil {
		return OrderResponse{}, err
	}

	orderStatus := order.Status(status)
	resp.Status = orderStatus.String()
	resp.StatusLabel = orderStatus.DisplayLabel()

	if resp.DesiredDate, err = wireDate(desiredDay, desiredSlot); err != nil {
		return OrderResponse{}, err
	}

	if suggestedDay.Valid && suggestedSlot.Valid {
		encoded, dateErr := wireDate(suggestedDay.Time, int(suggestedSlot.Int64))
		if dateErr != nil {
			return OrderResponse{}, dateErr
		}
		resp.SuggestedDate = &encoded

		author := order.Actor(suggestedBy).String()
		resp.SuggestedBy = &author
	}

	if finalDay.Valid && finalSlot.Valid {
		encoded, dateErr := wireDate(finalDay.Time, int(finalSlot.Int64))
		if dateErr != nil {
			return OrderResponse{}, dateErr
		}
		resp.FinalDate = &encoded
	}

	if cancelledAt.Valid {
		t := cancelledAt.Time
		resp.CancelledAt = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		resp.DeletedAt = &t
	}

	return resp, nil
}

// wireDate re-encodes a stored day/slot pair in the canonical wire format.
func wireDate(day time.Time, slot int) (string, error) {
	d, err := kernel.NewDeliveryDate(day, kernel.TimeSlot(slot))
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// loadOrderItems fetches the items and image references of one order.
func loadOrderItems(
	ctx context.Context,
	db *gorm.DB,
	orderID kernel.UUID,
) ([]OrderItemResponse, error) {
	items := make([]OrderItemResponse, 0)
	itemIndex := make(map[uuid.UUID]int)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_name,
			quantity,
			notes,
			store
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item OrderItemResponse
			id   uuid.UUID
		)

		if err = rows.Scan(&id, &item.ProductName, &item.Quantity, &item.Notes, &item.Store); err != nil {
			return nil, err
		}
		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		item.ImageRefs = make([]OrderItemImageResponse, 0)
		itemIndex[id] = len(items)
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	imageRows, err := db.WithContext(ctx).Raw(`
		SELECT
			i.item_id,
			i.url,
			i.is_main,
			i.sort_order
		FROM order_item_images i
		JOIN order_items oi ON oi.id = i.item_id
		WHERE oi.order_id = ?
		ORDER BY i.item_id, i.sort_order
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer imageRows.Close()

	for imageRows.Next() {
		var (
			itemID uuid.UUID
			ref    OrderItemImageResponse
		)

		if err = imageRows.Scan(&itemID, &ref.URL, &ref.IsMain, &ref.SortOrder); err != nil {
			return nil, err
		}

		if idx, ok := itemIndex[itemID]; ok {
			items[idx].ImageRefs = append(items[idx].ImageRefs, ref)
		}
	}
	if err = imageRows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
