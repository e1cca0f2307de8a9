package queries

import (
	"context"
	"database/sql"
	"errors"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNotificationsQueryHandler retrieves a user's notification inbox.
// The unread count is read from the notification_counters table, which the
// write side keeps in sync with every insert and mark-read.
type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsQueryHandler creates a handler for inbox queries.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

// Handle executes the query, newest notifications first. A user without a
// counter row simply has zero unread notifications.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) (GetNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetNotificationsQueryResponse{}, err
	}

	resp := GetNotificationsQueryResponse{
		Notifications: make([]NotificationResponse, 0),
	}

	listSQL := `
		SELECT
			id,
			type,
			related_order_id,
			message,
			is_read,
			created_at
		FROM notifications
		WHERE user_id = ?
	`
	if query.UnreadOnly() {
		listSQL += ` AND is_read = false`
	}
	listSQL += ` ORDER BY created_at DESC, id`

	rows, err := h.db.WithContext(ctx).Raw(listSQL, query.UserID().Bytes()).Rows()
	if err != nil {
		return GetNotificationsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			n              NotificationResponse
			id             uuid.UUID
			notifType      int
			relatedOrderID uuid.UUID
		)

		err = rows.Scan(&id, &notifType, &relatedOrderID, &n.Message, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return GetNotificationsQueryResponse{}, err
		}

		if n.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetNotificationsQueryResponse{}, err
		}
		if n.RelatedOrderID, err = kernel.UUIDFromBytes(relatedOrderID[:]); err != nil {
			return GetNotificationsQueryResponse{}, err
		}
		n.Type = notification.Type(notifType).String()

		resp.Notifications = append(resp.Notifications, n)
	}
	if err = rows.Err(); err != nil {
		return GetNotificationsQueryResponse{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT unread_count
		FROM notification_counters
		WHERE user_id = ?
	`, query.UserID().Bytes()).Row().Scan(&resp.UnreadCount)
	if errors.Is(err, sql.ErrNoRows) {
		resp.UnreadCount = 0
	} else if err != nil {
		return GetNotificationsQueryResponse{}, err
	}

	return resp, nil
}
