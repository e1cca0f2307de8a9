package ports

import (
	"context"
	"time"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for user
// notifications. Delivery is pull-based: writers append, clients poll their
// inbox through the query layer.
type NotificationRepository interface {
	// Add persists a new notification and bumps the addressee's unread
	// counter in the same transaction.
	Add(ctx context.Context, n *notification.Notification) error

	// MarkRead flags the given notifications of the user as read and
	// decrements the unread counter accordingly. Unknown ids are ignored.
	MarkRead(ctx context.Context, userID kernel.UUID, ids []kernel.UUID) error

	// PurgeRead deletes read notifications created before the cutoff.
	// Returns the number of rows removed.
	PurgeRead(ctx context.Context, cutoff time.Time) (int64, error)
}
