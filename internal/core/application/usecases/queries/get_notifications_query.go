package queries

import (
	"errors"
	"time"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/pkg/guard"
)

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery retrieves a user's notification inbox together with
// the unread count. Delivery is pull-based; clients poll this query.
type GetNotificationsQuery struct { //nolint:recvcheck //using for validation
	userID     kernel.UUID
	unreadOnly bool

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates an inbox query for the given user.
func NewGetNotificationsQuery(userID kernel.UUID, unreadOnly bool) (GetNotificationsQuery, error) {
	query := GetNotificationsQuery{
		unreadOnly: unreadOnly,
		guard:      guard.NewConstructorGuard(),
	}

	if err := query.setUserID(userID); err != nil {
		return GetNotificationsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// UserID returns the identifier of the inbox owner.
func (q GetNotificationsQuery) UserID() kernel.UUID {
	return q.userID
}

// UnreadOnly reports whether read notifications are filtered out.
func (q GetNotificationsQuery) UnreadOnly() bool {
	return q.unreadOnly
}

func (q *GetNotificationsQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}

// GetNotificationsQueryResponse is a user's inbox page with its unread count.
// The count comes from the maintained counter, not from scanning the rows.
type GetNotificationsQueryResponse struct {
	Notifications []NotificationResponse
	UnreadCount   int64
}

// NotificationResponse is the read-model projection of one notification.
type NotificationResponse struct {
	ID             kernel.UUID
	Type           string
	RelatedOrderID kernel.UUID
	Message        string
	IsRead         bool
	CreatedAt      time.Time
}
