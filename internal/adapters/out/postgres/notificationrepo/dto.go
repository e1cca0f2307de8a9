package notificationrepo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/notification"
)

// NotificationDTO is the persistence model for a stored notification.
type NotificationDTO struct {
	ID             uuid.UUID `gorm:"primaryKey;type:uuid"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null"`
	Type           int       `gorm:"not null"`
	RelatedOrderID uuid.UUID `gorm:"type:uuid;not null"`
	Message        string    `gorm:"not null"`
	IsRead         bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"index;not null"`
}

// TableName overrides the table name used by NotificationDTO.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// CounterDTO is the per-user unread counter, maintained on every write so
// badge reads never scan the notifications table.
type CounterDTO struct {
	UserID      uuid.UUID `gorm:"primaryKey;type:uuid"`
	UnreadCount int64     `gorm:"not null"`
}

// TableName overrides the table name used by CounterDTO.
func (CounterDTO) TableName() string {
	return "notification_counters"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:             n.ID().Bytes(),
		UserID:         n.UserID().Bytes(),
		Type:           int(n.Type()),
		RelatedOrderID: n.RelatedOrderID().Bytes(),
		Message:        n.Message(),
		IsRead:         n.IsRead(),
		CreatedAt:      n.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, fmt.Errorf("restore notification %s id: %w", dto.ID, err)
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, fmt.Errorf("restore notification %s user id: %w", dto.ID, err)
	}

	relatedOrderID, err := kernel.UUIDFromBytes(dto.RelatedOrderID[:])
	if err != nil {
		return nil, fmt.Errorf("restore notification %s order id: %w", dto.ID, err)
	}

	return notification.RestoreNotification(
		id,
		userID,
		notification.Type(dto.Type),
		relatedOrderID,
		dto.Message,
		dto.IsRead,
		dto.CreatedAt,
	)
}
