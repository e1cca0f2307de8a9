package notificationrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/notification"
	"portal/internal/pkg/errs"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{
		db: db,
	}
}

// Add saves a new notification and bumps the recipient's unread counter in
// the same transaction, so the badge count never drifts from the rows.
func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"unread_count": gorm.Expr("notification_counters.unread_count + 1"),
		}),
	}).Create(&CounterDTO{UserID: dto.UserID, UnreadCount: 1}).Error
}

// MarkRead flags the given notifications of the user as read and decrements
// the unread counter by the number of rows actually flipped. Notifications
// already read, or belonging to another user, are silently skipped.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, userID kernel.UUID, ids []kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("ids")
	}

	rawIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		rawIDs = append(rawIDs, id.Bytes())
	}

	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("user_id = ? AND id IN ? AND is_read = false", userID.Bytes(), rawIDs).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&CounterDTO{}).
		Where("user_id = ?", userID.Bytes()).
		Update("unread_count", gorm.Expr("GREATEST(unread_count - ?, 0)", result.RowsAffected)).
		Error
}

// PurgeRead deletes read notifications created before the cutoff and
// returns the number of rows removed. Unread rows are never purged, so the
// counters stay untouched.
func (r *GormNotificationRepository) PurgeRead(ctx context.Context, cutoff time.Time) (int64, error) {
	if cutoff.IsZero() {
		return 0, errs.NewValueIsRequiredError("cutoff")
	}

	result := r.db.WithContext(ctx).
		Where("is_read = true AND created_at < ?", cutoff).
		Delete(&NotificationDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
