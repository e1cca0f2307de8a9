package orderrepo

import (
	"context"
	"errors"
	"time"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/order"
	"portal/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and image references.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order, guarded by a compare-and-swap on the
// version column. The row is written only when its stored version still
// equals expectedVersion; the new version is expectedVersion+1 and the
// aggregate is advanced to match. When the guard misses, a version conflict
// error is returned and nothing changes.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expectedVersion int64) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = expectedVersion + 1

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Select("*").Omit("id", "created_at", "Items").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionConflictError("order", dto.ID.String(), expectedVersion)
	}

	if err := r.replaceItems(ctx, dto); err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// replaceItems rewrites the order's item rows wholesale. Item edits are rare
// and the lists are small, so a diff is not worth the bookkeeping.
func (r *GormOrderRepository) replaceItems(ctx context.Context, dto OrderDTO) error {
	db := r.db.WithContext(ctx)

	err := db.
		Where("item_id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Model(&ItemDTO{}).Select("id").Where("order_id = ?", dto.ID)).
		Delete(&ItemImageDTO{}).Error
	if err != nil {
		return err
	}

	if err = db.Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Items) == 0 {
		return nil
	}
	return db.Create(&dto.Items).Error
}

// Get retrieves an order by ID, including soft-deleted ones. Filtering
// deleted orders out of read models is the caller's concern; commands need
// the deleted row to distinguish "gone" from "never existed".
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("Items.Images", func(db *gorm.DB) *gorm.DB { return db.Order("order_item_images.sort_order") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetStalePendingReview retrieves live orders that have been waiting for a
// review decision since before the cutoff.
func (r *GormOrderRepository) GetStalePendingReview(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("Items.Images", func(db *gorm.DB) *gorm.DB { return db.Order("order_item_images.sort_order") }).
		Where("status IN ? AND updated_at < ? AND deleted_at IS NULL",
			[]int{int(order.PendingAdminReview), int(order.PendingCustomerReview)}, cutoff).
		Order("updated_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
