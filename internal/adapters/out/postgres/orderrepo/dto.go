package orderrepo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/order"
)

// OrderDTO is the persistence model for the order aggregate root.
type OrderDTO struct {
	ID                     uuid.UUID  `gorm:"primaryKey;type:uuid"`
	OrderNumber            string     `gorm:"uniqueIndex;not null"`
	CustomerID             uuid.UUID  `gorm:"type:uuid;index;not null"`
	AddressID              uuid.UUID  `gorm:"type:uuid;not null"`
	Store                  string     `gorm:"not null"`
	Status                 int        `gorm:"index;not null"`
	DesiredDay             time.Time  `gorm:"not null"`
	DesiredSlot            int        `gorm:"not null"`
	SuggestedDay           *time.Time ``
	SuggestedSlot          *int       ``
	SuggestedBy            int        `gorm:"not null"`
	FinalDay               *time.Time ``
	FinalSlot              *int       ``
	IsLocked               bool       `gorm:"not null"`
	AdditionalInstructions string     ``
	CancelledAt            *time.Time ``
	DeletedAt              *time.Time `gorm:"index"`
	Version                int64      `gorm:"not null"`
	CreatedAt              time.Time  ``
	UpdatedAt              time.Time  ``

	Items []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by OrderDTO.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is the persistence model for a single line item of an order.
type ItemDTO struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductName string    `gorm:"not null"`
	Quantity    string    `gorm:"not null"`
	Notes       string    ``
	Store       string    `gorm:"not null"`

	Images []ItemImageDTO `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by ItemDTO.
func (ItemDTO) TableName() string {
	return "order_items"
}

// ItemImageDTO is the persistence model for a product image reference
// attached to an order item.
type ItemImageDTO struct {
	ItemID    uuid.UUID `gorm:"primaryKey;type:uuid"`
	SortOrder int       `gorm:"primaryKey"`
	URL       string    `gorm:"not null"`
	IsMain    bool      `gorm:"not null"`
}

// TableName overrides the table name used by ItemImageDTO.
func (ItemImageDTO) TableName() string {
	return "order_item_images"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                     aggregate.ID().Bytes(),
		OrderNumber:            aggregate.OrderNumber(),
		CustomerID:             aggregate.CustomerID().Bytes(),
		AddressID:              aggregate.AddressID().Bytes(),
		Store:                  aggregate.Store(),
		Status:                 int(aggregate.Status()),
		DesiredDay:             aggregate.DesiredDate().Day(),
		DesiredSlot:            int(aggregate.DesiredDate().Slot()),
		SuggestedBy:            int(aggregate.SuggestedBy()),
		IsLocked:               aggregate.IsLocked(),
		AdditionalInstructions: aggregate.AdditionalInstructions(),
		CancelledAt:            aggregate.CancelledAt(),
		DeletedAt:              aggregate.DeletedAt(),
		Version:                aggregate.Version(),
	}

	if suggested := aggregate.SuggestedDate(); suggested != nil {
		day := suggested.Day()
		slot := int(suggested.Slot())
		dto.SuggestedDay = &day
		dto.SuggestedSlot = &slot
	}

	if final := aggregate.FinalDate(); final != nil {
		day := final.Day()
		slot := int(final.Slot())
		dto.FinalDay = &day
		dto.FinalSlot = &slot
	}

	dto.Items = make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		itemDTO := ItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     dto.ID,
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			Notes:       item.Notes(),
			Store:       item.Store(),
		}
		for _, ref := range item.ImageRefs() {
			itemDTO.Images = append(itemDTO.Images, ItemImageDTO{
				ItemID:    itemDTO.ID,
				SortOrder: ref.SortOrder(),
				URL:       ref.URL(),
				IsMain:    ref.IsMain(),
			})
		}
		dto.Items = append(dto.Items, itemDTO)
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	orderID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, fmt.Errorf("restore order %s id: %w", dto.ID, err)
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, fmt.Errorf("restore order %s customer id: %w", dto.ID, err)
	}

	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, fmt.Errorf("restore order %s address id: %w", dto.ID, err)
	}

	desired, err := restoreDeliveryDate(dto.DesiredDay, dto.DesiredSlot)
	if err != nil {
		return nil, fmt.Errorf("restore order %s desired date: %w", dto.ID, err)
	}

	var suggested *kernel.DeliveryDate
	if dto.SuggestedDay != nil && dto.SuggestedSlot != nil {
		suggested, err = restoreDeliveryDate(*dto.SuggestedDay, *dto.SuggestedSlot)
		if err != nil {
			return nil, fmt.Errorf("restore order %s suggested date: %w", dto.ID, err)
		}
	}

	var final *kernel.DeliveryDate
	if dto.FinalDay != nil && dto.FinalSlot != nil {
		final, err = restoreDeliveryDate(*dto.FinalDay, *dto.FinalSlot)
		if err != nil {
			return nil, fmt.Errorf("restore order %s final date: %w", dto.ID, err)
		}
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := restoreItem(itemDTO)
		if err != nil {
			return nil, fmt.Errorf("restore order %s item: %w", dto.ID, err)
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                     orderID,
		OrderNumber:            dto.OrderNumber,
		CustomerID:             customerID,
		AddressID:              addressID,
		Store:                  dto.Store,
		Status:                 order.Status(dto.Status),
		Desired:                *desired,
		Suggested:              suggested,
		SuggestedBy:            order.Actor(dto.SuggestedBy),
		Final:                  final,
		IsLocked:               dto.IsLocked,
		AdditionalInstructions: dto.AdditionalInstructions,
		CancelledAt:            dto.CancelledAt,
		DeletedAt:              dto.DeletedAt,
		Version:                dto.Version,
		Items:                  items,
	})
}

func restoreItem(dto ItemDTO) (*order.Item, error) {
	itemID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, fmt.Errorf("restore item %s id: %w", dto.ID, err)
	}

	refs := make([]order.ImageRef, 0, len(dto.Images))
	for _, imageDTO := range dto.Images {
		ref, err := order.NewImageRef(imageDTO.URL, imageDTO.IsMain, imageDTO.SortOrder)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	return order.RestoreItem(
		itemID,
		dto.ProductName,
		dto.Quantity,
		dto.Notes,
		dto.Store,
		refs,
	)
}

func restoreDeliveryDate(day time.Time, slot int) (*kernel.DeliveryDate, error) {
	timeSlot := kernel.TimeSlot(slot)
	if err := timeSlot.Validate(); err != nil {
		return nil, err
	}
	date, err := kernel.NewDeliveryDate(day, timeSlot)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
