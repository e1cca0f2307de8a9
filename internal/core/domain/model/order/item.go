package order

import (
	"errors"
	"fmt"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/pkg/errs"
	"portal/internal/pkg/guard"
)

// MaxImageRefs is the maximum number of image references an item may carry.
const MaxImageRefs = 3

var (
	// ErrItemIsNotConstructed is returned when an Item was not created through
	// NewItem or RestoreItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

	// ErrImageRefIsNotConstructed is returned when an ImageRef was not created
	// through NewImageRef.
	ErrImageRefIsNotConstructed = errors.New("ImageRef must be created via NewImageRef")
)

// ImageRef is an ordered reference to a product image. An item carries up to
// MaxImageRefs of them, exactly one marked as the main image.
//
// Image references are stored as a proper ordered list. There is deliberately
// no single-string encoding of multiple references anywhere in the system.
type ImageRef struct {
	url       string
	isMain    bool
	sortOrder int

	guard guard.ConstructorGuard
}

// NewImageRef creates a validated image reference.
// The URL must be non-empty and sortOrder non-negative.
func NewImageRef(url string, isMain bool, sortOrder int) (ImageRef, error) {
	if url == "" {
		return ImageRef{}, errs.NewValueIsRequiredError("imageRef.url")
	}
	if sortOrder < 0 {
		return ImageRef{}, errs.NewValueIsInvalidErrorWithCause(
			"imageRef.sortOrder", fmt.Errorf("%d is negative", sortOrder))
	}

	return ImageRef{
		url:       url,
		isMain:    isMain,
		sortOrder: sortOrder,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// URL returns the image location.
func (r ImageRef) URL() string {
	return r.url
}

// IsMain reports whether this is the item's main image.
func (r ImageRef) IsMain() bool {
	return r.isMain
}

// SortOrder returns the display position of the image.
func (r ImageRef) SortOrder() int {
	return r.sortOrder
}

// Validate ensures the ImageRef was created through NewImageRef.
func (r ImageRef) Validate() error {
	return r.guard.Validate(ErrImageRefIsNotConstructed)
}

// validateImageRefs enforces the image list invariant: at most MaxImageRefs
// entries, and exactly one main image when the list is non-empty.
func validateImageRefs(refs []ImageRef) error {
	if len(refs) > MaxImageRefs {
		return errs.NewValueIsOutOfRangeError("imageRefs", len(refs), 0, MaxImageRefs)
	}

	if len(refs) == 0 {
		return nil
	}

	mains := 0
	for _, ref := range refs {
		if err := ref.Validate(); err != nil {
			return err
		}
		if ref.IsMain() {
			mains++
		}
	}
	if mains != 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"imageRefs", fmt.Errorf("%d main images, want exactly 1", mains))
	}

	return nil
}

// Item is a line of an order: a product reference with a free-text quantity
// (e.g. "2 Liter") and optional notes. Items exist only inside the Order
// aggregate and are mutated through it.
type Item struct {
	id          kernel.UUID
	productName string
	quantity    string
	notes       string
	store       string
	imageRefs   []ImageRef

	guard guard.ConstructorGuard
}

// NewItem creates a validated order item. Product name and quantity are
// required; notes and store are free text; imageRefs must satisfy the image
// list invariant.
func NewItem(
	id kernel.UUID,
	productName string,
	quantity string,
	notes string,
	store string,
	imageRefs []ImageRef,
) (*Item, error) {
	item := &Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setContents(productName, quantity, notes, store, imageRefs),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an item from persistent storage.
// It applies the same validation as NewItem.
func RestoreItem(
	id kernel.UUID,
	productName string,
	quantity string,
	notes string,
	store string,
	imageRefs []ImageRef,
) (*Item, error) {
	return NewItem(id, productName, quantity, notes, store, imageRefs)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductName returns the product label of the item.
func (i *Item) ProductName() string {
	return i.productName
}

// Quantity returns the free-text quantity of the item.
func (i *Item) Quantity() string {
	return i.quantity
}

// Notes returns the customer's free-text notes for the item.
func (i *Item) Notes() string {
	return i.notes
}

// Store returns the merchant label for the item.
func (i *Item) Store() string {
	return i.store
}

// ImageRefs returns the ordered image references of the item.
func (i *Item) ImageRefs() []ImageRef {
	refs := make([]ImageRef, len(i.imageRefs))
	copy(refs, i.imageRefs)
	return refs
}

// Validate ensures the Item was created through NewItem or RestoreItem.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// IsEqual compares two items by their unique identifiers.
func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// update replaces the mutable contents of the item. Called by the Order
// aggregate only, after its own mutation guards have passed.
func (i *Item) update(productName, quantity, notes, store string, imageRefs []ImageRef) error {
	return i.setContents(productName, quantity, notes, store, imageRefs)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setContents(productName, quantity, notes, store string, imageRefs []ImageRef) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	if quantity == "" {
		return errs.NewValueIsRequiredError("quantity")
	}
	if err := validateImageRefs(imageRefs); err != nil {
		return err
	}

	i.productName = productName
	i.quantity = quantity
	i.notes = notes
	i.store = store
	i.imageRefs = make([]ImageRef, len(imageRefs))
	copy(i.imageRefs, imageRefs)
	return nil
}
