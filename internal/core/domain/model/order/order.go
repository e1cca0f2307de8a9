package order

import (
	"errors"
	"time"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrInvalidTransition is the sentinel for any guard failure of the
	// negotiation state machine: wrong status, wrong actor, or a lock in the
	// way. Errors wrap it with detail; classify with errors.Is.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrOrderDeleted is returned for any command other than Restore applied
	// to a soft-deleted order.
	ErrOrderDeleted = errors.New("order is deleted")

	// ErrLastItemProtected is returned when a removal would leave the order
	// without items.
	ErrLastItemProtected = errors.New("an order must retain at least one item")
)

// Order is the aggregate root of the delivery-date negotiation. It owns the
// item list and every field the state machine reads or writes.
//
// Core invariants, maintained by every mutating method:
//   - a final date implies a status of DateForced, DateAccepted, or
//     Completed; accepting or forcing locks the order, and an admin unlock
//     reopens an accepted one for renegotiation
//   - a cancelled order never has a final date
//   - a pending suggestion exists exactly in the two pending-review statuses,
//     and its author is recorded explicitly in suggestedBy
//   - the item list is never empty
//
// The lock flag and the status are two independent guards: forcing or
// accepting a date locks the order, and an admin may also lock or unlock it
// explicitly at any status. Edit permissions combine both guards.
//
// Orders are never physically deleted; deletedAt hides an order from
// customer-facing reads while keeping it restorable by an admin.
type Order struct {
	id          kernel.UUID
	orderNumber string
	customerID  kernel.UUID
	addressID   kernel.UUID
	store       string

	status Status

	desired     kernel.DeliveryDate
	suggested   *kernel.DeliveryDate
	suggestedBy Actor
	final       *kernel.DeliveryDate

	isLocked               bool
	additionalInstructions string

	cancelledAt *time.Time
	deletedAt   *time.Time

	version int64

	items []*Item

	isConstructed bool
}

// NewOrder creates an order fresh from checkout, in New status with version 1.
// The desired delivery date is the customer's original ask and never changes
// afterwards. At least one item is required.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	addressID kernel.UUID,
	store string,
	desired kernel.DeliveryDate,
	additionalInstructions string,
	items []*Item,
) (*Order, error) {
	o := &Order{
		status:                 New,
		version:                1,
		additionalInstructions: additionalInstructions,
		store:                  store,
		isConstructed:          true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerID(customerID),
		o.setAddressID(addressID),
		o.setDesired(desired),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order.
type RestoreOrderParams struct {
	ID                     kernel.UUID
	OrderNumber            string
	CustomerID             kernel.UUID
	AddressID              kernel.UUID
	Store                  string
	Status                 Status
	Desired                kernel.DeliveryDate
	Suggested              *kernel.DeliveryDate
	SuggestedBy            Actor
	Final                  *kernel.DeliveryDate
	IsLocked               bool
	AdditionalInstructions string
	CancelledAt            *time.Time
	DeletedAt              *time.Time
	Version                int64
	Items                  []*Item
}

// RestoreOrder reconstructs an order aggregate from persistent storage,
// re-validating identity, status, and the cross-field invariants so corrupted
// rows surface at load time instead of during the next transition.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		additionalInstructions: p.AdditionalInstructions,
		store:                  p.Store,
		cancelledAt:            p.CancelledAt,
		deletedAt:              p.DeletedAt,
		isLocked:               p.IsLocked,
		isConstructed:          true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setOrderNumber(p.OrderNumber),
		o.setCustomerID(p.CustomerID),
		o.setAddressID(p.AddressID),
		o.setDesired(p.Desired),
		o.setStatus(p.Status),
		o.setVersion(p.Version),
		o.setItems(p.Items),
	); err != nil {
		return nil, err
	}

	if err := o.restoreNegotiation(p.Suggested, p.SuggestedBy, p.Final); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the immutable human-facing order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// AddressID returns the identifier of the delivery address.
func (o *Order) AddressID() kernel.UUID {
	return o.addressID
}

// Store returns the free-text merchant label of the order.
func (o *Order) Store() string {
	return o.store
}

// Status returns the current negotiation status.
func (o *Order) Status() Status {
	return o.status
}

// DesiredDate returns the customer's original delivery ask.
func (o *Order) DesiredDate() kernel.DeliveryDate {
	return o.desired
}

// SuggestedDate returns the pending suggestion, or nil when none exists.
func (o *Order) SuggestedDate() *kernel.DeliveryDate {
	if o.suggested == nil {
		return nil
	}
	d := *o.suggested
	return &d
}

// SuggestedBy returns the author of the pending suggestion, or ActorUnknown
// when no suggestion is pending. This field is the source of truth for who
// may accept; the status value is only a derived view.
func (o *Order) SuggestedBy() Actor {
	return o.suggestedBy
}

// FinalDate returns the binding delivery date, or nil while none is set.
func (o *Order) FinalDate() *kernel.DeliveryDate {
	if o.final == nil {
		return nil
	}
	d := *o.final
	return &d
}

// IsLocked reports whether the order is locked against item and date edits.
func (o *Order) IsLocked() bool {
	return o.isLocked
}

// AdditionalInstructions returns the customer's free-text delivery notes.
func (o *Order) AdditionalInstructions() string {
	return o.additionalInstructions
}

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// DeletedAt returns when the order was soft-deleted, or nil.
func (o *Order) DeletedAt() *time.Time {
	return o.deletedAt
}

// IsDeleted reports whether the order is soft-deleted.
func (o *Order) IsDeleted() bool {
	return o.deletedAt != nil
}

// Version returns the optimistic-concurrency version the aggregate was
// loaded at. The repository's compare-and-swap write is keyed on it.
func (o *Order) Version() int64 {
	return o.version
}

// AdvanceVersion moves the aggregate to the version the row now holds.
// Called by the order repository after a successful compare-and-swap write.
func (o *Order) AdvanceVersion() {
	o.version++
}

// Items returns the ordered item list.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// Item returns the item with the given id, or nil when absent.
func (o *Order) Item(itemID kernel.UUID) *Item {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item
		}
	}
	return nil
}

// SuggestDate records a delivery-date proposal by the given actor and moves
// the order into the review status of the other side.
//
// A repeated suggestion by the author of the still-pending one overwrites it
// in place; the status does not change because the reviewing side stays the
// same. On an accepted order that an admin has unlocked, a new suggestion
// reopens the negotiation and clears the final date. Suggesting is closed
// once a date was forced, the order is locked, or the order reached a
// terminal state.
func (o *Order) SuggestDate(actor Actor, date kernel.DeliveryDate) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := date.Validate(); err != nil {
		return err
	}
	if o.isLocked {
		return newInvalidTransition("order %s is locked", o.orderNumber)
	}
	if err := o.status.ValidateSuggest(); err != nil {
		return err
	}

	newStatus, err := pendingReviewFor(actor)
	if err != nil {
		return err
	}

	// A final date here means an admin unlock reopened an accepted order;
	// the new proposal supersedes it.
	o.final = nil
	o.suggested = &date
	o.suggestedBy = actor
	o.status = newStatus
	return nil
}

// AcceptDate promotes the pending suggestion to the final date. Only the
// actor who did not author the suggestion may accept; the author's own
// accept is an invalid transition. Accepting locks the order.
func (o *Order) AcceptDate(actor Actor) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if o.suggested == nil {
		return newInvalidTransition("order %s has no pending suggestion", o.orderNumber)
	}
	if err := o.status.ValidateAccept(); err != nil {
		return err
	}
	if actor == o.suggestedBy {
		return newInvalidTransition("%s cannot accept their own suggestion", actor)
	}

	o.final = o.suggested
	o.clearSuggestion()
	o.status = DateAccepted
	o.isLocked = true
	return nil
}

// ForceDate sets the final date unilaterally, bypassing any pending
// suggestion, and locks the order. Forcing is the one path that may replace
// an already set final date; it remains closed for terminal orders.
func (o *Order) ForceDate(date kernel.DeliveryDate) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	if err := date.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateForce(); err != nil {
		return err
	}

	o.final = &date
	o.clearSuggestion()
	o.status = DateForced
	o.isLocked = true
	return nil
}

// Cancel withdraws the order. Cancellation is only possible while no final
// date is set; a bound order can only be admin-deleted.
func (o *Order) Cancel(now time.Time) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	if err := o.status.ValidateCancel(); err != nil {
		return err
	}
	if o.final != nil {
		return newInvalidTransition("order %s already has a final delivery date", o.orderNumber)
	}

	cancelledAt := now.UTC()
	o.cancelledAt = &cancelledAt
	o.clearSuggestion()
	o.status = Cancelled
	return nil
}

// SetLock toggles the explicit admin lock. The flag is independent of the
// status and legal at any status.
func (o *Order) SetLock(locked bool) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}

	o.isLocked = locked
	return nil
}

// Complete marks a date-bound order as fulfilled.
func (o *Order) Complete() error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	if o.final == nil {
		return newInvalidTransition("order %s has no final delivery date", o.orderNumber)
	}

	o.status = Completed
	return nil
}

// MarkDeleted soft-deletes the order, hiding it from customer-facing reads.
// The negotiation state is left untouched so Restore brings the order back
// exactly as it was.
func (o *Order) MarkDeleted(now time.Time) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}

	deletedAt := now.UTC()
	o.deletedAt = &deletedAt
	return nil
}

// Restore reverses a soft delete. It is the only command legal on a deleted
// order.
func (o *Order) Restore() error {
	if o.deletedAt == nil {
		return newInvalidTransition("order %s is not deleted", o.orderNumber)
	}

	o.deletedAt = nil
	return nil
}

// AddItem appends an item to the order, subject to the shared edit guard.
func (o *Order) AddItem(item *Item) error {
	if err := o.ensureItemsMutable(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if o.Item(item.ID()) != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"item", errors.New("item with this id already exists"))
	}

	o.items = append(o.items, item)
	return nil
}

// UpdateItem replaces the contents of an existing item, subject to the
// shared edit guard.
func (o *Order) UpdateItem(
	itemID kernel.UUID,
	productName string,
	quantity string,
	notes string,
	store string,
	imageRefs []ImageRef,
) error {
	if err := o.ensureItemsMutable(); err != nil {
		return err
	}

	item := o.Item(itemID)
	if item == nil {
		return errs.NewObjectNotFoundError("orderItem", itemID.String())
	}

	return item.update(productName, quantity, notes, store, imageRefs)
}

// RemoveItem deletes an item from the order. Removing the last remaining
// item is rejected; an order always retains at least one item.
func (o *Order) RemoveItem(itemID kernel.UUID) error {
	if err := o.ensureItemsMutable(); err != nil {
		return err
	}
	if len(o.items) == 1 {
		return ErrLastItemProtected
	}

	for i, item := range o.items {
		if item.ID().IsEqual(itemID) {
			o.items = append(o.items[:i], o.items[i+1:]...)
			return nil
		}
	}

	return errs.NewObjectNotFoundError("orderItem", itemID.String())
}

func (o *Order) ensureNotDeleted() error {
	if o.deletedAt != nil {
		return ErrOrderDeleted
	}
	return nil
}

// ensureItemsMutable combines the two orthogonal edit guards: the explicit
// lock flag and the status-based guard.
func (o *Order) ensureItemsMutable() error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	if o.isLocked {
		return newInvalidTransition("order %s is locked", o.orderNumber)
	}
	return o.status.ValidateItemMutation()
}

func (o *Order) clearSuggestion() {
	o.suggested = nil
	o.suggestedBy = ActorUnknown
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}
	o.addressID = addressID
	return nil
}

func (o *Order) setDesired(desired kernel.DeliveryDate) error {
	if err := desired.Validate(); err != nil {
		return err
	}
	o.desired = desired
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version < 1 {
		return errs.NewVersionIsInvalidErrorWithCause(
			"version", errors.New("version must be at least 1"))
	}
	o.version = version
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]*Item, len(items))
	copy(o.items, items)
	return nil
}

// restoreNegotiation re-applies the cross-field invariants of the
// negotiation state when loading from storage.
func (o *Order) restoreNegotiation(
	suggested *kernel.DeliveryDate,
	suggestedBy Actor,
	final *kernel.DeliveryDate,
) error {
	if suggested != nil {
		if err := suggested.Validate(); err != nil {
			return err
		}
		if err := suggestedBy.Validate(); err != nil {
			return err
		}
		if !o.status.IsPendingReview() {
			return newInvalidTransition(
				"a pending suggestion is inconsistent with status %s", o.status)
		}
		d := *suggested
		o.suggested = &d
		o.suggestedBy = suggestedBy
	}

	if final != nil {
		if err := final.Validate(); err != nil {
			return err
		}
		if o.status != DateForced && o.status != DateAccepted && o.status != Completed {
			return newInvalidTransition(
				"a final delivery date is inconsistent with status %s", o.status)
		}
		d := *final
		o.final = &d
	}

	if o.status == Cancelled && final != nil {
		return newInvalidTransition("a cancelled order cannot have a final delivery date")
	}

	return nil
}
