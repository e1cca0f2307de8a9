package notification

import (
	"errors"
	"fmt"
	"time"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/pkg/errs"
	"portal/internal/pkg/guard"
)

// Type classifies a notification for rendering and filtering.
type Type int

const (
	// TypeUnknown represents an invalid or undefined notification type.
	TypeUnknown Type = iota

	// NewOrder announces a freshly placed order to the back office.
	NewOrder

	// DateChangeRequest tells the other side a delivery date was proposed.
	DateChangeRequest

	// DateAccepted tells both sides a proposal became the final date.
	DateAccepted

	// FinalDateSet tells the customer the admin forced a final date.
	FinalDateSet

	// OrderLocked tells the customer their order was locked for edits.
	OrderLocked

	// OrderUnlocked tells the customer their order was unlocked again.
	OrderUnlocked

	// OrderCancelled tells the other side the order was withdrawn.
	OrderCancelled
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:       "unknown",
		NewOrder:          "new_order",
		DateChangeRequest: "date_change_request",
		DateAccepted:      "date_accepted",
		FinalDateSet:      "final_date_set",
		OrderLocked:       "order_locked",
		OrderUnlocked:     "order_unlocked",
		OrderCancelled:    "order_cancelled",
	}
}

// Validate checks whether the Type is a valid member.
func (t Type) Validate() error {
	strs := getTypeStrings()
	if _, ok := strs[t]; !ok || t == TypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"notificationType",
			fmt.Errorf("%d is not a valid notification type", t),
		)
	}
	return nil
}

// String returns the wire name of the notification type.
// Implements fmt.Stringer and is safe on invalid values.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Audience names the side of the negotiation a notification intent is
// addressed to. The dispatcher resolves it to a concrete user.
type Audience int

const (
	// AudienceUnknown represents an invalid or undefined audience.
	AudienceUnknown Audience = iota

	// AudienceCustomer addresses the customer who owns the order.
	AudienceCustomer

	// AudienceAdmin addresses the back office.
	AudienceAdmin
)

// Validate checks whether the Audience is a valid member.
func (a Audience) Validate() error {
	if a != AudienceCustomer && a != AudienceAdmin {
		return errs.NewValueIsInvalidErrorWithCause(
			"audience",
			fmt.Errorf("%d is not a valid audience", a),
		)
	}
	return nil
}

// String returns the wire name of the audience.
func (a Audience) String() string {
	switch a {
	case AudienceCustomer:
		return "customer"
	case AudienceAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ErrIntentIsNotConstructed is returned when validating an Intent that
// bypassed NewIntent.
var ErrIntentIsNotConstructed = errors.New("Intent must be created via NewIntent")

// Intent is a side effect produced by a state transition: a notification to
// be dispatched after the transition commits. Intents are values; creating
// one sends nothing.
type Intent struct {
	audience       Audience
	intentType     Type
	relatedOrderID kernel.UUID
	message        string

	guard guard.ConstructorGuard
}

// NewIntent creates a validated notification intent.
func NewIntent(audience Audience, intentType Type, relatedOrderID kernel.UUID, message string) (Intent, error) {
	if err := errors.Join(
		audience.Validate(),
		intentType.Validate(),
		relatedOrderID.Validate(),
	); err != nil {
		return Intent{}, err
	}
	if message == "" {
		return Intent{}, errs.NewValueIsRequiredError("message")
	}

	return Intent{
		audience:       audience,
		intentType:     intentType,
		relatedOrderID: relatedOrderID,
		message:        message,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Audience returns the side the intent is addressed to.
func (i Intent) Audience() Audience {
	return i.audience
}

// Type returns the notification type of the intent.
func (i Intent) Type() Type {
	return i.intentType
}

// RelatedOrderID returns the order the intent refers to.
func (i Intent) RelatedOrderID() kernel.UUID {
	return i.relatedOrderID
}

// Message returns the human-readable notification text.
func (i Intent) Message() string {
	return i.message
}

// Validate ensures the Intent was created through NewIntent.
func (i Intent) Validate() error {
	return i.guard.Validate(ErrIntentIsNotConstructed)
}

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification")

// Notification is a persisted message in a user's inbox. Delivery is
// pull-based: clients poll their inbox and unread count.
type Notification struct {
	id             kernel.UUID
	userID         kernel.UUID
	notifType      Type
	relatedOrderID kernel.UUID
	message        string
	isRead         bool
	createdAt      time.Time

	isConstructed bool
}

// NewNotification creates an unread notification addressed to a user.
func NewNotification(
	id kernel.UUID,
	userID kernel.UUID,
	notifType Type,
	relatedOrderID kernel.UUID,
	message string,
	createdAt time.Time,
) (*Notification, error) {
	return RestoreNotification(id, userID, notifType, relatedOrderID, message, false, createdAt)
}

// RestoreNotification reconstructs a notification from persistent storage.
func RestoreNotification(
	id kernel.UUID,
	userID kernel.UUID,
	notifType Type,
	relatedOrderID kernel.UUID,
	message string,
	isRead bool,
	createdAt time.Time,
) (*Notification, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		notifType.Validate(),
		relatedOrderID.Validate(),
	); err != nil {
		return nil, err
	}
	if message == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Notification{
		id:             id,
		userID:         userID,
		notifType:      notifType,
		relatedOrderID: relatedOrderID,
		message:        message,
		isRead:         isRead,
		createdAt:      createdAt.UTC(),
		isConstructed:  true,
	}, nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// UserID returns the addressee of the notification.
func (n *Notification) UserID() kernel.UUID {
	return n.userID
}

// Type returns the notification's type.
func (n *Notification) Type() Type {
	return n.notifType
}

// RelatedOrderID returns the order the notification refers to.
func (n *Notification) RelatedOrderID() kernel.UUID {
	return n.relatedOrderID
}

// Message returns the human-readable notification text.
func (n *Notification) Message() string {
	return n.message
}

// IsRead reports whether the user has read the notification.
func (n *Notification) IsRead() bool {
	return n.isRead
}

// CreatedAt returns when the notification was dispatched.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead flags the notification as read.
func (n *Notification) MarkRead() {
	n.isRead = true
}

// Validate ensures the Notification was created through a constructor.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}
