package kernel

import (
	"fmt"
	"strings"
	"time"

	"portal/internal/pkg/errs"
	"portal/internal/pkg/guard"
)

// TimeSlot represents the part of the day a delivery is scheduled for.
// It is a value object with a fixed set of valid members.
type TimeSlot int

const (
	// TimeSlotUnknown represents an invalid or undefined time slot.
	// This value (0) helps catch uninitialized TimeSlot values.
	TimeSlotUnknown TimeSlot = iota

	// Morning covers the first delivery window of the day.
	Morning

	// Afternoon covers the midday delivery window.
	Afternoon

	// Evening covers the last delivery window of the day.
	Evening
)

func getTimeSlotStrings() map[TimeSlot]string {
	return map[TimeSlot]string{
		TimeSlotUnknown: "unknown",
		Morning:         "morning",
		Afternoon:       "afternoon",
		Evening:         "evening",
	}
}

func getValidTimeSlotStrings() map[TimeSlot]string {
	//nolint:exhaustive // TimeSlotUnknown is intentionally excluded as it's invalid
	return map[TimeSlot]string{
		Morning:   "morning",
		Afternoon: "afternoon",
		Evening:   "evening",
	}
}

// ParseTimeSlot converts a wire string ("morning", "afternoon", "evening")
// into a TimeSlot. Returns an error for any other value.
func ParseTimeSlot(s string) (TimeSlot, error) {
	for slot, str := range getValidTimeSlotStrings() {
		if str == s {
			return slot, nil
		}
	}
	return TimeSlotUnknown, errs.NewValueIsInvalidErrorWithCause(
		"timeSlot",
		fmt.Errorf("%q is not a valid time slot", s),
	)
}

// Validate checks whether the TimeSlot is one of the valid members.
func (s TimeSlot) Validate() error {
	if _, ok := getValidTimeSlotStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"timeSlot",
			fmt.Errorf("%d is not a valid time slot", s),
		)
	}
	return nil
}

// String returns the wire name of the time slot.
// Implements fmt.Stringer and is safe on invalid values.
func (s TimeSlot) String() string {
	if str, ok := getTimeSlotStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// deliveryDateWireLayout is the date half of the wire representation.
const deliveryDateWireLayout = "2006-01-02"

// deliveryDateWireSeparator joins the date and the time slot on the wire.
const deliveryDateWireSeparator = "@"

// ErrDeliveryDateIsNotConstructed is returned when validating a zero-value
// DeliveryDate that bypassed its constructors.
var ErrDeliveryDateIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery date must be created via NewDeliveryDate or ParseDeliveryDate")

// DeliveryDate is an immutable value object pairing a calendar day with a
// TimeSlot. It is the unit the whole negotiation workflow bargains over:
// desired, suggested, and final delivery dates are all DeliveryDate values.
//
// The calendar day is normalized to midnight UTC so equality does not depend
// on the time-of-day or zone of the input.
//
// Example:
//
//	d, err := kernel.NewDeliveryDate(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), kernel.Morning)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(d) // Output: 2025-01-10@morning
type DeliveryDate struct { //nolint:recvcheck //using for validation
	day   time.Time
	slot  TimeSlot
	guard guard.ConstructorGuard
}

// NewDeliveryDate creates a DeliveryDate from a day and a time slot.
// The day must be non-zero and the slot must be a valid member.
func NewDeliveryDate(day time.Time, slot TimeSlot) (DeliveryDate, error) {
	if day.IsZero() {
		return DeliveryDate{}, errs.NewValueIsRequiredError("deliveryDate")
	}
	if err := slot.Validate(); err != nil {
		return DeliveryDate{}, err
	}

	y, m, d := day.UTC().Date()
	return DeliveryDate{
		day:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		slot:  slot,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ParseDeliveryDate decodes the wire representation "YYYY-MM-DD@slot".
// This is the single canonical codec; no other encoding of a date/slot pair
// exists in the system.
func ParseDeliveryDate(s string) (DeliveryDate, error) {
	datePart, slotPart, found := strings.Cut(s, deliveryDateWireSeparator)
	if !found {
		return DeliveryDate{}, errs.NewValueIsInvalidErrorWithCause(
			"deliveryDate",
			fmt.Errorf("%q does not match date%sslot", s, deliveryDateWireSeparator),
		)
	}

	day, err := time.ParseInLocation(deliveryDateWireLayout, datePart, time.UTC)
	if err != nil {
		return DeliveryDate{}, errs.NewValueIsInvalidErrorWithCause("deliveryDate", err)
	}

	slot, err := ParseTimeSlot(slotPart)
	if err != nil {
		return DeliveryDate{}, err
	}

	return NewDeliveryDate(day, slot)
}

// Day returns the calendar day at midnight UTC.
func (d DeliveryDate) Day() time.Time {
	return d.day
}

// Slot returns the time slot of the delivery window.
func (d DeliveryDate) Slot() TimeSlot {
	return d.slot
}

// String encodes the value in its wire representation "YYYY-MM-DD@slot".
func (d DeliveryDate) String() string {
	return d.day.Format(deliveryDateWireLayout) + deliveryDateWireSeparator + d.slot.String()
}

// IsEqual reports whether two delivery dates name the same day and slot.
func (d DeliveryDate) IsEqual(other DeliveryDate) bool {
	return d.day.Equal(other.day) && d.slot == other.slot
}

// Validate ensures the DeliveryDate was created through a constructor.
func (d DeliveryDate) Validate() error {
	return d.guard.Validate(ErrDeliveryDateIsNotConstructed)
}
