package order

import (
	"fmt"

	"portal/internal/pkg/errs"
)

// Status represents the negotiation state of an order.
//
// State transitions:
//
//	New ──suggest──> PendingAdminReview ────┐
//	 │                    ▲    │            accept──> DateAccepted
//	 │  suggest           │    │                        │
//	 └──────> PendingCustomerReview ──accept────────────┤
//	                                                    │
//	 (admin force, from any non-final state) ──> DateForced
//	                                                    │
//	                              DateForced/Accepted ──┴──> Completed
//	 (customer or admin, while no final date) ──> Cancelled
//
// Status is a derived view of the negotiation; authorship of the pending
// suggestion is tracked separately on the aggregate (SuggestedBy), never
// re-derived from the status value.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// New is the initial status after checkout. No proposal beyond the
	// customer's original desired date exists yet.
	New

	// PendingAdminReview means the customer authored the pending suggestion
	// and the admin must respond.
	PendingAdminReview

	// PendingCustomerReview means the admin authored the pending suggestion
	// and the customer must respond.
	PendingCustomerReview

	// DateForced means the admin set the final date unilaterally.
	DateForced

	// DateAccepted means the responding side accepted the pending suggestion,
	// making it the final date.
	DateAccepted

	// Completed means the order was fulfilled. Terminal for negotiation.
	Completed

	// Cancelled means the order was withdrawn before a final date existed.
	// Terminal for negotiation.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:         "unknown",
		New:                   "new",
		PendingAdminReview:    "pending_admin_review",
		PendingCustomerReview: "pending_customer_review",
		DateForced:            "date_forced",
		DateAccepted:          "date_accepted",
		Completed:             "completed",
		Cancelled:             "cancelled",
	}
}

func getStatusDisplayLabels() map[Status]string {
	return map[Status]string{
		New:                   "New",
		PendingAdminReview:    "Awaiting store review",
		PendingCustomerReview: "Awaiting customer review",
		DateForced:            "Date set by store",
		DateAccepted:          "Date confirmed",
		Completed:             "Completed",
		Cancelled:             "Cancelled",
	}
}

// Validate checks if the Status value is a valid member.
func (s Status) Validate() error {
	strs := getStatusStrings()
	if _, ok := strs[s]; !ok || s == StatusUnknown {
		return newInvalidTransition("%d is not a valid status", s)
	}
	return nil
}

// ParseStatus converts the wire name of a status ("new",
// "pending_admin_review", ...) back into its value.
func ParseStatus(str string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && name == str {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", str),
	)
}

// String returns the wire name of the status.
// Implements fmt.Stringer and is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// DisplayLabel returns the human-facing badge text for the status.
// Callers render this label directly and never branch on the raw wire name.
func (s Status) DisplayLabel() string {
	if label, ok := getStatusDisplayLabels()[s]; ok {
		return label
	}
	return "Unknown"
}

// IsPendingReview reports whether the status carries a pending suggestion.
func (s Status) IsPendingReview() bool {
	return s == PendingAdminReview || s == PendingCustomerReview
}

// ValidateSuggest checks whether a new suggestion may be made from this status.
// Suggestions are closed once a date was forced or the order reached a
// terminal negotiation state.
func (s Status) ValidateSuggest() error {
	if s == DateForced || s == Completed || s == Cancelled {
		return newInvalidTransition("cannot suggest a date for a %s order", s)
	}
	return nil
}

// ValidateAccept checks whether a pending suggestion may be accepted from
// this status. Only the two pending-review states qualify.
func (s Status) ValidateAccept() error {
	if !s.IsPendingReview() {
		return newInvalidTransition("cannot accept a date for a %s order", s)
	}
	return nil
}

// ValidateForce checks whether the admin may force a final date from this
// status. Forcing is allowed anywhere short of a terminal state, including
// over an already accepted or forced date.
func (s Status) ValidateForce() error {
	if s == Completed || s == Cancelled {
		return newInvalidTransition("cannot force a date for a %s order", s)
	}
	return nil
}

// ValidateCancel checks whether the order may be cancelled from this status.
// The final-date guard is enforced separately by the aggregate.
func (s Status) ValidateCancel() error {
	if s == Cancelled || s == Completed {
		return newInvalidTransition("cannot cancel a %s order", s)
	}
	return nil
}

// ValidateItemMutation checks whether the item list may change in this status.
// The lock flag is an independent second guard enforced by the aggregate.
func (s Status) ValidateItemMutation() error {
	if s == DateForced || s == Completed || s == Cancelled {
		return newInvalidTransition("cannot modify items of a %s order", s)
	}
	return nil
}

// pendingReviewFor returns the review status produced by a suggestion
// authored by the given actor: the other side must review it.
func pendingReviewFor(author Actor) (Status, error) {
	switch author {
	case Customer:
		return PendingAdminReview, nil
	case Admin:
		return PendingCustomerReview, nil
	default:
		return StatusUnknown, newInvalidTransition("%s cannot author a suggestion", author)
	}
}

func newInvalidTransition(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}
