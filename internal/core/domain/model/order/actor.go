package order

import (
	"fmt"

	"portal/internal/pkg/errs"
)

// Actor identifies the role performing a state transition. The legal
// transitions of an order depend on which side of the negotiation acts.
type Actor int

const (
	// ActorUnknown represents an invalid or undefined actor.
	// This value (0) also encodes "no author" for the suggestion field.
	ActorUnknown Actor = iota

	// Customer is the buyer who placed the order.
	Customer

	// Admin is a back-office operator of the store.
	Admin
)

func getActorStrings() map[Actor]string {
	return map[Actor]string{
		ActorUnknown: "unknown",
		Customer:     "customer",
		Admin:        "admin",
	}
}

func getValidActorStrings() map[Actor]string {
	//nolint:exhaustive // ActorUnknown is intentionally excluded as it's invalid
	return map[Actor]string{
		Customer: "customer",
		Admin:    "admin",
	}
}

// ParseActor converts a wire string ("customer", "admin") into an Actor.
func ParseActor(s string) (Actor, error) {
	for actor, str := range getValidActorStrings() {
		if str == s {
			return actor, nil
		}
	}
	return ActorUnknown, errs.NewValueIsInvalidErrorWithCause(
		"actor",
		fmt.Errorf("%q is not a valid actor", s),
	)
}

// Validate checks whether the Actor is one of the valid roles.
func (a Actor) Validate() error {
	if _, ok := getValidActorStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"actor",
			fmt.Errorf("%d is not a valid actor", a),
		)
	}
	return nil
}

// String returns the wire name of the actor.
// Implements fmt.Stringer and is safe on invalid values.
func (a Actor) String() string {
	if str, ok := getActorStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// Other returns the opposite side of the negotiation.
// The result is only meaningful for valid actors.
func (a Actor) Other() Actor {
	switch a {
	case Customer:
		return Admin
	case Admin:
		return Customer
	default:
		return ActorUnknown
	}
}
