package services

import (
	"fmt"
	"time"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/notification"
	"portal/internal/core/domain/model/order"
)

// Command is a tagged variant of the negotiation state machine. The concrete
// command types below are the only implementations.
type Command interface {
	isOrderCommand()
}

// SuggestDate proposes a delivery date to the other side.
type SuggestDate struct {
	Date kernel.DeliveryDate
}

// AcceptDate accepts the pending suggestion of the other side.
type AcceptDate struct{}

// ForceDate sets the final delivery date unilaterally (admin only).
// The optional comment is included in the customer's notification.
type ForceDate struct {
	Date    kernel.DeliveryDate
	Comment string
}

// Cancel withdraws the order before a final date exists.
type Cancel struct{}

// Lock locks the order against item and date edits (admin only).
type Lock struct{}

// Unlock lifts the explicit lock (admin only).
type Unlock struct{}

// Complete marks a date-bound order as fulfilled (admin only).
type Complete struct{}

// SoftDelete hides the order from customer-facing reads (admin only).
type SoftDelete struct{}

// Restore reverses a soft delete (admin only).
type Restore struct{}

func (SuggestDate) isOrderCommand() {}
func (AcceptDate) isOrderCommand()  {}
func (ForceDate) isOrderCommand()   {}
func (Cancel) isOrderCommand()      {}
func (Lock) isOrderCommand()        {}
func (Unlock) isOrderCommand()      {}
func (Complete) isOrderCommand()    {}
func (SoftDelete) isOrderCommand()  {}
func (Restore) isOrderCommand()     {}

// OrderStateMachine is the domain service applying actor-scoped commands to
// an Order aggregate. It validates the actor's authority, delegates the state
// guards to the aggregate, and maps each successful transition to the
// notification intents it owes the other side.
//
// The state machine is a pure function over the aggregate: it performs no
// I/O and no locking. Concurrent writers are serialized by the repository's
// optimistic version check, so a transition validated here can still lose
// the race and be re-evaluated by the caller against fresher state.
//
// Example:
//
//	sm := services.NewOrderStateMachine()
//	intents, err := sm.Transition(o, order.Admin, services.ForceDate{Date: date})
//	if err != nil {
//	    // guard failed; the aggregate is unchanged
//	}
//	// persist o, then dispatch intents
type OrderStateMachine struct {
	now func() time.Time
}

// NewOrderStateMachine creates a state machine using wall-clock time for
// cancellation and deletion timestamps.
func NewOrderStateMachine() OrderStateMachine {
	return OrderStateMachine{now: time.Now}
}

// NewOrderStateMachineWithClock creates a state machine with an injected
// clock, for tests that pin timestamps.
func NewOrderStateMachineWithClock(now func() time.Time) OrderStateMachine {
	return OrderStateMachine{now: now}
}

// Transition applies cmd to the aggregate on behalf of actor. On success the
// aggregate is mutated in place and the returned intents describe the
// notifications to dispatch after the new state is persisted. On error the
// aggregate is unchanged and no intents are owed.
func (sm OrderStateMachine) Transition(
	o *order.Order,
	actor order.Actor,
	cmd Command,
) ([]notification.Intent, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if err := sm.validateAuthority(actor, cmd); err != nil {
		return nil, err
	}

	switch c := cmd.(type) {
	case SuggestDate:
		return sm.suggestDate(o, actor, c)
	case AcceptDate:
		return sm.acceptDate(o, actor)
	case ForceDate:
		return sm.forceDate(o, c)
	case Cancel:
		return sm.cancel(o, actor)
	case Lock:
		return sm.setLock(o, true)
	case Unlock:
		return sm.setLock(o, false)
	case Complete:
		return nil, o.Complete()
	case SoftDelete:
		return nil, o.MarkDeleted(sm.now())
	case Restore:
		return nil, o.Restore()
	default:
		return nil, fmt.Errorf("%w: unsupported command %T", order.ErrInvalidTransition, cmd)
	}
}

// validateAuthority rejects admin-only commands issued by a customer.
// SuggestDate, AcceptDate, and Cancel are open to both sides.
func (sm OrderStateMachine) validateAuthority(actor order.Actor, cmd Command) error {
	switch cmd.(type) {
	case SuggestDate, AcceptDate, Cancel:
		return nil
	default:
		if actor != order.Admin {
			return fmt.Errorf("%w: %T requires the admin role", order.ErrInvalidTransition, cmd)
		}
		return nil
	}
}

func (sm OrderStateMachine) suggestDate(
	o *order.Order,
	actor order.Actor,
	cmd SuggestDate,
) ([]notification.Intent, error) {
	if err := o.SuggestDate(actor, cmd.Date); err != nil {
		return nil, err
	}

	intent, err := notification.NewIntent(
		audienceFor(actor.Other()),
		notification.DateChangeRequest,
		o.ID(),
		fmt.Sprintf("Order %s: %s proposed delivery on %s", o.OrderNumber(), actor, cmd.Date),
	)
	if err != nil {
		return nil, err
	}

	return []notification.Intent{intent}, nil
}

func (sm OrderStateMachine) acceptDate(o *order.Order, actor order.Actor) ([]notification.Intent, error) {
	if err := o.AcceptDate(actor); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Order %s: delivery confirmed for %s", o.OrderNumber(), o.FinalDate())

	intents := make([]notification.Intent, 0, 2)
	for _, audience := range []notification.Audience{
		notification.AudienceCustomer,
		notification.AudienceAdmin,
	} {
		intent, err := notification.NewIntent(audience, notification.DateAccepted, o.ID(), message)
		if err != nil {
			return nil, err
		}
		intents = append(intents, intent)
	}

	return intents, nil
}

func (sm OrderStateMachine) forceDate(o *order.Order, cmd ForceDate) ([]notification.Intent, error) {
	if err := o.ForceDate(cmd.Date); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Order %s: the store set your delivery to %s", o.OrderNumber(), cmd.Date)
	if cmd.Comment != "" {
		message += ": " + cmd.Comment
	}

	intent, err := notification.NewIntent(
		notification.AudienceCustomer,
		notification.FinalDateSet,
		o.ID(),
		message,
	)
	if err != nil {
		return nil, err
	}

	return []notification.Intent{intent}, nil
}

func (sm OrderStateMachine) cancel(o *order.Order, actor order.Actor) ([]notification.Intent, error) {
	if err := o.Cancel(sm.now()); err != nil {
		return nil, err
	}

	intent, err := notification.NewIntent(
		audienceFor(actor.Other()),
		notification.OrderCancelled,
		o.ID(),
		fmt.Sprintf("Order %s was cancelled by the %s", o.OrderNumber(), actor),
	)
	if err != nil {
		return nil, err
	}

	return []notification.Intent{intent}, nil
}

func (sm OrderStateMachine) setLock(o *order.Order, locked bool) ([]notification.Intent, error) {
	if err := o.SetLock(locked); err != nil {
		return nil, err
	}

	intentType := notification.OrderLocked
	message := fmt.Sprintf("Order %s was locked for changes", o.OrderNumber())
	if !locked {
		intentType = notification.OrderUnlocked
		message = fmt.Sprintf("Order %s was unlocked for changes", o.OrderNumber())
	}

	intent, err := notification.NewIntent(notification.AudienceCustomer, intentType, o.ID(), message)
	if err != nil {
		return nil, err
	}

	return []notification.Intent{intent}, nil
}

func audienceFor(actor order.Actor) notification.Audience {
	if actor == order.Admin {
		return notification.AudienceAdmin
	}
	return notification.AudienceCustomer
}
