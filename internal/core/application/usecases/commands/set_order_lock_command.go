package commands

import (
	"errors"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/pkg/guard"
)

var ErrSetOrderLockCommandIsNotConstructed = errors.New(
	"SetOrderLockCommand must be created via NewSetOrderLockCommand constructor",
)

// SetOrderLockCommand represents the back office toggling the explicit edit
// lock of an order.
type SetOrderLockCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	locked  bool

	guard guard.ConstructorGuard
}

// NewSetOrderLockCommand creates a command to lock or unlock an order.
func NewSetOrderLockCommand(orderID kernel.UUID, locked bool) (SetOrderLockCommand, error) {
	cmd := SetOrderLockCommand{
		locked: locked,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return SetOrderLockCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetOrderLockCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderLockCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being locked or unlocked.
func (c SetOrderLockCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Locked returns the target lock state.
func (c SetOrderLockCommand) Locked() bool {
	return c.locked
}

func (c *SetOrderLockCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
