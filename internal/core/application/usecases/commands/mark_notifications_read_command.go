package commands

import (
	"errors"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/pkg/errs"
	"portal/internal/pkg/guard"
)

var ErrMarkNotificationsReadCommandIsNotConstructed = errors.New(
	"MarkNotificationsReadCommand must be created via NewMarkNotificationsReadCommand constructor",
)

// MarkNotificationsReadCommand represents a user's request to mark some of
// their notifications as read.
type MarkNotificationsReadCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	ids    []kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkNotificationsReadCommand creates a mark-read command for the given
// user and notification IDs.
func NewMarkNotificationsReadCommand(
	userID kernel.UUID,
	ids []kernel.UUID,
) (MarkNotificationsReadCommand, error) {
	cmd := MarkNotificationsReadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setIDs(ids),
	); err != nil {
		return MarkNotificationsReadCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationsReadCommandIsNotConstructed)
}

// UserID returns the owner of the notifications.
func (c MarkNotificationsReadCommand) UserID() kernel.UUID {
	return c.userID
}

// IDs returns the notifications to flag as read.
func (c MarkNotificationsReadCommand) IDs() []kernel.UUID {
	return c.ids
}

func (c *MarkNotificationsReadCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *MarkNotificationsReadCommand) setIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("ids")
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.ids = ids
	return nil
}
