package commands

import (
	"errors"
	"time"

	"portal/internal/pkg/errs"
	"portal/internal/pkg/guard"
)

var ErrPurgeReadNotificationsCommandIsNotConstructed = errors.New(
	"PurgeReadNotificationsCommand must be created via NewPurgeReadNotificationsCommand constructor",
)

// PurgeReadNotificationsCommand represents a maintenance request to delete
// read notifications older than the cutoff.
type PurgeReadNotificationsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewPurgeReadNotificationsCommand creates a purge command with the given
// retention cutoff.
func NewPurgeReadNotificationsCommand(cutoff time.Time) (PurgeReadNotificationsCommand, error) {
	cmd := PurgeReadNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCutoff(cutoff); err != nil {
		return PurgeReadNotificationsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeReadNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeReadNotificationsCommandIsNotConstructed)
}

// Cutoff returns the retention cutoff; read notifications created before it
// are removed.
func (c PurgeReadNotificationsCommand) Cutoff() time.Time {
	return c.cutoff
}

func (c *PurgeReadNotificationsCommand) setCutoff(cutoff time.Time) error {
	if cutoff.IsZero() {
		return errs.NewValueIsRequiredError("cutoff")
	}

	c.cutoff = cutoff
	return nil
}
