package commands

import (
	"errors"
	"time"

	"portal/internal/pkg/errs"
	"portal/internal/pkg/guard"
)

var ErrRemindPendingSuggestionsCommandIsNotConstructed = errors.New(
	"RemindPendingSuggestionsCommand must be created via NewRemindPendingSuggestionsCommand constructor",
)

// RemindPendingSuggestionsCommand represents a maintenance request to nudge
// the reviewing side of every suggestion that has waited since before the
// cutoff.
type RemindPendingSuggestionsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewRemindPendingSuggestionsCommand creates a reminder command with the
// given staleness cutoff.
func NewRemindPendingSuggestionsCommand(cutoff time.Time) (RemindPendingSuggestionsCommand, error) {
	cmd := RemindPendingSuggestionsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCutoff(cutoff); err != nil {
		return RemindPendingSuggestionsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemindPendingSuggestionsCommand) Validate() error {
	return c.guard.Validate(ErrRemindPendingSuggestionsCommandIsNotConstructed)
}

// Cutoff returns the staleness cutoff; suggestions untouched since before it
// trigger a reminder.
func (c RemindPendingSuggestionsCommand) Cutoff() time.Time {
	return c.cutoff
}

func (c *RemindPendingSuggestionsCommand) setCutoff(cutoff time.Time) error {
	if cutoff.IsZero() {
		return errs.NewValueIsRequiredError("cutoff")
	}

	c.cutoff = cutoff
	return nil
}
