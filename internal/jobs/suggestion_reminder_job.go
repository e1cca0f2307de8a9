package jobs

import (
	"context"
	"log/slog"
	"time"

	"portal/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// reminderAge is how long an order may sit in a pending review status before
// the reviewing side is reminded.
const reminderAge = 48 * time.Hour

// SuggestionReminderJob re-notifies the reviewing side of orders whose date
// suggestion has been waiting too long for a response.
type SuggestionReminderJob struct {
	handler commands.RemindPendingSuggestionsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSuggestionReminderJob creates the reminder job.
func NewSuggestionReminderJob(
	handler commands.RemindPendingSuggestionsCommandHandler,
	logger *slog.Logger,
) *SuggestionReminderJob {
	return &SuggestionReminderJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "suggestion_reminder_job"),
	}
}

// Start schedules the reminder to run every six hours.
func (j *SuggestionReminderJob) Start() error {
	_, err := j.cron.AddFunc("@every 6h", func() {
		ctx := context.Background()

		cmd, err := commands.NewRemindPendingSuggestionsCommand(
			time.Now().Add(-reminderAge))
		if err != nil {
			j.logger.ErrorContext(ctx, "Suggestion reminder command invalid", "error", err)
			return
		}

		if err = j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Suggestion reminder job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Suggestion reminder job started (running every 6h)")
	return nil
}

// Stop stops the reminder job.
func (j *SuggestionReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Suggestion reminder job stopped")
}
