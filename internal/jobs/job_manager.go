package jobs

import (
	"fmt"
	"log/slog"

	"portal/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	notificationPurgeJob  *NotificationPurgeJob
	suggestionReminderJob *SuggestionReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	purgeHandler commands.PurgeReadNotificationsCommandHandler,
	reminderHandler commands.RemindPendingSuggestionsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		notificationPurgeJob:  NewNotificationPurgeJob(purgeHandler, logger),
		suggestionReminderJob: NewSuggestionReminderJob(reminderHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationPurgeJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification purge job: %w", err)
	}

	if err := jm.suggestionReminderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.notificationPurgeJob.Stop()
		return fmt.Errorf("failed to start suggestion reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.suggestionReminderJob.Stop()
	jm.notificationPurgeJob.Stop()
}
