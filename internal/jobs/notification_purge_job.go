package jobs

import (
	"context"
	"log/slog"
	"time"

	"portal/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// notificationRetention is how long read notifications are kept before the
// purge removes them.
const notificationRetention = 30 * 24 * time.Hour

// NotificationPurgeJob deletes read notifications past the retention window.
// Runs hourly; unread notifications are never touched.
type NotificationPurgeJob struct {
	handler commands.PurgeReadNotificationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotificationPurgeJob creates the hourly purge job.
func NewNotificationPurgeJob(
	handler commands.PurgeReadNotificationsCommandHandler,
	logger *slog.Logger,
) *NotificationPurgeJob {
	return &NotificationPurgeJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "notification_purge_job"),
	}
}

// Start schedules the purge to run at the top of every hour.
func (j *NotificationPurgeJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		ctx := context.Background()

		cmd, err := commands.NewPurgeReadNotificationsCommand(
			time.Now().Add(-notificationRetention))
		if err != nil {
			j.logger.ErrorContext(ctx, "Notification purge command invalid", "error", err)
			return
		}

		if err = j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Notification purge job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification purge job started (running hourly)")
	return nil
}

// Stop stops the purge job.
func (j *NotificationPurgeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification purge job stopped")
}
