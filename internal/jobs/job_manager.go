package jobs

import (
	"fmt"
	"log/slog"

	"medmarket/internal/core/application/usecases/queries"
	"medmarket/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	acceptanceReminderJob *AcceptanceReminderJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	pendingAcceptanceHandler queries.GetPendingAcceptanceOrdersQueryHandler,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		acceptanceReminderJob: NewAcceptanceReminderJob(pendingAcceptanceHandler, publisher, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.acceptanceReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start acceptance reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.acceptanceReminderJob.Stop()
}
