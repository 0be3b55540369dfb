package jobs

import (
	"context"
	"log/slog"
	"time"

	"medmarket/internal/core/application/usecases/queries"
	"medmarket/internal/core/domain/model/order"
	"medmarket/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// acceptanceReminderSchedule re-notifies couriers once a minute. Offers have
// no timeout and no automatic reassignment; the reminder is a nudge, nothing
// more.
const acceptanceReminderSchedule = "0 * * * * *"

// AcceptanceReminderJob periodically re-publishes a notification for every
// order stuck in pending_acceptance, so couriers sitting on an offer keep
// hearing about it.
type AcceptanceReminderJob struct {
	handler   queries.GetPendingAcceptanceOrdersQueryHandler
	publisher ports.NotificationPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewAcceptanceReminderJob creates a job that nudges couriers about
// unanswered delivery offers.
func NewAcceptanceReminderJob(
	handler queries.GetPendingAcceptanceOrdersQueryHandler,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) *AcceptanceReminderJob {
	return &AcceptanceReminderJob{
		handler:   handler,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "acceptance_reminder_job"),
	}
}

// Start begins the reminder job.
func (j *AcceptanceReminderJob) Start() error {
	_, err := j.cron.AddFunc(acceptanceReminderSchedule, func() {
		ctx := context.Background()

		offers, err := j.handler.Handle(ctx, queries.NewGetPendingAcceptanceOrdersQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Acceptance reminder job failed", "error", err)
			return
		}

		for _, offer := range offers {
			event := ports.OrderEvent{
				OrderID:     offer.OrderID,
				OrderNumber: offer.OrderNumber,
				Status:      order.PendingAcceptance,
				ActorID:     offer.CourierID,
				Note:        "delivery offer awaiting response",
				OccurredAt:  time.Now(),
			}
			if err = j.publisher.PublishOrderEvent(ctx, event); err != nil {
				j.logger.WarnContext(ctx, "Reminder notification failed",
					"order_id", offer.OrderID.String(), "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Acceptance reminder job started (running every minute)")
	return nil
}

// Stop stops the reminder job.
func (j *AcceptanceReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Acceptance reminder job stopped")
}
