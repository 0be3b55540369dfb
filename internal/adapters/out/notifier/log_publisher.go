// Package notifier implements the notification side channel. The log
// publisher writes events to structured logs; a push transport can replace it
// behind the same port without touching the handlers.
package notifier

import (
	"context"
	"log/slog"

	"medmarket/internal/core/ports"
)

// LogPublisher emits order events as structured log records.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher writing to the given logger. A nil
// logger falls back to slog.Default().
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "notifier")}
}

// PublishOrderEvent logs the event. It never fails; the error return exists
// only to satisfy the port.
func (p *LogPublisher) PublishOrderEvent(ctx context.Context, event ports.OrderEvent) error {
	p.logger.InfoContext(ctx, "order event",
		"order_id", event.OrderID.String(),
		"order_number", event.OrderNumber,
		"status", event.Status.String(),
		"actor_id", event.ActorID.String(),
		"note", event.Note,
		"occurred_at", event.OccurredAt,
	)
	return nil
}
