package ports

import (
	"context"
	"time"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"
)

// OrderEvent describes one order status change for interested parties
// (patient apps, pharmacy dashboards, courier devices).
type OrderEvent struct {
	OrderID     kernel.UUID
	OrderNumber string
	Status      order.Status
	ActorID     kernel.UUID
	Note        string
	OccurredAt  time.Time
}

// NotificationPublisher pushes order events to a side channel. Publishing is
// best-effort: handlers commit the transaction first and ignore publish
// errors, so a notification outage never fails an order operation.
type NotificationPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}
