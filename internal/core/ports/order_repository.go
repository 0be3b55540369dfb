package ports

import (
	"context"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates.
//
// Update takes the status the caller read before mutating the aggregate and
// writes only if the stored row still carries it; a stale status fails with
// ConcurrencyConflictError and the caller re-fetches and retries. This is
// what keeps two actors from racing the same order through different
// transitions.
type OrderRepository interface {
	// Add stores a freshly placed order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update rewrites the order if its stored status still equals
	// expectedStatus. Returns ConcurrencyConflictError otherwise.
	Update(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get loads an order by ID. Returns ObjectNotFoundError when absent.
	Get(ctx context.Context, orderID kernel.UUID) (*order.Order, error)

	// GetAllActiveWithCourier loads every order currently occupying a
	// courier (pending_acceptance, assigned, picked_up, out_for_delivery).
	GetAllActiveWithCourier(ctx context.Context) ([]*order.Order, error)
}
