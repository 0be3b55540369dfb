package ports

import (
	"context"

	"medmarket/internal/core/domain/model/courier"
	"medmarket/internal/core/domain/model/kernel"
)

// CourierRepository persists Courier aggregates.
type CourierRepository interface {
	// Add registers a courier.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Get loads a courier by ID. Returns ObjectNotFoundError when absent.
	Get(ctx context.Context, courierID kernel.UUID) (*courier.Courier, error)

	// GetAll loads every registered courier.
	GetAll(ctx context.Context) ([]*courier.Courier, error)
}
