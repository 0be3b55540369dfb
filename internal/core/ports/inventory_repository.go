package ports

import (
	"context"

	"medmarket/internal/core/domain/model/inventory"
	"medmarket/internal/core/domain/model/kernel"
)

// InventoryRepository persists pharmacy catalog records and performs the
// atomic stock deduction that backs order fulfillment.
type InventoryRepository interface {
	// Add stores a new catalog record.
	Add(ctx context.Context, record *inventory.Record) error

	// Update rewrites an existing catalog record.
	Update(ctx context.Context, record *inventory.Record) error

	// Remove deletes a pharmacy's listing of a medicine.
	Remove(ctx context.Context, medicineID, pharmacyID kernel.UUID) error

	// Get loads one record by its (medicine, pharmacy) identity.
	// Returns ObjectNotFoundError when absent.
	Get(ctx context.Context, medicineID, pharmacyID kernel.UUID) (*inventory.Record, error)

	// GetByPharmacy loads every record of one pharmacy's catalog.
	GetByPharmacy(ctx context.Context, pharmacyID kernel.UUID) ([]*inventory.Record, error)

	// DecrementStockBatch deducts every demand from the pharmacy's stock or
	// none of them. Each row is written with a stock >= quantity guard;
	// a guard that matches no row fails the whole batch so the enclosing
	// transaction rolls back. Demands must be pre-merged, one per medicine.
	//
	// Returns InsufficientStockError naming every short medicine when the
	// pre-check already sees a shortfall, ObjectNotFoundError when a
	// medicine is not in the pharmacy's catalog, and
	// ConcurrencyConflictError when a concurrent order won the race between
	// pre-check and write.
	DecrementStockBatch(ctx context.Context, pharmacyID kernel.UUID, demands []inventory.StockDemand) error
}
