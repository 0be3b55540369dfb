package ports

import "context"

// UnitOfWork groups repository work into one transaction. A handler begins
// the unit, touches any of the repositories, and commits; everything between
// Begin and Commit shares the same database transaction, so an order update
// and its stock deduction succeed or fail together.
//
// Rollback is safe to defer unconditionally: it is a no-op after a
// successful Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	InventoryRepository() InventoryRepository
	CourierRepository() CourierRepository
}

// UnitOfWorkFactory creates a fresh UnitOfWork per request. Units of work
// are single-use: one Begin/Commit cycle each.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
