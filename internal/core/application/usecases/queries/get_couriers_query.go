package queries

import (
	"errors"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/guard"
)

var ErrGetCouriersQueryIsNotConstructed = errors.New(
	"GetCouriersQuery must be created via NewGetCouriersQuery constructor",
)

// GetCouriersQuery retrieves every registered courier together with a busy
// flag. Busy-ness is computed from the orders table at read time, never
// stored, so the flag cannot drift from reality.
type GetCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCouriersQuery creates a query to list couriers.
func NewGetCouriersQuery() GetCouriersQuery {
	return GetCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetCouriersQueryIsNotConstructed)
}

// CourierSummary is one row of the courier listing. IsBusy reports whether
// the courier currently holds an order in an active delivery status.
type CourierSummary struct {
	ID     kernel.UUID
	Name   string
	Phone  string
	IsBusy bool
}
