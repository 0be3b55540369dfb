// Package queries contains the read side of the marketplace. Handlers run
// raw SQL against the read model and return plain response structs; they
// never load aggregates or hold transactions open.
package queries

import (
	"errors"
	"time"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"
	"medmarket/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves the orders visible to one actor, newest first.
// Visibility follows the actor's role: patients see the orders they placed,
// pharmacies the orders they fulfill, couriers the orders attached to them.
// An optional status narrows the result.
type ListOrdersQuery struct {
	actor  kernel.Actor
	status *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query scoped to the given actor. Pass a nil
// status to list every order the actor can see.
func NewListOrdersQuery(actor kernel.Actor, status *order.Status) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		actor:  actor,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns whose orders to list.
func (q ListOrdersQuery) Actor() kernel.Actor { return q.actor }

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status { return q.status }

// OrderSummary is one row of an order listing.
type OrderSummary struct {
	ID          kernel.UUID
	OrderNumber string
	Status      order.Status
	Total       float64
	CourierID   *kernel.UUID
	CreatedAt   time.Time
}
