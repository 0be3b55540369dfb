package queries

import (
	"errors"
	"time"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/guard"
)

var ErrGetPendingAcceptanceOrdersQueryIsNotConstructed = errors.New(
	"GetPendingAcceptanceOrdersQuery must be created via NewGetPendingAcceptanceOrdersQuery constructor",
)

// GetPendingAcceptanceOrdersQuery retrieves the orders stuck waiting for a
// courier's answer. The acceptance reminder job runs it periodically to
// re-notify couriers sitting on an offer.
type GetPendingAcceptanceOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingAcceptanceOrdersQuery creates the query.
func NewGetPendingAcceptanceOrdersQuery() GetPendingAcceptanceOrdersQuery {
	return GetPendingAcceptanceOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingAcceptanceOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingAcceptanceOrdersQueryIsNotConstructed)
}

// PendingAcceptanceOrder is one unanswered delivery offer.
type PendingAcceptanceOrder struct {
	OrderID     kernel.UUID
	OrderNumber string
	CourierID   kernel.UUID
	CreatedAt   time.Time
}
