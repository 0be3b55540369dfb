package queries

import (
	"context"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingAcceptanceOrdersQueryHandler reads unanswered delivery offers.
type GetPendingAcceptanceOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingAcceptanceOrdersQueryHandler creates a handler for the query.
func NewGetPendingAcceptanceOrdersQueryHandler(db *gorm.DB) GetPendingAcceptanceOrdersQueryHandler {
	return GetPendingAcceptanceOrdersQueryHandler{db: db}
}

// Handle executes the query. Orders without a courier cannot be in
// pending_acceptance, so courier_id is never null here.
func (h GetPendingAcceptanceOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingAcceptanceOrdersQuery,
) ([]PendingAcceptanceOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	offers := make([]PendingAcceptanceOrder, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			courier_id,
			created_at
		FROM orders
		WHERE status = ? AND courier_id IS NOT NULL
		ORDER BY created_at
	`, order.PendingAcceptance).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			courierID uuid.UUID
			offer     PendingAcceptanceOrder
		)

		if err = rows.Scan(&id, &offer.OrderNumber, &courierID, &offer.CreatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		cID, idErr := kernel.UUIDFromBytes(courierID[:])
		if idErr != nil {
			return nil, idErr
		}
		offer.OrderID = orderID
		offer.CourierID = cID

		offers = append(offers, offer)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}
