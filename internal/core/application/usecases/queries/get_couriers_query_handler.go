package queries

import (
	"context"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCouriersQueryHandler reads the courier roster with live busy flags.
type GetCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetCouriersQueryHandler creates a handler for courier listings.
func NewGetCouriersQueryHandler(db *gorm.DB) GetCouriersQueryHandler {
	return GetCouriersQueryHandler{db: db}
}

// Handle executes the courier listing query. A courier is busy when any
// order attached to them sits in pending_acceptance, assigned, picked_up or
// out_for_delivery.
func (h GetCouriersQueryHandler) Handle(ctx context.Context, query GetCouriersQuery) ([]CourierSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]CourierSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.name,
			c.phone,
			EXISTS (
				SELECT 1 FROM orders o
				WHERE o.courier_id = c.id AND o.status IN (?, ?, ?, ?)
			) AS is_busy
		FROM couriers c
		ORDER BY c.name, c.id
	`, order.PendingAcceptance, order.Assigned, order.PickedUp, order.OutForDelivery).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id      uuid.UUID
			summary CourierSummary
		)

		if err = rows.Scan(&id, &summary.Name, &summary.Phone, &summary.IsBusy); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		summary.ID = courierID

		couriers = append(couriers, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
