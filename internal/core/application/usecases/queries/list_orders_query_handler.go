package queries

import (
	"context"
	"fmt"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order listings from the database.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query scoped to the actor's role.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var scopeColumn string
	switch query.Actor().Role() {
	case kernel.RolePatient:
		scopeColumn = "patient_id"
	case kernel.RolePharmacy:
		scopeColumn = "pharmacy_id"
	case kernel.RoleCourier:
		scopeColumn = "courier_id"
	default:
		return nil, fmt.Errorf("unsupported role %q", query.Actor().Role())
	}

	sql := `
		SELECT
			id,
			order_number,
			status,
			total,
			courier_id,
			created_at
		FROM orders
		WHERE ` + scopeColumn + ` = ?`
	args := []any{query.Actor().ID().Bytes()}

	if query.Status() != nil {
		sql += ` AND status = ?`
		args = append(args, *query.Status())
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0)

	for rows.Next() {
		var (
			id        uuid.UUID
			number    string
			status    int
			total     float64
			courierID *uuid.UUID
		)
		summary := OrderSummary{}

		if err = rows.Scan(&id, &number, &status, &total, &courierID, &summary.CreatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		summary.ID = orderID
		summary.OrderNumber = number
		summary.Status = order.Status(status)
		summary.Total = total

		if courierID != nil {
			cID, cErr := kernel.UUIDFromBytes(courierID[:])
			if cErr != nil {
				return nil, cErr
			}
			summary.CourierID = &cID
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
