package queries

import (
	"context"
	"database/sql"
	"errors"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStockQueryHandler reads pharmacy listings.
type GetStockQueryHandler struct {
	db *gorm.DB
}

// NewGetStockQueryHandler creates a handler for stock lookups.
func NewGetStockQueryHandler(db *gorm.DB) GetStockQueryHandler {
	return GetStockQueryHandler{db: db}
}

// Handle executes the stock lookup. Returns ObjectNotFoundError when the
// pharmacy does not list the medicine.
func (h GetStockQueryHandler) Handle(ctx context.Context, query GetStockQuery) (StockInfo, error) {
	if err := query.Validate(); err != nil {
		return StockInfo{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			medicine_id,
			name,
			price,
			discount,
			price * (1 - discount / 100) AS final_price,
			stock,
			available
		FROM medicines
		WHERE medicine_id = ? AND pharmacy_id = ?
	`, query.MedicineID().Bytes(), query.PharmacyID().Bytes()).Row()

	var (
		id   uuid.UUID
		info StockInfo
	)
	err := row.Scan(&id, &info.Name, &info.Price, &info.Discount, &info.FinalPrice, &info.Stock, &info.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return StockInfo{}, errs.NewObjectNotFoundError("medicineID", query.MedicineID())
	}
	if err != nil {
		return StockInfo{}, err
	}

	medicineID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return StockInfo{}, err
	}
	info.MedicineID = medicineID

	return info, nil
}
