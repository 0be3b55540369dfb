package queries

import (
	"errors"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/guard"
)

var ErrGetStockQueryIsNotConstructed = errors.New(
	"GetStockQuery must be created via NewGetStockQuery constructor",
)

// GetStockQuery retrieves one pharmacy listing: current price, discount and
// stock level. Patients use it to check availability before ordering.
type GetStockQuery struct {
	medicineID kernel.UUID
	pharmacyID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStockQuery creates a stock lookup for one (medicine, pharmacy) pair.
func NewGetStockQuery(medicineID, pharmacyID kernel.UUID) (GetStockQuery, error) {
	if err := medicineID.Validate(); err != nil {
		return GetStockQuery{}, err
	}
	if err := pharmacyID.Validate(); err != nil {
		return GetStockQuery{}, err
	}

	return GetStockQuery{
		medicineID: medicineID,
		pharmacyID: pharmacyID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStockQuery) Validate() error {
	return q.guard.Validate(ErrGetStockQueryIsNotConstructed)
}

// MedicineID returns the medicine to look up.
func (q GetStockQuery) MedicineID() kernel.UUID { return q.medicineID }

// PharmacyID returns the pharmacy whose listing to read.
func (q GetStockQuery) PharmacyID() kernel.UUID { return q.pharmacyID }

// StockInfo is the listing returned by a stock lookup. FinalPrice is the
// discounted unit price a new order would be charged.
type StockInfo struct {
	MedicineID kernel.UUID
	Name       string
	Price      float64
	Discount   float64
	FinalPrice float64
	Stock      int
	Available  bool
}
