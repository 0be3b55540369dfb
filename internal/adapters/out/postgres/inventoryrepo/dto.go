// Package inventoryrepo persists pharmacy catalog records. The medicines
// table is keyed by (medicine_id, pharmacy_id): the same medicine can be
// listed by many pharmacies at different prices and stock levels.
package inventoryrepo

import (
	"time"

	"medmarket/internal/core/domain/model/inventory"
	"medmarket/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// MedicineDTO is the medicines table row.
type MedicineDTO struct {
	MedicineID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	PharmacyID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	GenericName string
	Price       float64
	Stock       int
	Discount    float64
	Available   bool
	ExpiryDate  time.Time
	BatchNumber string
}

// TableName overrides GORM's default naming.
func (MedicineDTO) TableName() string {
	return "medicines"
}

func fromDomain(record *inventory.Record) MedicineDTO {
	return MedicineDTO{
		MedicineID:  record.MedicineID().Bytes(),
		PharmacyID:  record.PharmacyID().Bytes(),
		Name:        record.Name(),
		GenericName: record.GenericName(),
		Price:       record.Price(),
		Stock:       record.Stock(),
		Discount:    record.Discount(),
		Available:   record.Available(),
		ExpiryDate:  record.ExpiryDate(),
		BatchNumber: record.BatchNumber(),
	}
}

func toDomain(dto MedicineDTO) (*inventory.Record, error) {
	medicineID, err := kernel.UUIDFromBytes(dto.MedicineID[:])
	if err != nil {
		return nil, err
	}
	pharmacyID, err := kernel.UUIDFromBytes(dto.PharmacyID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreRecord(medicineID, pharmacyID, dto.Name, dto.GenericName,
		dto.Price, dto.Stock, dto.Discount, dto.Available, dto.ExpiryDate, dto.BatchNumber), nil
}
