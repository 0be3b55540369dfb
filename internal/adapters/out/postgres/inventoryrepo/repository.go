package inventoryrepo

import (
	"context"
	"errors"
	"fmt"

	"medmarket/internal/core/domain/model/inventory"
	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements ports.InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is implemented by the unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add stores a new catalog record.
func (r *GormInventoryRepository) Add(ctx context.Context, record *inventory.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.MedicineID(), record)
	return nil
}

// Update rewrites an existing catalog record.
func (r *GormInventoryRepository) Update(ctx context.Context, record *inventory.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).
		Where("medicine_id = ? AND pharmacy_id = ?", dto.MedicineID, dto.PharmacyID).
		Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	r.tracker.TrackAggregate(record.MedicineID(), record)
	return nil
}

// Remove deletes a pharmacy's listing of a medicine.
func (r *GormInventoryRepository) Remove(ctx context.Context, medicineID, pharmacyID kernel.UUID) error {
	if err := medicineID.Validate(); err != nil {
		return err
	}
	if err := pharmacyID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("medicine_id = ? AND pharmacy_id = ?", medicineID.Bytes(), pharmacyID.Bytes()).
		Delete(&MedicineDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("medicineID", medicineID.String())
	}

	return nil
}

// Get loads one record by its (medicine, pharmacy) identity.
func (r *GormInventoryRepository) Get(ctx context.Context, medicineID, pharmacyID kernel.UUID) (*inventory.Record, error) {
	if err := medicineID.Validate(); err != nil {
		return nil, err
	}
	if err := pharmacyID.Validate(); err != nil {
		return nil, err
	}

	var dto MedicineDTO
	err := r.db.WithContext(ctx).
		First(&dto, "medicine_id = ? AND pharmacy_id = ?", medicineID.Bytes(), pharmacyID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("medicineID", medicineID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByPharmacy loads every record of one pharmacy's catalog.
func (r *GormInventoryRepository) GetByPharmacy(ctx context.Context, pharmacyID kernel.UUID) ([]*inventory.Record, error) {
	if err := pharmacyID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MedicineDTO
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ?", pharmacyID.Bytes()).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*inventory.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, record)
	}

	return records, nil
}

// DecrementStockBatch deducts every demand or none of them. Each write
// carries a stock >= quantity guard, so a concurrent order that drained the
// stock between the pre-check and the write makes the guard miss; the caller
// rolls back the whole transaction and no partial deduction survives.
//
// Must run inside an open unit of work transaction.
func (r *GormInventoryRepository) DecrementStockBatch(ctx context.Context, pharmacyID kernel.UUID, demands []inventory.StockDemand) error {
	if err := pharmacyID.Validate(); err != nil {
		return err
	}
	if len(demands) == 0 {
		return errs.NewValueIsRequiredError("demands")
	}

	// Pre-check: report every shortfall at once rather than failing on the
	// first short medicine.
	shorts := make([]inventory.ShortItem, 0)
	for _, demand := range demands {
		record, err := r.Get(ctx, demand.MedicineID, pharmacyID)
		if err != nil {
			return err
		}
		if record.Stock() < demand.Quantity {
			shorts = append(shorts, inventory.ShortItem{
				MedicineID: demand.MedicineID,
				Name:       record.Name(),
				Required:   demand.Quantity,
				Available:  record.Stock(),
			})
		}
	}
	if len(shorts) > 0 {
		return inventory.NewInsufficientStockError(shorts)
	}

	// Demands arrive sorted by medicine ID; every transaction locks rows in
	// the same order, which rules out deadlocks between concurrent orders.
	for _, demand := range demands {
		result := r.db.WithContext(ctx).Model(&MedicineDTO{}).
			Where("medicine_id = ? AND pharmacy_id = ? AND stock >= ?",
				demand.MedicineID.Bytes(), pharmacyID.Bytes(), demand.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", demand.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewConcurrencyConflictErrorWithCause("medicineID", demand.MedicineID.String(),
				fmt.Errorf("stock changed while deducting %d units", demand.Quantity))
		}
	}

	return nil
}
