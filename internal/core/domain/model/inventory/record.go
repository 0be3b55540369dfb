package inventory

import (
	"fmt"
	"time"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/errs"
	"medmarket/internal/pkg/guard"
)

// ErrRecordIsNotConstructed indicates a zero-value Record that bypassed the constructor.
var ErrRecordIsNotConstructed = errs.NewValueIsRequiredError("Record must be created via NewRecord or RestoreRecord")

// Record is one medicine in a pharmacy's catalog together with its stock
// level. The (medicineID, pharmacyID) pair is the identity: the same medicine
// listed by two pharmacies is two independent records with independent stock.
//
// Stock decrements race with each other across orders; the persistence layer
// resolves the race with a conditional update. The Decrement method here
// carries the same never-below-zero rule for in-memory use.
type Record struct {
	medicineID  kernel.UUID
	pharmacyID  kernel.UUID
	name        string
	genericName string
	price       float64
	stock       int
	discount    float64
	available   bool
	expiryDate  time.Time
	batchNumber string

	guard guard.ConstructorGuard
}

// NewRecord creates a catalog record for a pharmacy's medicine listing.
func NewRecord(
	medicineID kernel.UUID,
	pharmacyID kernel.UUID,
	name string,
	genericName string,
	price float64,
	stock int,
	discount float64,
	expiryDate time.Time,
	batchNumber string,
) (*Record, error) {
	if err := medicineID.Validate(); err != nil {
		return nil, err
	}
	if err := pharmacyID.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if price < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("price must not be negative, got %v", price))
	}
	if stock < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("stock must not be negative, got %d", stock))
	}
	if discount < 0 || discount > 100 {
		return nil, errs.NewValueIsOutOfRangeError("discount", discount, 0, 100)
	}

	return &Record{
		medicineID:  medicineID,
		pharmacyID:  pharmacyID,
		name:        name,
		genericName: genericName,
		price:       price,
		stock:       stock,
		discount:    discount,
		available:   true,
		expiryDate:  expiryDate,
		batchNumber: batchNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreRecord recreates a catalog record from storage.
func RestoreRecord(
	medicineID kernel.UUID,
	pharmacyID kernel.UUID,
	name string,
	genericName string,
	price float64,
	stock int,
	discount float64,
	available bool,
	expiryDate time.Time,
	batchNumber string,
) *Record {
	return &Record{
		medicineID:  medicineID,
		pharmacyID:  pharmacyID,
		name:        name,
		genericName: genericName,
		price:       price,
		stock:       stock,
		discount:    discount,
		available:   available,
		expiryDate:  expiryDate,
		batchNumber: batchNumber,
		guard:       guard.NewConstructorGuard(),
	}
}

// UpdateListing replaces the mutable catalog attributes of the record.
// Identity (medicineID, pharmacyID) never changes.
func (r *Record) UpdateListing(name, genericName string, price float64, stock int, discount float64, available bool, expiryDate time.Time, batchNumber string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("price must not be negative, got %v", price))
	}
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("stock must not be negative, got %d", stock))
	}
	if discount < 0 || discount > 100 {
		return errs.NewValueIsOutOfRangeError("discount", discount, 0, 100)
	}

	r.name = name
	r.genericName = genericName
	r.price = price
	r.stock = stock
	r.discount = discount
	r.available = available
	r.expiryDate = expiryDate
	r.batchNumber = batchNumber

	return nil
}

// Decrement removes quantity units from stock. It fails without changing the
// record when the stock cannot cover the quantity; stock never goes negative.
func (r *Record) Decrement(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("decrement quantity must be positive, got %d", quantity))
	}
	if r.stock < quantity {
		return NewInsufficientStockError([]ShortItem{{
			MedicineID: r.medicineID,
			Name:       r.name,
			Required:   quantity,
			Available:  r.stock,
		}})
	}

	r.stock -= quantity
	return nil
}

// FinalPrice returns the effective unit price after discount.
func (r *Record) FinalPrice() float64 {
	return r.price * (1 - r.discount/100)
}

// CanFulfill reports whether the record is orderable for the given quantity:
// listed as available and holding enough stock.
func (r *Record) CanFulfill(quantity int) bool {
	return r.available && r.stock >= quantity
}

// MedicineID returns the medicine identity.
func (r *Record) MedicineID() kernel.UUID { return r.medicineID }

// PharmacyID returns the pharmacy listing this medicine.
func (r *Record) PharmacyID() kernel.UUID { return r.pharmacyID }

// Name returns the brand name of the medicine.
func (r *Record) Name() string { return r.name }

// GenericName returns the generic (chemical) name, possibly empty.
func (r *Record) GenericName() string { return r.genericName }

// Price returns the undiscounted unit price.
func (r *Record) Price() float64 { return r.price }

// Stock returns the units currently on hand.
func (r *Record) Stock() int { return r.stock }

// Discount returns the discount percentage (0..100).
func (r *Record) Discount() float64 { return r.discount }

// Available reports whether the pharmacy currently lists the medicine for sale.
func (r *Record) Available() bool { return r.available }

// ExpiryDate returns the expiry of the current batch.
func (r *Record) ExpiryDate() time.Time { return r.expiryDate }

// BatchNumber returns the batch identifier of the current stock.
func (r *Record) BatchNumber() string { return r.batchNumber }

// IsEqual compares records by their (medicineID, pharmacyID) identity.
func (r *Record) IsEqual(other *Record) bool {
	if other == nil {
		return false
	}
	return r.medicineID.IsEqual(other.medicineID) && r.pharmacyID.IsEqual(other.pharmacyID)
}

// Validate ensures the record was created through a constructor.
func (r *Record) Validate() error {
	return r.guard.Validate(ErrRecordIsNotConstructed)
}
