package order

import (
	"fmt"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/errs"
	"medmarket/internal/pkg/guard"
)

// ErrItemIsNotConstructed indicates a zero-value Item that bypassed NewItem.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("Item must be created via NewItem")

// Item is one order line: a medicine, the quantity ordered and the price
// terms captured at placement time. Prices are snapshotted from the
// pharmacy's catalog when the order is placed and never change afterwards,
// even if the catalog does.
type Item struct {
	medicineID kernel.UUID
	name       string
	quantity   int
	price      float64
	discount   float64
	finalPrice float64

	guard guard.ConstructorGuard
}

// NewItem creates an order line from the current catalog terms of a medicine.
// The effective unit price is derived here: price reduced by the discount
// percentage.
func NewItem(medicineID kernel.UUID, name string, quantity int, price float64, discount float64) (Item, error) {
	if err := medicineID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("name")
	}
	if quantity < 1 || quantity > maxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}
	if price < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("price must not be negative, got %v", price))
	}
	if discount < 0 || discount > 100 {
		return Item{}, errs.NewValueIsOutOfRangeError("discount", discount, 0, 100)
	}

	return Item{
		medicineID: medicineID,
		name:       name,
		quantity:   quantity,
		price:      price,
		discount:   discount,
		finalPrice: price * (1 - discount/100),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// maxItemQuantity bounds a single order line. Larger orders are split by the
// caller; the bound keeps a mistyped quantity from draining a pharmacy's stock.
const maxItemQuantity = 1000

// RestoreItem recreates an order line from storage, trusting the persisted
// final price rather than recomputing it.
func RestoreItem(medicineID kernel.UUID, name string, quantity int, price, discount, finalPrice float64) Item {
	return Item{
		medicineID: medicineID,
		name:       name,
		quantity:   quantity,
		price:      price,
		discount:   discount,
		finalPrice: finalPrice,
		guard:      guard.NewConstructorGuard(),
	}
}

// MedicineID returns the catalog identity of the ordered medicine.
func (i Item) MedicineID() kernel.UUID { return i.medicineID }

// Name returns the medicine name captured at placement time.
func (i Item) Name() string { return i.name }

// Quantity returns the number of units ordered.
func (i Item) Quantity() int { return i.quantity }

// Price returns the undiscounted unit price at placement time.
func (i Item) Price() float64 { return i.price }

// Discount returns the discount percentage (0..100) at placement time.
func (i Item) Discount() float64 { return i.discount }

// FinalPrice returns the effective unit price after discount.
func (i Item) FinalPrice() float64 { return i.finalPrice }

// LineTotal returns the effective price of the whole line.
func (i Item) LineTotal() float64 { return i.finalPrice * float64(i.quantity) }

// Validate ensures the item was created through NewItem or RestoreItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}
