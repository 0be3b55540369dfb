package inventory

import (
	"errors"
	"fmt"
	"strings"

	"medmarket/internal/core/domain/model/kernel"
)

// ErrInsufficientStock is the sentinel for stock that cannot cover an order.
var ErrInsufficientStock = errors.New("insufficient stock")

// ShortItem names one medicine whose stock cannot cover the requested
// quantity.
type ShortItem struct {
	MedicineID kernel.UUID
	Name       string
	Required   int
	Available  int
}

// InsufficientStockError reports every medicine of an order that stock could
// not cover, so the patient sees the complete shortfall in one response
// instead of discovering it medicine by medicine.
type InsufficientStockError struct {
	Items []ShortItem
}

// NewInsufficientStockError creates an error listing all short medicines.
func NewInsufficientStockError(items []ShortItem) *InsufficientStockError {
	return &InsufficientStockError{Items: items}
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		parts = append(parts, fmt.Sprintf("%s: required %d, available %d",
			item.Name, item.Required, item.Available))
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientStock, strings.Join(parts, "; "))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
