package order

import (
	"medmarket/internal/pkg/guard"
)

const (
	// taxRate is applied to the item subtotal.
	taxRate = 0.05

	// flatDeliveryFee is charged per order regardless of size or distance.
	flatDeliveryFee = 50.0
)

// Pricing is the priced breakdown of an order, computed once at placement
// from the item snapshot and stored with the order.
type Pricing struct {
	subtotal    float64
	tax         float64
	deliveryFee float64
	total       float64

	guard guard.ConstructorGuard
}

// computePricing derives the order total from the item lines:
// discounted line totals summed, plus tax on the subtotal, plus the flat
// delivery fee.
func computePricing(items []Item) Pricing {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	tax := subtotal * taxRate

	return Pricing{
		subtotal:    subtotal,
		tax:         tax,
		deliveryFee: flatDeliveryFee,
		total:       subtotal + tax + flatDeliveryFee,
		guard:       guard.NewConstructorGuard(),
	}
}

// RestorePricing recreates a pricing breakdown from storage. The persisted
// figures are trusted as-is: recomputing them from items could silently
// change a total the patient already agreed to.
func RestorePricing(subtotal, tax, deliveryFee, total float64) Pricing {
	return Pricing{
		subtotal:    subtotal,
		tax:         tax,
		deliveryFee: deliveryFee,
		total:       total,
		guard:       guard.NewConstructorGuard(),
	}
}

// Subtotal returns the sum of discounted line totals.
func (p Pricing) Subtotal() float64 { return p.subtotal }

// Tax returns the tax charged on the subtotal.
func (p Pricing) Tax() float64 { return p.tax }

// DeliveryFee returns the flat delivery charge.
func (p Pricing) DeliveryFee() float64 { return p.deliveryFee }

// Total returns the amount the patient pays.
func (p Pricing) Total() float64 { return p.total }
