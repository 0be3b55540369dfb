package order

import (
	"fmt"

	"medmarket/internal/pkg/errs"
)

// PaymentMethod is how the patient pays for the order. Payment processing
// itself happens outside this service; the order only records the choice.
type PaymentMethod int

const (
	// PaymentUnknown represents an invalid or undefined payment method.
	PaymentUnknown PaymentMethod = iota

	// PaymentCashOnDelivery means the courier collects payment on handover.
	PaymentCashOnDelivery

	// PaymentUPI means the patient pays through a UPI transfer.
	PaymentUPI

	// PaymentCard means the patient pays by card.
	PaymentCard
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentUnknown:        "unknown",
		PaymentCashOnDelivery: "cash_on_delivery",
		PaymentUPI:            "upi",
		PaymentCard:           "card",
	}
}

// ParsePaymentMethod converts the wire representation into the enum.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if method != PaymentUnknown && str == s {
			return method, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a valid payment method", s))
}

// String returns the wire name of the payment method.
func (p PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the payment method is a member of the closed set.
func (p PaymentMethod) Validate() error {
	if p <= PaymentUnknown || p > PaymentCard {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", p))
	}
	return nil
}
