package commands

import (
	"errors"
	"fmt"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"
	"medmarket/internal/pkg/errs"
	"medmarket/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
)

// OrderLine is one requested medicine with its quantity, as submitted by the
// patient. Prices are not part of the request: the handler snapshots them
// from the pharmacy's catalog.
type OrderLine struct {
	MedicineID kernel.UUID
	Quantity   int
}

// PlaceOrderCommand represents a patient's request to order medicines from
// one pharmacy.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), patientID, pharmacyID,
//	    lines, address, order.PaymentCashOnDelivery, "rx-2025-0042")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	patientID       kernel.UUID
	pharmacyID      kernel.UUID
	lines           []OrderLine
	address         kernel.Address
	paymentMethod   order.PaymentMethod
	prescriptionRef string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place an order. All identities,
// at least one line with a positive quantity, a delivery address, a payment
// method and a prescription reference are required.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	patientID kernel.UUID,
	pharmacyID kernel.UUID,
	lines []OrderLine,
	address kernel.Address,
	paymentMethod order.PaymentMethod,
	prescriptionRef string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPatientID(patientID),
		cmd.setPharmacyID(pharmacyID),
		cmd.setLines(lines),
		cmd.setAddress(address),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setPrescriptionRef(prescriptionRef),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identity assigned to the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID { return c.orderID }

// PatientID returns the patient placing the order.
func (c PlaceOrderCommand) PatientID() kernel.UUID { return c.patientID }

// PharmacyID returns the pharmacy to order from.
func (c PlaceOrderCommand) PharmacyID() kernel.UUID { return c.pharmacyID }

// Lines returns the requested medicines.
func (c PlaceOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Address returns the delivery destination.
func (c PlaceOrderCommand) Address() kernel.Address { return c.address }

// PaymentMethod returns the chosen payment method.
func (c PlaceOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

// PrescriptionRef returns the reference to the uploaded prescription.
func (c PlaceOrderCommand) PrescriptionRef() string { return c.prescriptionRef }

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setPatientID(patientID kernel.UUID) error {
	if err := patientID.Validate(); err != nil {
		return err
	}
	c.patientID = patientID
	return nil
}

func (c *PlaceOrderCommand) setPharmacyID(pharmacyID kernel.UUID) error {
	if err := pharmacyID.Validate(); err != nil {
		return err
	}
	c.pharmacyID = pharmacyID
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}
	for _, line := range lines {
		if err := line.MedicineID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("quantity must be positive, got %d", line.Quantity))
		}
	}
	c.lines = lines
	return nil
}

func (c *PlaceOrderCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *PlaceOrderCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}
	c.paymentMethod = paymentMethod
	return nil
}

func (c *PlaceOrderCommand) setPrescriptionRef(prescriptionRef string) error {
	if prescriptionRef == "" {
		return errs.NewValueIsRequiredError("prescriptionRef")
	}
	c.prescriptionRef = prescriptionRef
	return nil
}
