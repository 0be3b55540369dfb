package commands

import (
	"errors"
	"fmt"
	"time"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/errs"
	"medmarket/internal/pkg/guard"
)

var ErrUpdateMedicineCommandIsNotConstructed = errors.New(
	"UpdateMedicineCommand must be created via NewUpdateMedicineCommand constructor",
)

// UpdateMedicineCommand represents a pharmacy rewriting one of its catalog
// listings: price, stock, discount, availability and batch details.
type UpdateMedicineCommand struct { //nolint:recvcheck //using for validation
	medicineID  kernel.UUID
	actor       kernel.Actor
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

// NewUpdateMedicineCommand creates a command to rewrite a listing.
func NewUpdateMedicineCommand(
	medicineID kernel.UUID,
	actor kernel.Actor,
	name string,
	genericName string,
	price float64,
	stock int,
	discount float64,
	available bool,
	expiryDate time.Time,
	batchNumber string,
) (UpdateMedicineCommand, error) {
	cmd := UpdateMedicineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMedicineID(medicineID),
		cmd.setActor(actor),
		cmd.setListing(name, price, stock, discount),
	); err != nil {
		return UpdateMedicineCommand{}, err
	}
	cmd.genericName = genericName
	cmd.available = available
	cmd.expiryDate = expiryDate
	cmd.batchNumber = batchNumber

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateMedicineCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMedicineCommandIsNotConstructed)
}

// MedicineID returns the listing to rewrite.
func (c UpdateMedicineCommand) MedicineID() kernel.UUID { return c.medicineID }

// Actor returns the pharmacy rewriting the listing.
func (c UpdateMedicineCommand) Actor() kernel.Actor { return c.actor }

// Name returns the brand name.
func (c UpdateMedicineCommand) Name() string { return c.name }

// GenericName returns the generic name, possibly empty.
func (c UpdateMedicineCommand) GenericName() string { return c.genericName }

// Price returns the undiscounted unit price.
func (c UpdateMedicineCommand) Price() float64 { return c.price }

// Stock returns the new stock level.
func (c UpdateMedicineCommand) Stock() int { return c.stock }

// Discount returns the discount percentage.
func (c UpdateMedicineCommand) Discount() float64 { return c.discount }

// Available reports whether the listing stays orderable.
func (c UpdateMedicineCommand) Available() bool { return c.available }

// ExpiryDate returns the batch expiry.
func (c UpdateMedicineCommand) ExpiryDate() time.Time { return c.expiryDate }

// BatchNumber returns the batch identifier, possibly empty.
func (c UpdateMedicineCommand) BatchNumber() string { return c.batchNumber }

func (c *UpdateMedicineCommand) setMedicineID(medicineID kernel.UUID) error {
	if err := medicineID.Validate(); err != nil {
		return err
	}
	c.medicineID = medicineID
	return nil
}

func (c *UpdateMedicineCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RolePharmacy {
		return errs.NewAuthorizationError(actor.Role().String(), "manage a pharmacy catalog")
	}
	c.actor = actor
	return nil
}

func (c *UpdateMedicineCommand) setListing(name string, price float64, stock int, discount float64) error {
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

	c.name = name
	c.price = price
	c.stock = stock
	c.discount = discount
	return nil
}
