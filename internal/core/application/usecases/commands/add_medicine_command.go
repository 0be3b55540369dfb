package commands

import (
	"errors"
	"fmt"
	"time"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/errs"
	"medmarket/internal/pkg/guard"
)

var ErrAddMedicineCommandIsNotConstructed = errors.New(
	"AddMedicineCommand must be created via NewAddMedicineCommand constructor",
)

// AddMedicineCommand represents a pharmacy listing a new medicine in its
// catalog. The listing always belongs to the acting pharmacy; a pharmacy
// cannot create records in another pharmacy's catalog.
type AddMedicineCommand struct { //nolint:recvcheck //using for validation
	medicineID  kernel.UUID
	actor       kernel.Actor
	name        string
	genericName string
	price       float64
	stock       int
	discount    float64
	expiryDate  time.Time
	batchNumber string

	guard guard.ConstructorGuard
}

// NewAddMedicineCommand creates a command to list a medicine.
func NewAddMedicineCommand(
	medicineID kernel.UUID,
	actor kernel.Actor,
	name string,
	genericName string,
	price float64,
	stock int,
	discount float64,
	expiryDate time.Time,
	batchNumber string,
) (AddMedicineCommand, error) {
	cmd := AddMedicineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMedicineID(medicineID),
		cmd.setActor(actor),
		cmd.setListing(name, price, stock, discount),
	); err != nil {
		return AddMedicineCommand{}, err
	}
	cmd.genericName = genericName
	cmd.expiryDate = expiryDate
	cmd.batchNumber = batchNumber

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddMedicineCommand) Validate() error {
	return c.guard.Validate(ErrAddMedicineCommandIsNotConstructed)
}

// MedicineID returns the identity of the new listing.
func (c AddMedicineCommand) MedicineID() kernel.UUID { return c.medicineID }

// Actor returns the pharmacy creating the listing.
func (c AddMedicineCommand) Actor() kernel.Actor { return c.actor }

// Name returns the brand name.
func (c AddMedicineCommand) Name() string { return c.name }

// GenericName returns the generic name, possibly empty.
func (c AddMedicineCommand) GenericName() string { return c.genericName }

// Price returns the undiscounted unit price.
func (c AddMedicineCommand) Price() float64 { return c.price }

// Stock returns the initial stock level.
func (c AddMedicineCommand) Stock() int { return c.stock }

// Discount returns the discount percentage.
func (c AddMedicineCommand) Discount() float64 { return c.discount }

// ExpiryDate returns the batch expiry.
func (c AddMedicineCommand) ExpiryDate() time.Time { return c.expiryDate }

// BatchNumber returns the batch identifier, possibly empty.
func (c AddMedicineCommand) BatchNumber() string { return c.batchNumber }

func (c *AddMedicineCommand) setMedicineID(medicineID kernel.UUID) error {
	if err := medicineID.Validate(); err != nil {
		return err
	}
	c.medicineID = medicineID
	return nil
}

func (c *AddMedicineCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RolePharmacy {
		return errs.NewAuthorizationError(actor.Role().String(), "manage a pharmacy catalog")
	}
	c.actor = actor
	return nil
}

func (c *AddMedicineCommand) setListing(name string, price float64, stock int, discount float64) error {
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
