package commands

import (
	"errors"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/errs"
	"medmarket/internal/pkg/guard"
)

var ErrRemoveMedicineCommandIsNotConstructed = errors.New(
	"RemoveMedicineCommand must be created via NewRemoveMedicineCommand constructor",
)

// RemoveMedicineCommand represents a pharmacy delisting a medicine from its
// catalog. Orders already holding a snapshot of the medicine are unaffected.
type RemoveMedicineCommand struct { //nolint:recvcheck //using for validation
	medicineID kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewRemoveMedicineCommand creates a command to delist a medicine.
func NewRemoveMedicineCommand(medicineID kernel.UUID, actor kernel.Actor) (RemoveMedicineCommand, error) {
	cmd := RemoveMedicineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMedicineID(medicineID),
		cmd.setActor(actor),
	); err != nil {
		return RemoveMedicineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveMedicineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveMedicineCommandIsNotConstructed)
}

// MedicineID returns the listing to remove.
func (c RemoveMedicineCommand) MedicineID() kernel.UUID { return c.medicineID }

// Actor returns the pharmacy removing the listing.
func (c RemoveMedicineCommand) Actor() kernel.Actor { return c.actor }

func (c *RemoveMedicineCommand) setMedicineID(medicineID kernel.UUID) error {
	if err := medicineID.Validate(); err != nil {
		return err
	}
	c.medicineID = medicineID
	return nil
}

func (c *RemoveMedicineCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RolePharmacy {
		return errs.NewAuthorizationError(actor.Role().String(), "manage a pharmacy catalog")
	}
	c.actor = actor
	return nil
}
