package commands

import (
	"context"
)

// UpdateMedicineCommandHandler rewrites catalog listings. Ownership is
// enforced by scoping the lookup to the acting pharmacy: a listing of
// another pharmacy simply does not exist from this actor's point of view.
type UpdateMedicineCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewUpdateMedicineCommandHandler creates a handler for catalog updates.
func NewUpdateMedicineCommandHandler(uowFactory InventoryUoWFactory) UpdateMedicineCommandHandler {
	return UpdateMedicineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the listing update.
func (h *UpdateMedicineCommandHandler) Handle(ctx context.Context, cmd UpdateMedicineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inventoryRepo := uow.InventoryRepository()

	record, err := inventoryRepo.Get(ctx, cmd.MedicineID(), cmd.Actor().ID())
	if err != nil {
		return err
	}

	if err = record.UpdateListing(
		cmd.Name(), cmd.GenericName(),
		cmd.Price(), cmd.Stock(), cmd.Discount(), cmd.Available(),
		cmd.ExpiryDate(), cmd.BatchNumber(),
	); err != nil {
		return err
	}

	if err = inventoryRepo.Update(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
