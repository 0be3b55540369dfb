package commands

import (
	"context"

	"medmarket/internal/core/domain/model/inventory"
)

// AddMedicineCommandHandler lists new medicines in a pharmacy's catalog.
type AddMedicineCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewAddMedicineCommandHandler creates a handler for catalog additions.
func NewAddMedicineCommandHandler(uowFactory InventoryUoWFactory) AddMedicineCommandHandler {
	return AddMedicineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the listing command.
func (h *AddMedicineCommandHandler) Handle(ctx context.Context, cmd AddMedicineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	record, err := inventory.NewRecord(
		cmd.MedicineID(), cmd.Actor().ID(),
		cmd.Name(), cmd.GenericName(),
		cmd.Price(), cmd.Stock(), cmd.Discount(),
		cmd.ExpiryDate(), cmd.BatchNumber(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.InventoryRepository().Add(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
