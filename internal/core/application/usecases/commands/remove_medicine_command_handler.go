package commands

import (
	"context"
)

// RemoveMedicineCommandHandler delists medicines from pharmacy catalogs.
type RemoveMedicineCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewRemoveMedicineCommandHandler creates a handler for catalog removals.
func NewRemoveMedicineCommandHandler(uowFactory InventoryUoWFactory) RemoveMedicineCommandHandler {
	return RemoveMedicineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delisting command.
func (h *RemoveMedicineCommandHandler) Handle(ctx context.Context, cmd RemoveMedicineCommand) error {
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

	if err := uow.InventoryRepository().Remove(ctx, cmd.MedicineID(), cmd.Actor().ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
