package commands

import (
	"context"
	"time"

	"medmarket/internal/core/domain/model/inventory"
	"medmarket/internal/core/domain/model/order"
	"medmarket/internal/core/ports"
)

// TransitionOrderStatusCommandHandler moves orders through the status
// machine and, on the first move into Ready, deducts pharmacy stock.
//
// The status update is optimistic: the order row is rewritten only if it
// still carries the status read at the start of the transaction. Stock
// deduction and the status write share one transaction, so a failed
// deduction leaves both stock and order untouched.
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderInventoryUoWFactory
	publisher  ports.NotificationPublisher
}

// NewTransitionOrderStatusCommandHandler creates a handler for status changes.
func NewTransitionOrderStatusCommandHandler(
	uowFactory OrderInventoryUoWFactory,
	publisher ports.NotificationPublisher,
) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the status change command.
func (h *TransitionOrderStatusCommandHandler) Handle(ctx context.Context, cmd TransitionOrderStatusCommand) error {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	priorStatus := aggregate.Status()

	now := time.Now()
	if err = aggregate.TransitionTo(cmd.Actor(), cmd.Target(), cmd.Note(), now); err != nil {
		return err
	}

	// Stock leaves the pharmacy on the first entry into Ready and only
	// then. Going Ready -> Confirmed -> Ready again does not deduct twice.
	if cmd.Target() == order.Ready && !aggregate.StockDeducted() {
		demands := make([]inventory.StockDemand, 0, len(aggregate.Items()))
		for _, item := range aggregate.Items() {
			demands = append(demands, inventory.StockDemand{
				MedicineID: item.MedicineID(),
				Quantity:   item.Quantity(),
			})
		}
		demands = inventory.MergeDemands(demands)

		if err = uow.InventoryRepository().DecrementStockBatch(ctx, aggregate.PharmacyID(), demands); err != nil {
			return err
		}
		if err = aggregate.MarkStockDeducted(); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate, priorStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishOrderEvent(ctx, ports.OrderEvent{
		OrderID:     aggregate.ID(),
		OrderNumber: aggregate.OrderNumber(),
		Status:      aggregate.Status(),
		ActorID:     cmd.Actor().ID(),
		Note:        cmd.Note(),
		OccurredAt:  now,
	})

	return nil
}
