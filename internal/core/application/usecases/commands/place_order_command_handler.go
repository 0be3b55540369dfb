package commands

import (
	"context"
	"fmt"
	"time"

	"medmarket/internal/core/domain/model/inventory"
	"medmarket/internal/core/domain/model/order"
	"medmarket/internal/core/ports"
)

// orderNumberPrefix starts every human-readable order number. The suffix is
// the placement time in unix milliseconds, which is unique enough for a
// single marketplace and sorts chronologically.
const orderNumberPrefix = "MEDIMART"

// PlaceOrderCommandHandler creates orders from patient requests. It checks
// catalog availability and snapshots current prices and discounts into the
// order, but does not deduct stock: deduction happens when the pharmacy
// marks the order ready.
type PlaceOrderCommandHandler struct {
	uowFactory OrderInventoryUoWFactory
	publisher  ports.NotificationPublisher
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	uowFactory OrderInventoryUoWFactory,
	publisher ports.NotificationPublisher,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order placement command.
//
// Duplicate medicine lines are merged before the availability check, so the
// check sees the total demand per medicine. If any medicine is unavailable
// or short, the whole placement fails with InsufficientStockError listing
// every shortfall.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
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

	demands := make([]inventory.StockDemand, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		demands = append(demands, inventory.StockDemand{
			MedicineID: line.MedicineID,
			Quantity:   line.Quantity,
		})
	}
	demands = inventory.MergeDemands(demands)

	inventoryRepo := uow.InventoryRepository()

	items := make([]order.Item, 0, len(demands))
	var shorts []inventory.ShortItem
	for _, demand := range demands {
		record, err := inventoryRepo.Get(ctx, demand.MedicineID, cmd.PharmacyID())
		if err != nil {
			return err
		}

		if !record.CanFulfill(demand.Quantity) {
			shorts = append(shorts, inventory.ShortItem{
				MedicineID: record.MedicineID(),
				Name:       record.Name(),
				Required:   demand.Quantity,
				Available:  record.Stock(),
			})
			continue
		}

		item, err := order.NewItem(record.MedicineID(), record.Name(),
			demand.Quantity, record.Price(), record.Discount())
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	if len(shorts) > 0 {
		return inventory.NewInsufficientStockError(shorts)
	}

	now := time.Now()
	orderNumber := fmt.Sprintf("%s-%d", orderNumberPrefix, now.UnixMilli())

	newOrder, err := order.NewOrder(cmd.OrderID(), orderNumber,
		cmd.PatientID(), cmd.PharmacyID(), items,
		cmd.Address(), cmd.PaymentMethod(), cmd.PrescriptionRef(), now)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Best-effort: a notification outage must not fail the placement.
	_ = h.publisher.PublishOrderEvent(ctx, ports.OrderEvent{
		OrderID:     newOrder.ID(),
		OrderNumber: newOrder.OrderNumber(),
		Status:      newOrder.Status(),
		ActorID:     cmd.PatientID(),
		Note:        "order placed",
		OccurredAt:  now,
	})

	return nil
}
