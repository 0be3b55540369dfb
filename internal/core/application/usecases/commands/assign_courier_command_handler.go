package commands

import (
	"context"
	"time"

	"medmarket/internal/core/domain/services"
	"medmarket/internal/core/ports"
)

// AssignCourierCommandHandler offers deliveries to couriers.
//
// Busy-ness is decided against the live set of active orders read in the
// same transaction as the assignment, not against a stored flag. Two
// pharmacies dispatching to the same courier at the same moment collide on
// the order row's optimistic status check instead of both succeeding.
type AssignCourierCommandHandler struct {
	uowFactory   OrderCourierUoWFactory
	availability services.CourierAvailability
	publisher    ports.NotificationPublisher
}

// NewAssignCourierCommandHandler creates a handler for courier dispatch.
func NewAssignCourierCommandHandler(
	uowFactory OrderCourierUoWFactory,
	availability services.CourierAvailability,
	publisher ports.NotificationPublisher,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory:   uowFactory,
		availability: availability,
		publisher:    publisher,
	}
}

// Handle processes the dispatch command.
func (h *AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
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

	deliveryAgent, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()

	activeOrders, err := orderRepo.GetAllActiveWithCourier(ctx)
	if err != nil {
		return err
	}
	if err = h.availability.EnsureFree(cmd.CourierID(), activeOrders); err != nil {
		return err
	}

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	priorStatus := aggregate.Status()

	now := time.Now()
	if err = aggregate.AssignCourier(cmd.Actor(), deliveryAgent.ID(), deliveryAgent.Name(), now); err != nil {
		return err
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
		Note:        "delivery offered to " + deliveryAgent.Name(),
		OccurredAt:  now,
	})

	return nil
}
