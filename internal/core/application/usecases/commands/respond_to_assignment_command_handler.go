package commands

import (
	"context"
	"time"

	"medmarket/internal/core/ports"
)

// RespondToAssignmentCommandHandler applies a courier's answer to a delivery
// offer. Acceptance moves the order to Assigned; rejection detaches the
// courier and returns the order to Pending so the pharmacy can re-dispatch.
type RespondToAssignmentCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.NotificationPublisher
}

// NewRespondToAssignmentCommandHandler creates a handler for offer responses.
func NewRespondToAssignmentCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.NotificationPublisher,
) RespondToAssignmentCommandHandler {
	return RespondToAssignmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the offer response.
func (h *RespondToAssignmentCommandHandler) Handle(ctx context.Context, cmd RespondToAssignmentCommand) error {
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
	if cmd.Accept() {
		err = aggregate.AcceptAssignment(cmd.Actor(), now)
	} else {
		err = aggregate.RejectAssignment(cmd.Actor(), cmd.Note(), now)
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate, priorStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	history := aggregate.History()
	_ = h.publisher.PublishOrderEvent(ctx, ports.OrderEvent{
		OrderID:     aggregate.ID(),
		OrderNumber: aggregate.OrderNumber(),
		Status:      aggregate.Status(),
		ActorID:     cmd.Actor().ID(),
		Note:        history[len(history)-1].Note,
		OccurredAt:  now,
	})

	return nil
}
