package commands

import (
	"errors"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/errs"
	"medmarket/internal/pkg/guard"
)

var ErrRespondToAssignmentCommandIsNotConstructed = errors.New(
	"RespondToAssignmentCommand must be created via NewRespondToAssignmentCommand constructor",
)

// RespondToAssignmentCommand represents a courier's answer to a delivery
// offer: accept it or decline it with an optional reason.
type RespondToAssignmentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	accept  bool
	note    string

	guard guard.ConstructorGuard
}

// NewRespondToAssignmentCommand creates a command answering a delivery
// offer. Only courier actors can respond.
func NewRespondToAssignmentCommand(orderID kernel.UUID, actor kernel.Actor, accept bool, note string) (RespondToAssignmentCommand, error) {
	cmd := RespondToAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return RespondToAssignmentCommand{}, err
	}
	cmd.accept = accept
	cmd.note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RespondToAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRespondToAssignmentCommandIsNotConstructed)
}

// OrderID returns the offered order.
func (c RespondToAssignmentCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the responding courier.
func (c RespondToAssignmentCommand) Actor() kernel.Actor { return c.actor }

// Accept reports whether the courier takes the delivery.
func (c RespondToAssignmentCommand) Accept() bool { return c.accept }

// Note returns the optional reason recorded with a rejection.
func (c RespondToAssignmentCommand) Note() string { return c.note }

func (c *RespondToAssignmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RespondToAssignmentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RoleCourier {
		return errs.NewAuthorizationError(actor.Role().String(), "respond to delivery offers")
	}
	c.actor = actor
	return nil
}
