package commands

import (
	"errors"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"
	"medmarket/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand represents a request to move an order to a
// new status on behalf of an actor. Whether the move is allowed is decided
// entirely by the aggregate's transition table; the command only carries the
// intent.
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	target  order.Status
	note    string

	guard guard.ConstructorGuard
}

// NewTransitionOrderStatusCommand creates a command to change an order's
// status. The note is optional free text recorded in the audit trail.
func NewTransitionOrderStatusCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	target order.Status,
	note string,
) (TransitionOrderStatusCommand, error) {
	cmd := TransitionOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setTarget(target),
	); err != nil {
		return TransitionOrderStatusCommand{}, err
	}
	cmd.note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to move.
func (c TransitionOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns who requests the move.
func (c TransitionOrderStatusCommand) Actor() kernel.Actor { return c.actor }

// Target returns the requested status.
func (c TransitionOrderStatusCommand) Target() order.Status { return c.target }

// Note returns the optional audit note.
func (c TransitionOrderStatusCommand) Note() string { return c.note }

func (c *TransitionOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderStatusCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *TransitionOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
