package commands

import (
	"errors"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/errs"
	"medmarket/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents a pharmacy's request to offer a delivery
// to a specific courier.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actor     kernel.Actor
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to dispatch an order to a
// courier. Only pharmacy actors can dispatch; that is checked here so the
// handler never starts a transaction for a request that can only fail.
func NewAssignCourierCommand(orderID kernel.UUID, actor kernel.Actor, courierID kernel.UUID) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setCourierID(courierID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the order to dispatch.
func (c AssignCourierCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the pharmacy requesting the dispatch.
func (c AssignCourierCommand) Actor() kernel.Actor { return c.actor }

// CourierID returns the courier to offer the delivery to.
func (c AssignCourierCommand) CourierID() kernel.UUID { return c.courierID }

func (c *AssignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignCourierCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RolePharmacy {
		return errs.NewAuthorizationError(actor.Role().String(), "dispatch orders to couriers")
	}
	c.actor = actor
	return nil
}

func (c *AssignCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
