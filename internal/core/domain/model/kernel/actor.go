package kernel

import (
	"fmt"

	"medmarket/internal/pkg/errs"
)

// Role identifies which party of the marketplace an actor represents.
// It is a closed enumeration: every state-changing operation is authorized
// against the acting role, so an unknown role can never pass a permission check.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RolePatient places orders and may cancel them before confirmation.
	RolePatient

	// RolePharmacy owns inventory and drives order preparation.
	RolePharmacy

	// RoleCourier (the "delivery boy" of the original system) transports
	// orders from pickup to delivery.
	RoleCourier
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RolePatient:  "patient",
		RolePharmacy: "pharmacy",
		RoleCourier:  "delivery_boy",
	}
}

// ParseRole converts the wire representation of a role into the enum.
// Returns an error for anything outside the closed set.
func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// String returns the wire name of the role ("patient", "pharmacy", "delivery_boy").
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate checks the role is a member of the closed set.
func (r Role) Validate() error {
	if r != RolePatient && r != RolePharmacy && r != RoleCourier {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the authenticated identity performing an operation: a user ID plus
// its role. Authentication itself happens outside this module; actors arrive at
// the boundary already verified and are treated as trusted input.
type Actor struct {
	id   UUID
	role Role
}

// NewActor creates an actor from a validated identity and role.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the actor's user identifier.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Validate ensures the actor carries a constructed identity and a valid role.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}
