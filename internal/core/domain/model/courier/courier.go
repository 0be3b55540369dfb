package courier

import (
	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/errs"
	"medmarket/internal/pkg/guard"
)

// ErrCourierIsNotConstructed indicates a zero-value Courier that bypassed the constructor.
var ErrCourierIsNotConstructed = errs.NewValueIsRequiredError("Courier must be created via NewCourier or RestoreCourier")

// Courier is a delivery agent registered with the marketplace. Whether a
// courier is busy is not stored here: it is derived from the orders currently
// attached to them, so it can never drift out of sync with the order state.
type Courier struct {
	id    kernel.UUID
	name  string
	phone string

	guard guard.ConstructorGuard
}

// NewCourier registers a delivery agent.
func NewCourier(id kernel.UUID, name, phone string) (*Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return nil, errs.NewValueIsRequiredError("phone")
	}

	return &Courier{
		id:    id,
		name:  name,
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// RestoreCourier recreates a courier from storage.
func RestoreCourier(id kernel.UUID, name, phone string) *Courier {
	return &Courier{
		id:    id,
		name:  name,
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}
}

// ID returns the courier identity.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// Phone returns the courier's contact number.
func (c *Courier) Phone() string { return c.phone }

// IsEqual compares couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate ensures the courier was created through a constructor.
func (c *Courier) Validate() error {
	return c.guard.Validate(ErrCourierIsNotConstructed)
}
