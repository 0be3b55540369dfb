package kernel

import (
	"medmarket/internal/pkg/errs"
	"medmarket/internal/pkg/guard"
)

// ErrAddressIsNotConstructed indicates a zero-value Address that bypassed NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("Address must be created via NewAddress")

// Address is the delivery destination captured when an order is placed.
// It is an immutable snapshot: later edits to a patient's profile never
// change where an already-placed order is delivered.
type Address struct {
	street     string
	city       string
	state      string
	postalCode string
	country    string

	guard guard.ConstructorGuard
}

// NewAddress creates a delivery address. All components are required.
func NewAddress(street, city, state, postalCode, country string) (Address, error) {
	switch {
	case street == "":
		return Address{}, errs.NewValueIsRequiredError("street")
	case city == "":
		return Address{}, errs.NewValueIsRequiredError("city")
	case state == "":
		return Address{}, errs.NewValueIsRequiredError("state")
	case postalCode == "":
		return Address{}, errs.NewValueIsRequiredError("postalCode")
	case country == "":
		return Address{}, errs.NewValueIsRequiredError("country")
	}

	return Address{
		street:     street,
		city:       city,
		state:      state,
		postalCode: postalCode,
		country:    country,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Street returns the street line of the address.
func (a Address) Street() string { return a.street }

// City returns the city of the address.
func (a Address) City() string { return a.city }

// State returns the state or region of the address.
func (a Address) State() string { return a.state }

// PostalCode returns the postal code of the address.
func (a Address) PostalCode() string { return a.postalCode }

// Country returns the country of the address.
func (a Address) Country() string { return a.country }

// IsEqual compares two addresses component-wise.
func (a Address) IsEqual(other Address) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.state == other.state &&
		a.postalCode == other.postalCode &&
		a.country == other.country
}

// Validate ensures the address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}
