package order

import (
	"fmt"
	"slices"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It is a closed
// enumeration: an order's status is always one of these values, and it only
// ever changes through the transition table below.
//
// Lifecycle:
//
//	Pending ──> Confirmed ──> Ready ──> PendingAcceptance ──> Assigned ──> PickedUp ──> OutForDelivery ──> Delivered
//	               │  ^──────────┘              │
//	               └────────> PendingAcceptance └──(courier rejects)──> Pending
//
// Delivered and Cancelled are terminal. Rejected survives in the enumeration
// for legacy records but is unreachable through the state machine: a courier
// rejection detaches the courier and returns the order to Pending instead.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status set when a patient places an order.
	Pending

	// Confirmed means the pharmacy has accepted the order for preparation.
	Confirmed

	// Ready means the order is packed and waiting for pickup. First entry
	// into this status deducts pharmacy stock exactly once.
	Ready

	// PendingAcceptance means a courier has been offered the delivery but
	// has not yet accepted. The courier reference is set, operational
	// control is not transferred.
	PendingAcceptance

	// Assigned means the courier accepted the delivery offer.
	Assigned

	// PickedUp means the courier collected the order from the pharmacy.
	PickedUp

	// OutForDelivery means the courier is en route to the patient.
	OutForDelivery

	// Delivered is a terminal status: the order reached the patient.
	Delivered

	// Cancelled is a terminal status: the order was withdrawn before fulfillment.
	Cancelled

	// Rejected is retained for legacy data only; the state machine never
	// produces it.
	Rejected
)

// legacyReadyForPickup is the historical synonym of Ready. It is normalized
// away at the boundary: the enumeration has a single canonical ready state.
const legacyReadyForPickup = "ready_for_pickup"

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "unknown",
		Pending:           "pending",
		Confirmed:         "confirmed",
		Ready:             "ready",
		PendingAcceptance: "pending_acceptance",
		Assigned:          "assigned",
		PickedUp:          "picked_up",
		OutForDelivery:    "out_for_delivery",
		Delivered:         "delivered",
		Cancelled:         "cancelled",
		Rejected:          "rejected",
	}
}

// ParseStatus converts the wire representation of a status into the enum.
// The legacy "ready_for_pickup" synonym collapses to Ready. Anything outside
// the closed set is rejected.
func ParseStatus(s string) (Status, error) {
	if s == legacyReadyForPickup {
		return Ready, nil
	}
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the wire name of the status ("pending", "out_for_delivery", ...).
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the status is a member of the closed set.
func (s Status) Validate() error {
	if s <= Unknown || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether the status ends the order lifecycle.
// Terminal orders are retained for history, never deleted.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsCourierActive reports whether an order in this status occupies its
// courier. A courier holding any order in one of these statuses is busy and
// must not be offered another delivery.
func (s Status) IsCourierActive() bool {
	switch s {
	case PendingAcceptance, Assigned, PickedUp, OutForDelivery:
		return true
	default:
		return false
	}
}

// transition is a (from, to) pair used as the transition table key.
type transition struct {
	from Status
	to   Status
}

// getTransitionTable returns the exhaustive set of allowed status transitions
// and the roles permitted to perform each. Any (from, to) pair absent from
// this table is rejected; there are no implicit fall-through transitions.
func getTransitionTable() map[transition][]kernel.Role {
	return map[transition][]kernel.Role{
		{from: Pending, to: Confirmed}:             {kernel.RolePharmacy},
		{from: Confirmed, to: Ready}:               {kernel.RolePharmacy},
		{from: Ready, to: Confirmed}:               {kernel.RolePharmacy},
		{from: Confirmed, to: PendingAcceptance}:   {kernel.RolePharmacy},
		{from: Ready, to: PendingAcceptance}:       {kernel.RolePharmacy},
		{from: PendingAcceptance, to: Assigned}:    {kernel.RoleCourier},
		{from: PendingAcceptance, to: Pending}:     {kernel.RoleCourier},
		{from: Assigned, to: PickedUp}:             {kernel.RoleCourier},
		{from: PickedUp, to: OutForDelivery}:       {kernel.RoleCourier},
		{from: OutForDelivery, to: Delivered}:      {kernel.RoleCourier},
		{from: Pending, to: Cancelled}:             {kernel.RolePatient, kernel.RolePharmacy},
		{from: Confirmed, to: Cancelled}:           {kernel.RolePharmacy},
	}
}

// CanTransitionTo checks the transition table for the (s, target) pair.
//
// Returns:
//   - InvalidTransitionError if the pair is not in the table
//   - AuthorizationError if the pair exists but the role is not permitted
//   - nil if the transition is allowed for the role
//
// Ownership of the order (this pharmacy, this courier) is checked separately
// by the aggregate; this method only knows about roles.
func (s Status) CanTransitionTo(target Status, role kernel.Role) error {
	roles, ok := getTransitionTable()[transition{from: s, to: target}]
	if !ok {
		return NewInvalidTransitionError(s, target)
	}

	if !slices.Contains(roles, role) {
		return errs.NewAuthorizationError(
			role.String(),
			fmt.Sprintf("transition order from %s to %s", s, target),
		)
	}

	return nil
}
