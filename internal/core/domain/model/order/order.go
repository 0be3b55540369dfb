package order

import (
	"errors"
	"fmt"
	"time"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/pkg/errs"
	"medmarket/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed indicates a zero-value Order that bypassed the constructor.
	ErrOrderIsNotConstructed = errs.NewValueIsRequiredError("Order must be created via NewOrder or RestoreOrder")

	// ErrStockAlreadyDeducted indicates a second attempt to deduct stock for
	// the same order. Stock leaves the pharmacy exactly once per order.
	ErrStockAlreadyDeducted = errors.New("stock already deducted for this order")
)

// StatusChange is one entry of an order's audit trail: which status the order
// entered, who moved it there and when.
type StatusChange struct {
	Status    Status
	UpdatedBy kernel.UUID
	At        time.Time
	Note      string
}

// Order is the aggregate root of the ordering domain. It owns the status
// state machine, the priced item snapshot and the audit trail, and enforces
// that every change comes from an actor allowed to make it.
//
// All state changes go through TransitionTo or the workflow methods built on
// it; fields are never mutated directly from outside the aggregate.
type Order struct {
	id              kernel.UUID
	orderNumber     string
	patientID       kernel.UUID
	pharmacyID      kernel.UUID
	courierID       *kernel.UUID
	items           []Item
	pricing         Pricing
	status          Status
	history         []StatusChange
	stockDeducted   bool
	address         kernel.Address
	paymentMethod   PaymentMethod
	prescriptionRef string
	deliveredAt     *time.Time
	createdAt       time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a freshly placed order in Pending status. Pricing is
// computed here from the item snapshot; the first audit entry records the
// patient placing the order.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	patientID kernel.UUID,
	pharmacyID kernel.UUID,
	items []Item,
	address kernel.Address,
	paymentMethod PaymentMethod,
	prescriptionRef string,
	now time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if err := patientID.Validate(); err != nil {
		return nil, err
	}
	if err := pharmacyID.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if err := address.Validate(); err != nil {
		return nil, err
	}
	if err := paymentMethod.Validate(); err != nil {
		return nil, err
	}
	if prescriptionRef == "" {
		return nil, errs.NewValueIsRequiredError("prescriptionRef")
	}

	order := &Order{
		id:              id,
		orderNumber:     orderNumber,
		patientID:       patientID,
		pharmacyID:      pharmacyID,
		items:           items,
		pricing:         computePricing(items),
		status:          Pending,
		address:         address,
		paymentMethod:   paymentMethod,
		prescriptionRef: prescriptionRef,
		createdAt:       now,
		guard:           guard.NewConstructorGuard(),
	}
	order.appendHistory(Pending, patientID, now, "order placed")

	return order, nil
}

// OrderSnapshot carries the persisted state of an order back into the domain.
// Fields mirror the aggregate one to one; RestoreOrder trusts them except for
// structural validity.
type OrderSnapshot struct {
	ID              kernel.UUID
	OrderNumber     string
	PatientID       kernel.UUID
	PharmacyID      kernel.UUID
	CourierID       *kernel.UUID
	Items           []Item
	Pricing         Pricing
	Status          Status
	History         []StatusChange
	StockDeducted   bool
	Address         kernel.Address
	PaymentMethod   PaymentMethod
	PrescriptionRef string
	DeliveredAt     *time.Time
	CreatedAt       time.Time
}

// RestoreOrder recreates an order from storage. Unlike NewOrder it accepts
// any valid status and does not recompute pricing or history.
func RestoreOrder(snapshot OrderSnapshot) (*Order, error) {
	if err := snapshot.ID.Validate(); err != nil {
		return nil, err
	}
	if err := snapshot.Status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:              snapshot.ID,
		orderNumber:     snapshot.OrderNumber,
		patientID:       snapshot.PatientID,
		pharmacyID:      snapshot.PharmacyID,
		courierID:       snapshot.CourierID,
		items:           snapshot.Items,
		pricing:         snapshot.Pricing,
		status:          snapshot.Status,
		history:         snapshot.History,
		stockDeducted:   snapshot.StockDeducted,
		address:         snapshot.Address,
		paymentMethod:   snapshot.PaymentMethod,
		prescriptionRef: snapshot.PrescriptionRef,
		deliveredAt:     snapshot.DeliveredAt,
		createdAt:       snapshot.CreatedAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// TransitionTo moves the order to the target status on behalf of an actor.
//
// The transition must exist in the table for the actor's role, and the actor
// must own the order in that role (the order's patient, its pharmacy, or its
// currently attached courier). On failure the order is left unchanged.
//
// Side effects of specific targets:
//   - Pending reached from PendingAcceptance detaches the courier (rejection)
//   - Delivered records the delivery time
//
// Every successful transition appends an audit entry.
func (o *Order) TransitionTo(actor kernel.Actor, target Status, note string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := o.status.CanTransitionTo(target, actor.Role()); err != nil {
		return err
	}
	if err := o.authorizeActor(actor); err != nil {
		return err
	}
	if target == PendingAcceptance && o.courierID == nil {
		return errs.NewValueIsRequiredError("courier")
	}

	o.status = target

	switch target {
	case Pending:
		// Only reachable again via courier rejection: the offer is
		// withdrawn and the order returns to the unassigned pool.
		o.courierID = nil
	case Delivered:
		deliveredAt := now
		o.deliveredAt = &deliveredAt
	}

	o.appendHistory(target, actor.ID(), now, note)

	return nil
}

// AssignCourier offers the delivery to a courier and moves the order to
// PendingAcceptance. Only the order's pharmacy can do this, from Confirmed or
// Ready. The courier is attached but not yet committed: they accept or reject
// through AcceptAssignment and RejectAssignment.
func (o *Order) AssignCourier(actor kernel.Actor, courierID kernel.UUID, courierName string, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	note := "delivery request sent"
	if courierName != "" {
		note = fmt.Sprintf("delivery request sent to %s", courierName)
	}

	previous := o.courierID
	attached := courierID
	o.courierID = &attached
	if err := o.TransitionTo(actor, PendingAcceptance, note, now); err != nil {
		o.courierID = previous
		return err
	}

	return nil
}

// AcceptAssignment commits the offered courier to the delivery.
func (o *Order) AcceptAssignment(actor kernel.Actor, now time.Time) error {
	return o.TransitionTo(actor, Assigned, "delivery accepted by courier", now)
}

// RejectAssignment declines the delivery offer. The courier is detached and
// the order returns to Pending for the pharmacy to re-dispatch.
func (o *Order) RejectAssignment(actor kernel.Actor, note string, now time.Time) error {
	if note == "" {
		note = "delivery rejected by courier"
	}
	return o.TransitionTo(actor, Pending, note, now)
}

// MarkStockDeducted records that pharmacy stock has been deducted for this
// order. It fails on a second call: the flag is what makes repeated
// Ready -> Confirmed -> Ready cycles deduct stock only once.
func (o *Order) MarkStockDeducted() error {
	if o.stockDeducted {
		return ErrStockAlreadyDeducted
	}
	o.stockDeducted = true
	return nil
}

// authorizeActor checks the actor owns the order in their role: the patient
// who placed it, the pharmacy fulfilling it, or the courier it is attached to.
func (o *Order) authorizeActor(actor kernel.Actor) error {
	switch actor.Role() {
	case kernel.RolePatient:
		if !actor.ID().IsEqual(o.patientID) {
			return errs.NewAuthorizationError(actor.Role().String(), "modify another patient's order")
		}
	case kernel.RolePharmacy:
		if !actor.ID().IsEqual(o.pharmacyID) {
			return errs.NewAuthorizationError(actor.Role().String(), "modify another pharmacy's order")
		}
	case kernel.RoleCourier:
		if o.courierID == nil || !actor.ID().IsEqual(*o.courierID) {
			return errs.NewAuthorizationError(actor.Role().String(), "act on a delivery not offered to them")
		}
	default:
		return errs.NewValueIsInvalidError("actor role")
	}

	return nil
}

func (o *Order) appendHistory(status Status, updatedBy kernel.UUID, at time.Time, note string) {
	o.history = append(o.history, StatusChange{
		Status:    status,
		UpdatedBy: updatedBy,
		At:        at,
		Note:      note,
	})
}

// ID returns the order identity.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string { return o.orderNumber }

// PatientID returns the patient who placed the order.
func (o *Order) PatientID() kernel.UUID { return o.patientID }

// PharmacyID returns the pharmacy fulfilling the order.
func (o *Order) PharmacyID() kernel.UUID { return o.pharmacyID }

// CourierID returns the attached courier, or nil when no courier holds the
// delivery.
func (o *Order) CourierID() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

// Items returns a copy of the priced item snapshot.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Pricing returns the priced breakdown computed at placement.
func (o *Order) Pricing() Pricing { return o.pricing }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// History returns a copy of the audit trail, oldest entry first.
func (o *Order) History() []StatusChange {
	history := make([]StatusChange, len(o.history))
	copy(history, o.history)
	return history
}

// StockDeducted reports whether pharmacy stock was already deducted for this
// order.
func (o *Order) StockDeducted() bool { return o.stockDeducted }

// DeliveryAddress returns the destination snapshot captured at placement.
func (o *Order) DeliveryAddress() kernel.Address { return o.address }

// PaymentMethod returns how the patient pays.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// PrescriptionRef returns the reference to the uploaded prescription.
func (o *Order) PrescriptionRef() string { return o.prescriptionRef }

// DeliveredAt returns the delivery time, or nil while undelivered.
func (o *Order) DeliveredAt() *time.Time {
	if o.deliveredAt == nil {
		return nil
	}
	deliveredAt := *o.deliveredAt
	return &deliveredAt
}

// CreatedAt returns the placement time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	if other == nil {
		return false
	}
	return o.id.IsEqual(other.id)
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	return o.guard.Validate(ErrOrderIsNotConstructed)
}
