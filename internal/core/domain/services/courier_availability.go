package services

import (
	"errors"
	"fmt"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"
)

// ErrCourierBusy is returned when a delivery is offered to a courier already
// occupied by another order.
var ErrCourierBusy = errors.New("courier is busy with another delivery")

// CourierAvailability decides whether a courier can take a new delivery.
// It works from the live set of active orders, read inside the same
// transaction as the assignment, so two pharmacies dispatching at the same
// moment cannot both grab the same courier.
type CourierAvailability interface {
	// BusySet returns the identities of couriers occupied by the given orders.
	BusySet(activeOrders []*order.Order) map[kernel.UUID]struct{}

	// EnsureFree fails with ErrCourierBusy when the courier holds any of the
	// given orders in a courier-active status.
	EnsureFree(courierID kernel.UUID, activeOrders []*order.Order) error
}

var _ CourierAvailability = courierAvailability{}

type courierAvailability struct{}

// NewCourierAvailability creates the availability service.
func NewCourierAvailability() CourierAvailability {
	return courierAvailability{}
}

func (courierAvailability) BusySet(activeOrders []*order.Order) map[kernel.UUID]struct{} {
	busy := make(map[kernel.UUID]struct{})
	for _, o := range activeOrders {
		courierID := o.CourierID()
		if courierID == nil || !o.Status().IsCourierActive() {
			continue
		}
		busy[*courierID] = struct{}{}
	}
	return busy
}

func (s courierAvailability) EnsureFree(courierID kernel.UUID, activeOrders []*order.Order) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if _, busy := s.BusySet(activeOrders)[courierID]; busy {
		return fmt.Errorf("%w: %s", ErrCourierBusy, courierID)
	}
	return nil
}
