package commands_test

import (
	"testing"
	"time"

	"medmarket/internal/core/domain/model/inventory"
	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress("12 MG Road", "Pune", "MH", "411001", "India")
	require.NoError(t, err)
	return addr
}

func testActor(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return actor
}

func testRecord(t *testing.T, medicineID, pharmacyID kernel.UUID, stock int) *inventory.Record {
	t.Helper()
	record, err := inventory.NewRecord(medicineID, pharmacyID,
		"Paracetamol 500mg", "Acetaminophen", 10, stock, 0,
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "BATCH-7")
	require.NoError(t, err)
	return record
}

// testPendingOrder creates an order in Pending with one line of two units.
func testPendingOrder(t *testing.T, patientID, pharmacyID kernel.UUID) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), "Paracetamol 500mg", 2, 10, 0)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "MEDIMART-1741946400000",
		patientID, pharmacyID, []order.Item{item},
		testAddress(t), order.PaymentCashOnDelivery, "rx-2025-0042", time.Now())
	require.NoError(t, err)
	return o
}

// testConfirmedOrder creates an order the pharmacy has already confirmed.
func testConfirmedOrder(t *testing.T, patientID, pharmacyID kernel.UUID) *order.Order {
	t.Helper()

	o := testPendingOrder(t, patientID, pharmacyID)
	pharmacy := testActor(t, pharmacyID, kernel.RolePharmacy)
	require.NoError(t, o.TransitionTo(pharmacy, order.Confirmed, "", time.Now()))
	return o
}

// testOfferedOrder creates an order offered to the given courier.
func testOfferedOrder(t *testing.T, patientID, pharmacyID, courierID kernel.UUID) *order.Order {
	t.Helper()

	o := testConfirmedOrder(t, patientID, pharmacyID)
	pharmacy := testActor(t, pharmacyID, kernel.RolePharmacy)
	require.NoError(t, o.AssignCourier(pharmacy, courierID, "Ravi", time.Now()))
	return o
}
