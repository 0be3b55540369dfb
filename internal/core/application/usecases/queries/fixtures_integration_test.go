package queries_test

import (
	"context"
	"time"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker; query tests only need repositories
// to seed data.
type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// startPostgres launches a throwaway PostgreSQL container and opens a GORM
// connection to it.
func startPostgres(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}

	return container, db, nil
}

// newTestOrder places a pending order for the given parties.
func newTestOrder(orderNumber string, patientID, pharmacyID kernel.UUID, now time.Time) (*order.Order, error) {
	item, err := order.NewItem(kernel.NewUUID(), "Paracetamol 500mg", 2, 10, 0)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress("221B Baker Street", "Mumbai", "MH", "400001", "IN")
	if err != nil {
		return nil, err
	}

	return order.NewOrder(kernel.NewUUID(), orderNumber, patientID, pharmacyID,
		[]order.Item{item}, address, order.PaymentCashOnDelivery, "rx-2026-0815", now)
}

// offerToCourier drives a pending order to pending_acceptance with the given
// courier attached.
func offerToCourier(testOrder *order.Order, courierID kernel.UUID, now time.Time) error {
	pharmacist, err := kernel.NewActor(testOrder.PharmacyID(), kernel.RolePharmacy)
	if err != nil {
		return err
	}

	if err = testOrder.TransitionTo(pharmacist, order.Confirmed, "", now); err != nil {
		return err
	}
	return testOrder.AssignCourier(pharmacist, courierID, "", now)
}
