package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"medmarket/internal/adapters/out/postgres/orderrepo"
	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"
	"medmarket/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

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
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StatusChangeDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, order_status_changes").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrip() {
	ctx := context.Background()

	original := suite.createTestOrder("MEDIMART-1000")
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()

	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.OrderNumber(), retrieved.OrderNumber())
	suite.Equal(original.PatientID(), retrieved.PatientID())
	suite.Equal(original.PharmacyID(), retrieved.PharmacyID())
	suite.Equal(order.Pending, retrieved.Status())
	suite.Nil(retrieved.CourierID())
	suite.False(retrieved.StockDeducted())
	suite.Equal("rx-2026-0815", retrieved.PrescriptionRef())
	suite.Equal(order.PaymentCashOnDelivery, retrieved.PaymentMethod())

	suite.Require().Len(retrieved.Items(), 1)
	item := retrieved.Items()[0]
	suite.Equal("Paracetamol 500mg", item.Name())
	suite.Equal(2, item.Quantity())
	suite.InDelta(10.0, item.Price(), 0.001)

	suite.Require().Len(retrieved.History(), 1)
	suite.Equal(order.Pending, retrieved.History()[0].Status)
	suite.Equal("order placed", retrieved.History()[0].Note)

	suite.Equal("221B Baker Street", retrieved.DeliveryAddress().Street())
	suite.InDelta(original.Pricing().Total(), retrieved.Pricing().Total(), 0.001)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateOrderNumber_ReturnsConflict() {
	ctx := context.Background()

	first := suite.createTestOrder("MEDIMART-2000")
	second := suite.createTestOrder("MEDIMART-2000")

	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	err := suite.repository.Add(ctx, second)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndHistory() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("MEDIMART-3000")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	pharmacist, err := kernel.NewActor(testOrder.PharmacyID(), kernel.RolePharmacy)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.TransitionTo(pharmacist, order.Confirmed, "", time.Now()))

	suite.Require().NoError(suite.repository.Update(ctx, testOrder, order.Pending))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, retrieved.Status())
	suite.Require().Len(retrieved.History(), 2)
	suite.Equal(order.Confirmed, retrieved.History()[1].Status)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleStatus_ReturnsConflict() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("MEDIMART-4000")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	pharmacist, err := kernel.NewActor(testOrder.PharmacyID(), kernel.RolePharmacy)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.TransitionTo(pharmacist, order.Confirmed, "", time.Now()))

	// The caller loaded the order while it was already Confirmed in storage:
	// the expected status no longer matches.
	err = suite.repository.Update(ctx, testOrder, order.Confirmed)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActiveWithCourier_FiltersByStatusAndCourier() {
	ctx := context.Background()

	courierID := kernel.NewUUID()

	pendingOrder := suite.createTestOrder("MEDIMART-5000")

	offeredOrder := suite.createTestOrder("MEDIMART-5001")
	pharmacist, err := kernel.NewActor(offeredOrder.PharmacyID(), kernel.RolePharmacy)
	suite.Require().NoError(err)
	suite.Require().NoError(offeredOrder.TransitionTo(pharmacist, order.Confirmed, "", time.Now()))
	suite.Require().NoError(offeredOrder.AssignCourier(pharmacist, courierID, "Ravi", time.Now()))

	deliveredOrder := suite.createTestOrder("MEDIMART-5002")
	suite.completeDelivery(deliveredOrder, courierID)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, pendingOrder))
	suite.Require().NoError(suite.repository.Add(ctx, offeredOrder))
	suite.Require().NoError(suite.repository.Add(ctx, deliveredOrder))

	active, err := suite.repository.GetAllActiveWithCourier(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(active, 1)
	suite.Equal(offeredOrder.ID(), active[0].ID())
	suite.Equal(order.PendingAcceptance, active[0].Status())
	suite.Require().NotNil(active[0].CourierID())
	suite.Equal(courierID, *active[0].CourierID())

	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder builds a pending order with one item and a fixed address.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(orderNumber string) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), "Paracetamol 500mg", 2, 10, 0)
	suite.Require().NoError(err)

	address, err := kernel.NewAddress("221B Baker Street", "Mumbai", "MH", "400001", "IN")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		orderNumber,
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.Item{item},
		address,
		order.PaymentCashOnDelivery,
		"rx-2026-0815",
		time.Now(),
	)
	suite.Require().NoError(err)
	return testOrder
}

// completeDelivery drives an order through the whole courier flow to Delivered.
func (suite *OrderRepositoryIntegrationTestSuite) completeDelivery(testOrder *order.Order, courierID kernel.UUID) {
	now := time.Now()

	pharmacist, err := kernel.NewActor(testOrder.PharmacyID(), kernel.RolePharmacy)
	suite.Require().NoError(err)
	courierActor, err := kernel.NewActor(courierID, kernel.RoleCourier)
	suite.Require().NoError(err)

	suite.Require().NoError(testOrder.TransitionTo(pharmacist, order.Confirmed, "", now))
	suite.Require().NoError(testOrder.AssignCourier(pharmacist, courierID, "Ravi", now))
	suite.Require().NoError(testOrder.AcceptAssignment(courierActor, now))
	suite.Require().NoError(testOrder.TransitionTo(courierActor, order.PickedUp, "", now))
	suite.Require().NoError(testOrder.TransitionTo(courierActor, order.OutForDelivery, "", now))
	suite.Require().NoError(testOrder.TransitionTo(courierActor, order.Delivered, "", now))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
