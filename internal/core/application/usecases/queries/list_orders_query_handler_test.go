package queries_test

import (
	"context"
	"testing"
	"time"

	"medmarket/internal/adapters/out/postgres/orderrepo"
	"medmarket/internal/core/application/usecases/queries"
	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type ListOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.ListOrdersQueryHandler
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupSuite() {
	container, db, err := startPostgres(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StatusChangeDTO{},
	))

	suite.handler = queries.NewListOrdersQueryHandler(db)
}

func (suite *ListOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, order_status_changes").Error)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_PatientSeesOnlyOwnOrders() {
	patientID := kernel.NewUUID()
	pharmacyID := kernel.NewUUID()
	now := time.Now()

	mine, err := newTestOrder("MEDIMART-1001", patientID, pharmacyID, now)
	suite.Require().NoError(err)
	other, err := newTestOrder("MEDIMART-1002", kernel.NewUUID(), pharmacyID, now)
	suite.Require().NoError(err)
	suite.saveOrders(mine, other)

	patient, err := kernel.NewActor(patientID, kernel.RolePatient)
	suite.Require().NoError(err)
	query, err := queries.NewListOrdersQuery(patient, nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(mine.ID(), result[0].ID)
	suite.Equal("MEDIMART-1001", result[0].OrderNumber)
	suite.Equal(order.Pending, result[0].Status)
	suite.Nil(result[0].CourierID)
	suite.InDelta(mine.Pricing().Total(), result[0].Total, 0.001)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_PharmacySeesAllItsOrders() {
	pharmacyID := kernel.NewUUID()
	now := time.Now()

	first, err := newTestOrder("MEDIMART-2001", kernel.NewUUID(), pharmacyID, now.Add(-time.Hour))
	suite.Require().NoError(err)
	second, err := newTestOrder("MEDIMART-2002", kernel.NewUUID(), pharmacyID, now)
	suite.Require().NoError(err)
	suite.saveOrders(first, second)

	pharmacist, err := kernel.NewActor(pharmacyID, kernel.RolePharmacy)
	suite.Require().NoError(err)
	query, err := queries.NewListOrdersQuery(pharmacist, nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	// Newest first.
	suite.Require().Len(result, 2)
	suite.Equal(second.ID(), result[0].ID)
	suite.Equal(first.ID(), result[1].ID)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_CourierScopeAndStatusFilter() {
	courierID := kernel.NewUUID()
	now := time.Now()

	offered, err := newTestOrder("MEDIMART-3001", kernel.NewUUID(), kernel.NewUUID(), now)
	suite.Require().NoError(err)
	suite.Require().NoError(offerToCourier(offered, courierID, now))

	unrelated, err := newTestOrder("MEDIMART-3002", kernel.NewUUID(), kernel.NewUUID(), now)
	suite.Require().NoError(err)
	suite.saveOrders(offered, unrelated)

	courierActor, err := kernel.NewActor(courierID, kernel.RoleCourier)
	suite.Require().NoError(err)

	status := order.PendingAcceptance
	query, err := queries.NewListOrdersQuery(courierActor, &status)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(offered.ID(), result[0].ID)
	suite.Require().NotNil(result[0].CourierID)
	suite.Equal(courierID, *result[0].CourierID)

	// The same courier filtered on a status they hold no order in.
	delivered := order.Delivered
	query, err = queries.NewListOrdersQuery(courierActor, &delivered)
	suite.Require().NoError(err)

	result, err = suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.ListOrdersQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewListOrdersQuery constructor")
}

func (suite *ListOrdersQueryHandlerTestSuite) saveOrders(orders ...*order.Order) {
	repo := orderrepo.NewGormOrderRepository(suite.db, mockAggregateTracker{})
	for _, o := range orders {
		suite.Require().NoError(repo.Add(context.Background(), o))
	}
}

func TestListOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListOrdersQueryHandlerTestSuite))
}
