package inventoryrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"medmarket/internal/adapters/out/postgres/inventoryrepo"
	"medmarket/internal/core/domain/model/inventory"
	"medmarket/internal/core/domain/model/kernel"
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

// InventoryRepositoryIntegrationTestSuite verifies catalog persistence and
// the atomic stock deduction against a real PostgreSQL instance.
type InventoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *inventoryrepo.GormInventoryRepository
	tracker    *MockAggregateTracker
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&inventoryrepo.MedicineDTO{}))
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE medicines").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = inventoryrepo.NewGormInventoryRepository(suite.db, suite.tracker)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrip() {
	ctx := context.Background()

	record := suite.createRecord(kernel.NewUUID(), kernel.NewUUID(), 40)
	suite.tracker.On("TrackAggregate", record.MedicineID(), record).Once()

	suite.Require().NoError(suite.repository.Add(ctx, record))

	retrieved, err := suite.repository.Get(ctx, record.MedicineID(), record.PharmacyID())
	suite.Require().NoError(err)

	suite.Equal(record.MedicineID(), retrieved.MedicineID())
	suite.Equal(record.PharmacyID(), retrieved.PharmacyID())
	suite.Equal("Paracetamol 500mg", retrieved.Name())
	suite.Equal("Acetaminophen", retrieved.GenericName())
	suite.InDelta(10.0, retrieved.Price(), 0.001)
	suite.Equal(40, retrieved.Stock())
	suite.True(retrieved.Available())
	suite.Equal("B-2026-08", retrieved.BatchNumber())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestUpdate_RewritesListing() {
	ctx := context.Background()

	record := suite.createRecord(kernel.NewUUID(), kernel.NewUUID(), 40)
	suite.tracker.On("TrackAggregate", record.MedicineID(), record).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, record))

	suite.Require().NoError(record.UpdateListing("Paracetamol 650mg", "Acetaminophen",
		12, 25, 5, false, record.ExpiryDate(), "B-2026-09"))
	suite.Require().NoError(suite.repository.Update(ctx, record))

	retrieved, err := suite.repository.Get(ctx, record.MedicineID(), record.PharmacyID())
	suite.Require().NoError(err)
	suite.Equal("Paracetamol 650mg", retrieved.Name())
	suite.Equal(25, retrieved.Stock())
	suite.InDelta(5.0, retrieved.Discount(), 0.001)
	suite.False(retrieved.Available())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestGetByPharmacy_ScopesToOnePharmacy() {
	ctx := context.Background()

	pharmacyID := kernel.NewUUID()
	otherPharmacyID := kernel.NewUUID()

	mine := suite.createRecord(kernel.NewUUID(), pharmacyID, 10)
	theirs := suite.createRecord(kernel.NewUUID(), otherPharmacyID, 10)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, mine))
	suite.Require().NoError(suite.repository.Add(ctx, theirs))

	records, err := suite.repository.GetByPharmacy(ctx, pharmacyID)
	suite.Require().NoError(err)
	suite.Require().Len(records, 1)
	suite.Equal(mine.MedicineID(), records[0].MedicineID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestRemove_DeletesListing() {
	ctx := context.Background()

	record := suite.createRecord(kernel.NewUUID(), kernel.NewUUID(), 10)
	suite.tracker.On("TrackAggregate", record.MedicineID(), record).Once()
	suite.Require().NoError(suite.repository.Add(ctx, record))

	suite.Require().NoError(suite.repository.Remove(ctx, record.MedicineID(), record.PharmacyID()))

	_, err := suite.repository.Get(ctx, record.MedicineID(), record.PharmacyID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repository.Remove(ctx, record.MedicineID(), record.PharmacyID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestDecrementStockBatch_DeductsAllDemands() {
	ctx := context.Background()

	pharmacyID := kernel.NewUUID()
	first := suite.createRecord(kernel.NewUUID(), pharmacyID, 10)
	second := suite.createRecord(kernel.NewUUID(), pharmacyID, 5)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	demands := inventory.MergeDemands([]inventory.StockDemand{
		{MedicineID: first.MedicineID(), Quantity: 4},
		{MedicineID: second.MedicineID(), Quantity: 5},
	})
	suite.Require().NoError(suite.repository.DecrementStockBatch(ctx, pharmacyID, demands))

	suite.Equal(6, suite.stockOf(first.MedicineID(), pharmacyID))
	suite.Equal(0, suite.stockOf(second.MedicineID(), pharmacyID))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestDecrementStockBatch_ShortStock_NothingDeducted() {
	ctx := context.Background()

	pharmacyID := kernel.NewUUID()
	covered := suite.createRecord(kernel.NewUUID(), pharmacyID, 10)
	short := suite.createRecord(kernel.NewUUID(), pharmacyID, 2)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, covered))
	suite.Require().NoError(suite.repository.Add(ctx, short))

	demands := inventory.MergeDemands([]inventory.StockDemand{
		{MedicineID: covered.MedicineID(), Quantity: 4},
		{MedicineID: short.MedicineID(), Quantity: 3},
	})
	err := suite.repository.DecrementStockBatch(ctx, pharmacyID, demands)
	suite.Require().Error(err)

	var stockErr *inventory.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Require().Len(stockErr.Items, 1)
	suite.Equal(short.MedicineID(), stockErr.Items[0].MedicineID)
	suite.Equal(3, stockErr.Items[0].Required)
	suite.Equal(2, stockErr.Items[0].Available)

	suite.Equal(10, suite.stockOf(covered.MedicineID(), pharmacyID))
	suite.Equal(2, suite.stockOf(short.MedicineID(), pharmacyID))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestDecrementStockBatch_UnknownMedicine_ReturnsNotFound() {
	ctx := context.Background()

	pharmacyID := kernel.NewUUID()
	demands := []inventory.StockDemand{{MedicineID: kernel.NewUUID(), Quantity: 1}}

	err := suite.repository.DecrementStockBatch(ctx, pharmacyID, demands)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

// TestDecrementStockBatch_ConcurrentOrders_NoOversell races two deductions of
// 3 units against a stock of 5. The conditional write guarantees exactly one
// wins; the loser sees a concurrency conflict or the shortfall, depending on
// whether its pre-check ran before or after the winner's write.
func (suite *InventoryRepositoryIntegrationTestSuite) TestDecrementStockBatch_ConcurrentOrders_NoOversell() {
	ctx := context.Background()

	pharmacyID := kernel.NewUUID()
	record := suite.createRecord(kernel.NewUUID(), pharmacyID, 5)
	suite.tracker.On("TrackAggregate", record.MedicineID(), record).Once()
	suite.Require().NoError(suite.repository.Add(ctx, record))

	demands := []inventory.StockDemand{{MedicineID: record.MedicineID(), Quantity: 3}}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = suite.repository.DecrementStockBatch(ctx, pharmacyID, demands)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(2, suite.stockOf(record.MedicineID(), pharmacyID))

	suite.tracker.AssertExpectations(suite.T())
}

// createRecord builds an available catalog record with fixed listing details.
func (suite *InventoryRepositoryIntegrationTestSuite) createRecord(
	medicineID, pharmacyID kernel.UUID, stock int,
) *inventory.Record {
	expiry := time.Date(2027, 8, 1, 0, 0, 0, 0, time.UTC)
	record, err := inventory.NewRecord(medicineID, pharmacyID, "Paracetamol 500mg",
		"Acetaminophen", 10, stock, 0, expiry, "B-2026-08")
	suite.Require().NoError(err)
	return record
}

// stockOf reads the persisted stock level directly.
func (suite *InventoryRepositoryIntegrationTestSuite) stockOf(medicineID, pharmacyID kernel.UUID) int {
	var dto inventoryrepo.MedicineDTO
	err := suite.db.First(&dto, "medicine_id = ? AND pharmacy_id = ?",
		medicineID.Bytes(), pharmacyID.Bytes()).Error
	suite.Require().NoError(err)
	return dto.Stock
}

func TestInventoryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryRepositoryIntegrationTestSuite))
}
