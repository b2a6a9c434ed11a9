package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/postgres/shipmentrepo"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"

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

// ShipmentRepositoryIntegrationTestSuite verifies shipment persistence
// behavior against a real PostgreSQL container.
type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *shipmentrepo.GormShipmentRepository
	tracker    *MockAggregateTracker
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&shipmentrepo.ShipmentDTO{}))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.db, suite.tracker)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) newTestShipment(trackingNumber string) *shipment.Shipment {
	cod, err := kernel.NewMoney(150000)
	suite.Require().NoError(err)

	pickup, err := kernel.NewGeoPoint(10.776, 106.700)
	suite.Require().NoError(err)

	delivery, err := kernel.NewGeoPoint(10.801, 106.650)
	suite.Require().NoError(err)

	sh, err := shipment.NewShipment(
		kernel.NewUUID(), trackingNumber, kernel.NewUUID(), cod, pickup, delivery)
	suite.Require().NoError(err)

	return sh
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAddAndGetByTrackingNumber() {
	ctx := context.Background()
	sh := suite.newTestShipment("SHP-0INTTEST0001")

	suite.Require().NoError(suite.repository.Add(ctx, sh))

	loaded, err := suite.repository.GetByTrackingNumber(ctx, "SHP-0INTTEST0001")
	suite.Require().NoError(err)
	suite.Equal(sh.ID().String(), loaded.ID().String())
	suite.Equal(shipment.Pending, loaded.Status())
	suite.Equal(int64(150000), loaded.CODAmount().Amount())
	suite.InDelta(10.776, loaded.PickupPoint().Latitude(), 1e-9)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetByTrackingNumber_NotFound() {
	_, err := suite.repository.GetByTrackingNumber(context.Background(), "SHP-MISSING00000")
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_PersistsClearedRedeliverySchedule() {
	ctx := context.Background()
	sh := suite.newTestShipment("SHP-0INTTEST0002")
	shipperID := kernel.NewUUID()

	suite.Require().NoError(sh.Assign(shipperID))
	suite.Require().NoError(suite.repository.Add(ctx, sh))

	walkTo := func(target shipment.Status) {
		_, err := sh.AdvanceTo(target)
		suite.Require().NoError(err)
	}
	walkTo(shipment.PickedUp)
	walkTo(shipment.OutForDelivery)

	redeliverAt := time.Now().Add(time.Hour).UTC()
	outcome, err := sh.RegisterDeliveryFailure("customer absent", redeliverAt)
	suite.Require().NoError(err)
	suite.Equal(shipment.OutcomeRedeliveryScheduled, outcome)
	suite.Require().NoError(suite.repository.Update(ctx, sh))

	// Redelivery succeeds; the schedule column must actually go back to NULL.
	changed, err := sh.StartRedelivery()
	suite.Require().NoError(err)
	suite.True(changed)
	_, err = sh.MarkDelivered(true)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, sh))

	loaded, err := suite.repository.GetByTrackingNumber(ctx, "SHP-0INTTEST0002")
	suite.Require().NoError(err)
	suite.Equal(shipment.Delivered, loaded.Status())
	suite.True(loaded.CODCollected())
	suite.Nil(loaded.ScheduledRedeliveryAt())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetActiveBySubOrder_SkipsFinalShipments() {
	ctx := context.Background()
	subOrderID := kernel.NewUUID()

	cod := kernel.ZeroMoney()
	pickup, _ := kernel.NewGeoPoint(10.776, 106.700)
	delivery, _ := kernel.NewGeoPoint(10.801, 106.650)

	finished, err := shipment.RestoreShipment(
		kernel.NewUUID(), "SHP-0INTTEST0003", subOrderID, nil,
		shipment.Returned, cod, false, 3, "address not found", nil,
		"3 failed delivery attempts, last: address not found", nil, pickup, delivery)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, finished))

	_, err = suite.repository.GetActiveBySubOrder(ctx, subOrderID)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	active := suite.newTestShipment("SHP-0INTTEST0004")
	suite.Require().NoError(suite.repository.Add(ctx, active))

	// Belongs to another sub-order, still not found.
	_, err = suite.repository.GetActiveBySubOrder(ctx, subOrderID)
	suite.Require().Error(err)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetDueRedeliveries() {
	ctx := context.Background()
	now := time.Now().UTC()

	pickup, _ := kernel.NewGeoPoint(10.776, 106.700)
	delivery, _ := kernel.NewGeoPoint(10.801, 106.650)
	shipperID := kernel.NewUUID()

	due := now.Add(-time.Minute)
	dueShipment, err := shipment.RestoreShipment(
		kernel.NewUUID(), "SHP-0INTTEST0005", kernel.NewUUID(), &shipperID,
		shipment.PendingRedelivery, kernel.ZeroMoney(), false, 1, "customer absent", &due, "", nil,
		pickup, delivery)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, dueShipment))

	notYet := now.Add(time.Hour)
	futureShipment, err := shipment.RestoreShipment(
		kernel.NewUUID(), "SHP-0INTTEST0006", kernel.NewUUID(), &shipperID,
		shipment.PendingRedelivery, kernel.ZeroMoney(), false, 1, "customer absent", &notYet, "", nil,
		pickup, delivery)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, futureShipment))

	shipments, err := suite.repository.GetDueRedeliveries(ctx, now)
	suite.Require().NoError(err)
	suite.Require().Len(shipments, 1)
	suite.Equal("SHP-0INTTEST0005", shipments[0].TrackingNumber())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetAssignedByShipper() {
	ctx := context.Background()
	shipperID := kernel.NewUUID()

	carried := suite.newTestShipment("SHP-0INTTEST0007")
	suite.Require().NoError(carried.Assign(shipperID))
	suite.Require().NoError(suite.repository.Add(ctx, carried))

	other := suite.newTestShipment("SHP-0INTTEST0008")
	suite.Require().NoError(other.Assign(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	shipments, err := suite.repository.GetAssignedByShipper(ctx, shipperID)
	suite.Require().NoError(err)
	suite.Require().Len(shipments, 1)
	suite.Equal(carried.TrackingNumber(), shipments[0].TrackingNumber())
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
