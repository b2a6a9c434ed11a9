package commands_test

import (
	"context"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/application/usecases/commands"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/codledger"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/order"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/services"
	"github.com/TienDattttt/shoppi-sub004/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockSubOrderRepository struct{ mock.Mock }

func (m *MockSubOrderRepository) Add(ctx context.Context, so *suborder.SubOrder) error {
	args := m.Called(ctx, so)
	return args.Error(0)
}

func (m *MockSubOrderRepository) Update(ctx context.Context, so *suborder.SubOrder) error {
	args := m.Called(ctx, so)
	return args.Error(0)
}

func (m *MockSubOrderRepository) Get(ctx context.Context, id kernel.UUID) (*suborder.SubOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*suborder.SubOrder), args.Error(1)
}

func (m *MockSubOrderRepository) GetAllByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*suborder.SubOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*suborder.SubOrder), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, sh *shipment.Shipment) error {
	args := m.Called(ctx, sh)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, sh *shipment.Shipment) error {
	args := m.Called(ctx, sh)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByTrackingNumber(
	ctx context.Context, trackingNumber string,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetActiveBySubOrder(
	ctx context.Context, subOrderID kernel.UUID,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, subOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetDueRedeliveries(
	ctx context.Context, now time.Time,
) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAssignedByShipper(
	ctx context.Context, shipperID kernel.UUID,
) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, shipperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockCODLedgerRepository struct{ mock.Mock }

func (m *MockCODLedgerRepository) GetByShipper(
	ctx context.Context, shipperID kernel.UUID,
) (*codledger.CODLedger, error) {
	args := m.Called(ctx, shipperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*codledger.CODLedger), args.Error(1)
}

func (m *MockCODLedgerRepository) Upsert(ctx context.Context, l *codledger.CODLedger) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, sn *notification.ScheduledNotification) error {
	args := m.Called(ctx, sn)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, sn *notification.ScheduledNotification) error {
	args := m.Called(ctx, sn)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetDue(
	ctx context.Context, now time.Time,
) ([]*notification.ScheduledNotification, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.ScheduledNotification), args.Error(1)
}

// MockUoW satisfies every composite unit of work interface in this package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) SubOrderRepository() ports.SubOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.SubOrderRepository)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) CODLedgerRepository() ports.CODLedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.CODLedgerRepository)
}

func (m *MockUoW) ScheduledNotificationRepository() ports.ScheduledNotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.ScheduledNotificationRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event string, data any) error {
	args := m.Called(ctx, event, data)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyCustomer(
	ctx context.Context, customerID kernel.UUID, kind notification.Kind, params notification.Params,
) {
	m.Called(ctx, customerID, kind, params)
}

func (m *MockNotifier) NotifyPartner(
	ctx context.Context, shopID kernel.UUID, kind notification.Kind, params notification.Params,
) {
	m.Called(ctx, shopID, kind, params)
}

func (m *MockNotifier) NotifyShipper(
	ctx context.Context, shipperID kernel.UUID, kind notification.Kind, params notification.Params,
) {
	m.Called(ctx, shipperID, kind, params)
}

func (m *MockNotifier) AlertAdmin(ctx context.Context, subject string, detail string) {
	m.Called(ctx, subject, detail)
}

type MockStockReleaser struct{ mock.Mock }

func (m *MockStockReleaser) ReleaseStock(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockGeoResolver struct{ mock.Mock }

func (m *MockGeoResolver) Resolve(ctx context.Context, address string) (kernel.GeoPoint, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

type MockShipperRoster struct{ mock.Mock }

func (m *MockShipperRoster) AvailableShippers(
	ctx context.Context, near kernel.GeoPoint,
) ([]services.ShipperCandidate, error) {
	args := m.Called(ctx, near)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.ShipperCandidate), args.Error(1)
}
