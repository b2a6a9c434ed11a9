package commands_test

import (
	"testing"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/application/usecases/commands"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/codledger"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/order"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoreCODShipment(t *testing.T, shipperID kernel.UUID, subOrderID kernel.UUID) *shipment.Shipment {
	t.Helper()

	cod, _ := kernel.NewMoney(200000)
	sh, err := shipment.RestoreShipment(
		kernel.NewUUID(), testTrackingNumber, subOrderID, &shipperID,
		shipment.OutForDelivery, cod, false, 0, "", nil, "", nil,
		kernel.GeoPoint{}, kernel.GeoPoint{})
	require.NoError(t, err)

	return sh
}

func TestCompleteDeliveryCommandHandler_Handle_CODSettlement(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

	shipperID := kernel.NewUUID()
	testSubOrder := restoreSubOrderIn(t, suborder.Shipping)
	testShipment := restoreCODShipment(t, shipperID, testSubOrder.ID())
	testOrder := restoreOrderIn(t, testSubOrder.OrderID(), order.Shipping)

	// 500k collected yesterday must not leak into today's balance.
	yesterday := now.AddDate(0, 0, -1)
	staleMoney, _ := kernel.NewMoney(500000)
	staleLedger, err := codledger.RestoreCODLedger(shipperID, yesterday, staleMoney, 4)
	require.NoError(t, err)

	cmd, err := commands.NewCompleteDeliveryCommand(testTrackingNumber, true)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	subOrderRepo := new(MockSubOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	ledgerRepo := new(MockCODLedgerRepository)
	notificationRepo := new(MockNotificationRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("SubOrderRepository").Return(subOrderRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CODLedgerRepository").Return(ledgerRepo)
	uow.On("ScheduledNotificationRepository").Return(notificationRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	shipmentRepo.On("GetByTrackingNumber", ctx, testTrackingNumber).Return(testShipment, nil).Once()
	subOrderRepo.On("Get", ctx, testSubOrder.ID()).Return(testSubOrder, nil).Once()
	ledgerRepo.On("GetByShipper", ctx, shipperID).Return(staleLedger, nil).Once()
	ledgerRepo.On("Upsert", ctx, mock.AnythingOfType("*codledger.CODLedger")).Return(nil).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	subOrderRepo.On("GetAllByOrder", ctx, testOrder.ID()).
		Return([]*suborder.SubOrder{testSubOrder}, nil).Once()
	notificationRepo.On("Add", ctx, mock.AnythingOfType("*notification.ScheduledNotification")).
		Return(nil).Once()
	shipmentRepo.On("Update", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()
	subOrderRepo.On("Update", ctx, mock.AnythingOfType("*suborder.SubOrder")).Return(nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyPartner", ctx, testSubOrder.ShopID(), notification.KindDeliveryCompleted, mock.Anything).Once()
	notifier.On("NotifyCustomer", ctx, testOrder.CustomerID(), notification.KindDeliveryCompleted, mock.Anything).Once()
	notifier.On("NotifyCustomer", ctx, testOrder.CustomerID(), notification.KindOrderCompleted, mock.Anything).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory, notifier, 24*time.Hour,
		func() time.Time { return now })
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.Delivered, testShipment.Status())
	assert.Equal(t, suborder.Delivered, testSubOrder.Status())
	assert.Equal(t, order.Completed, testOrder.Status())

	// Day rollover: yesterday's 500k reset, only today's 200k remains.
	assert.Equal(t, int64(200000), staleLedger.CollectedTotal().Amount())
	assert.Equal(t, 1, staleLedger.ShipmentCount())

	// Rating prompt queued for 24h after delivery.
	queued := notificationRepo.Calls[0].Arguments[1].(*notification.ScheduledNotification)
	assert.Equal(t, notification.KindRatingPrompt, queued.Kind())
	assert.Equal(t, now.Add(24*time.Hour), queued.ScheduledAt())

	uow.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_FirstCODAccrualOpensLedger(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

	shipperID := kernel.NewUUID()
	testSubOrder := restoreSubOrderIn(t, suborder.Shipping)
	testShipment := restoreCODShipment(t, shipperID, testSubOrder.ID())
	testOrder := restoreOrderIn(t, testSubOrder.OrderID(), order.Shipping)

	cmd, err := commands.NewCompleteDeliveryCommand(testTrackingNumber, true)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	subOrderRepo := new(MockSubOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	ledgerRepo := new(MockCODLedgerRepository)
	notificationRepo := new(MockNotificationRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("SubOrderRepository").Return(subOrderRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CODLedgerRepository").Return(ledgerRepo)
	uow.On("ScheduledNotificationRepository").Return(notificationRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	shipmentRepo.On("GetByTrackingNumber", ctx, testTrackingNumber).Return(testShipment, nil).Once()
	subOrderRepo.On("Get", ctx, testSubOrder.ID()).Return(testSubOrder, nil).Once()
	ledgerRepo.On("GetByShipper", ctx, shipperID).
		Return(nil, errs.NewObjectNotFoundError("cod ledger", shipperID.String())).Once()
	ledgerRepo.On("Upsert", ctx, mock.AnythingOfType("*codledger.CODLedger")).Return(nil).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	subOrderRepo.On("GetAllByOrder", ctx, testOrder.ID()).
		Return([]*suborder.SubOrder{testSubOrder}, nil).Once()
	notificationRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	shipmentRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	subOrderRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	orderRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyPartner", ctx, mock.Anything, mock.Anything, mock.Anything)
	notifier.On("NotifyCustomer", ctx, mock.Anything, mock.Anything, mock.Anything)

	handler := commands.NewCompleteDeliveryCommandHandler(factory, notifier, time.Hour,
		func() time.Time { return now })
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	opened := ledgerRepo.Calls[1].Arguments[1].(*codledger.CODLedger)
	assert.Equal(t, int64(200000), opened.CollectedTotal().Amount())
	assert.Equal(t, 1, opened.ShipmentCount())
}

func TestCompleteDeliveryCommandHandler_Handle_AlreadyDelivered(t *testing.T) {
	ctx := t.Context()

	shipperID := kernel.NewUUID()
	cod, _ := kernel.NewMoney(200000)
	testShipment, err := shipment.RestoreShipment(
		kernel.NewUUID(), testTrackingNumber, kernel.NewUUID(), &shipperID,
		shipment.Delivered, cod, true, 0, "", nil, "", nil,
		kernel.GeoPoint{}, kernel.GeoPoint{})
	require.NoError(t, err)

	cmd, err := commands.NewCompleteDeliveryCommand(testTrackingNumber, true)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	ledgerRepo := new(MockCODLedgerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetByTrackingNumber", ctx, testTrackingNumber).Return(testShipment, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory, new(MockNotifier), time.Hour, nil)
	err = handler.Handle(ctx, cmd)

	// No double ledger accrual on a redelivered completion event.
	require.NoError(t, err)
	ledgerRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
