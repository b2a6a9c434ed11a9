package commands_test

import (
	"testing"

	"github.com/TienDattttt/shoppi-sub004/internal/core/application/usecases/commands"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/order"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"
	"github.com/TienDattttt/shoppi-sub004/internal/core/events"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPendingPaymentOrder(t *testing.T) *order.Order {
	t.Helper()

	itemsTotal, _ := kernel.NewMoney(300000)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		itemsTotal, kernel.ZeroMoney(), order.PaymentMethodCOD)
	require.NoError(t, err)

	return o
}

func newPendingSubOrderFor(t *testing.T, o *order.Order) *suborder.SubOrder {
	t.Helper()

	total, _ := kernel.NewMoney(300000)
	so, err := suborder.NewSubOrder(kernel.NewUUID(), o.ID(), kernel.NewUUID(), total,
		"12 Shop Street", "34 Customer Lane")
	require.NoError(t, err)

	return so
}

func TestConfirmPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := newPendingPaymentOrder(t)
	testSubOrder := newPendingSubOrderFor(t, testOrder)
	cmd, err := commands.NewConfirmPaymentCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	subOrderRepo := new(MockSubOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("SubOrderRepository").Return(subOrderRepo).Once(),
		subOrderRepo.On("GetAllByOrder", ctx, testOrder.ID()).
			Return([]*suborder.SubOrder{testSubOrder}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, events.ShipmentCreateRequest,
		mock.AnythingOfType("events.ShipmentCreateRequestPayload")).Return(nil).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyPartner", ctx, testSubOrder.ShopID(), mock.Anything, mock.Anything).Once()
	notifier.On("NotifyCustomer", ctx, testOrder.CustomerID(), mock.Anything, mock.Anything).Once()

	handler := commands.NewConfirmPaymentCommandHandler(factory, publisher, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Processing, testOrder.Status())
	assert.True(t, testOrder.IsPaid())

	publishedPayload := publisher.Calls[0].Arguments[2].(events.ShipmentCreateRequestPayload)
	assert.Equal(t, testSubOrder.ID().String(), publishedPayload.SubOrderID)
	assert.Equal(t, int64(300000), publishedPayload.CODAmount)

	orderRepo.AssertExpectations(t)
	subOrderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestConfirmPaymentCommandHandler_Handle_AlreadyPaidRepublishesCreateRequests(t *testing.T) {
	ctx := t.Context()

	testOrder := newPendingPaymentOrder(t)
	require.NoError(t, testOrder.ConfirmPayment())
	testSubOrder := newPendingSubOrderFor(t, testOrder)
	cmd, err := commands.NewConfirmPaymentCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	subOrderRepo := new(MockSubOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("SubOrderRepository").Return(subOrderRepo).Once(),
		subOrderRepo.On("GetAllByOrder", ctx, testOrder.ID()).
			Return([]*suborder.SubOrder{testSubOrder}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, events.ShipmentCreateRequest,
		mock.AnythingOfType("events.ShipmentCreateRequestPayload")).Return(nil).Once()

	notifier := new(MockNotifier)

	handler := commands.NewConfirmPaymentCommandHandler(factory, publisher, notifier)
	err = handler.Handle(ctx, cmd)

	// A redelivery after a failed publish still produces the create request;
	// the order row is not rewritten and nobody is notified twice. Shipment
	// creation dedupes on its side.
	require.NoError(t, err)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	publisher.AssertExpectations(t)
	notifier.AssertNotCalled(t, "NotifyCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyPartner", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestConfirmPaymentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ConfirmPaymentCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewConfirmPaymentCommandHandler(factory, new(MockEventPublisher), new(MockNotifier))
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrConfirmPaymentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestConfirmPaymentCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewConfirmPaymentCommand(orderID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmPaymentCommandHandler(factory, new(MockEventPublisher), new(MockNotifier))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
