package commands_test

import (
	"errors"
	"testing"

	"github.com/TienDattttt/shoppi-sub004/internal/core/application/usecases/commands"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFailPaymentCommandHandler_Handle_Failure(t *testing.T) {
	ctx := t.Context()

	testOrder := newPendingPaymentOrder(t)
	cmd, err := commands.NewFailPaymentCommand(testOrder.ID(), "card declined")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	stockReleaser := new(MockStockReleaser)
	stockReleaser.On("ReleaseStock", ctx, testOrder.ID()).Return(nil).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyCustomer", ctx, testOrder.CustomerID(), mock.Anything, mock.Anything).Once()

	handler := commands.NewFailPaymentCommandHandler(factory, stockReleaser, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PaymentFailed, testOrder.Status())
	uow.AssertExpectations(t)
	stockReleaser.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestFailPaymentCommandHandler_Handle_AlreadyFailedRetriesStockRelease(t *testing.T) {
	ctx := t.Context()

	testOrder := newPendingPaymentOrder(t)
	require.NoError(t, testOrder.FailPayment())
	cmd, err := commands.NewFailPaymentCommand(testOrder.ID(), "card declined")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	stockReleaser := new(MockStockReleaser)
	stockReleaser.On("ReleaseStock", ctx, testOrder.ID()).Return(nil).Once()

	notifier := new(MockNotifier)

	handler := commands.NewFailPaymentCommandHandler(factory, stockReleaser, notifier)
	err = handler.Handle(ctx, cmd)

	// A redelivery after a failed release call still releases the stock; the
	// order row is untouched and the customer is not notified twice.
	require.NoError(t, err)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	stockReleaser.AssertExpectations(t)
	notifier.AssertNotCalled(t, "NotifyCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestFailPaymentCommandHandler_Handle_StockReleaseErrorRequeues(t *testing.T) {
	ctx := t.Context()

	testOrder := newPendingPaymentOrder(t)
	cmd, err := commands.NewFailPaymentCommand(testOrder.ID(), "card declined")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	releaseErr := errors.New("catalog unavailable")
	stockReleaser := new(MockStockReleaser)
	stockReleaser.On("ReleaseStock", ctx, testOrder.ID()).Return(releaseErr).Once()

	notifier := new(MockNotifier)

	handler := commands.NewFailPaymentCommandHandler(factory, stockReleaser, notifier)
	err = handler.Handle(ctx, cmd)

	// The error surfaces so the broker redelivers and the release is retried.
	require.Error(t, err)
	require.ErrorIs(t, err, releaseErr)
	notifier.AssertNotCalled(t, "NotifyCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
