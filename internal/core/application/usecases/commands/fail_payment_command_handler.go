package commands

import (
	"context"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/order"
	"github.com/TienDattttt/shoppi-sub004/internal/core/ports"
)

// FailPaymentCommandHandler records a failed payment, releases the stock
// reserved for the order and tells the customer.
//
// The stock release runs after commit and is retried on every redelivery,
// including when the order is already marked failed: the catalog call is
// retry-safe by contract, and skipping it would strand the reservation
// whenever the first attempt's release failed.
type FailPaymentCommandHandler struct {
	uowFactory    OrderUoWFactory
	stockReleaser ports.StockReleaser
	notifier      ports.Notifier
}

// NewFailPaymentCommandHandler creates a handler for payment failures.
func NewFailPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	stockReleaser ports.StockReleaser,
	notifier ports.Notifier,
) FailPaymentCommandHandler {
	return FailPaymentCommandHandler{
		uowFactory:    uowFactory,
		stockReleaser: stockReleaser,
		notifier:      notifier,
	}
}

// Handle processes the payment failure.
func (h *FailPaymentCommandHandler) Handle(ctx context.Context, cmd FailPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	alreadyFailed := ord.Status() == order.PaymentFailed

	if !alreadyFailed {
		if err = ord.FailPayment(); err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, ord); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.stockReleaser.ReleaseStock(ctx, ord.ID()); err != nil {
		return err
	}

	if !alreadyFailed {
		h.notifier.NotifyCustomer(ctx, ord.CustomerID(), notification.KindPaymentFailed, notification.Params{
			"order_id": ord.ID().String(),
			"reason":   cmd.Reason(),
		})
	}

	return nil
}
