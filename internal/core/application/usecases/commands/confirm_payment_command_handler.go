package commands

import (
	"context"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/order"
	"github.com/TienDattttt/shoppi-sub004/internal/core/events"
	"github.com/TienDattttt/shoppi-sub004/internal/core/ports"
)

// ConfirmPaymentCommandHandler moves a paid order into processing and kicks
// off fulfillment: one shipment create request per sub-order.
//
// Idempotent: an order that is already paid is left untouched and the
// customer is not notified again, but the shipment create requests are
// re-published on every delivery. Publishing happens after commit, so a
// publish failure must be recoverable through redelivery; the duplicate
// guard lives in shipment creation, which no-ops on an existing active
// shipment.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	notifier   ports.Notifier
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmations.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
	}
}

// Handle processes the payment confirmation.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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

	alreadyPaid := ord.IsPaid()

	if !alreadyPaid {
		if err = ord.ConfirmPayment(); err != nil {
			return err
		}
	}

	subOrders, err := uow.SubOrderRepository().GetAllByOrder(ctx, ord.ID())
	if err != nil {
		return err
	}

	if !alreadyPaid {
		if err = uow.OrderRepository().Update(ctx, ord); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, so := range subOrders {
		codAmount := int64(0)
		if ord.PaymentMethod() == order.PaymentMethodCOD {
			codAmount = so.Total().Amount()
		}

		if err = h.publisher.Publish(ctx, events.ShipmentCreateRequest, events.ShipmentCreateRequestPayload{
			OrderID:    ord.ID().String(),
			SubOrderID: so.ID().String(),
			CODAmount:  codAmount,
		}); err != nil {
			return err
		}

		if !alreadyPaid {
			h.notifier.NotifyPartner(ctx, so.ShopID(), notification.KindPaymentConfirmed, notification.Params{
				"order_id":     ord.ID().String(),
				"sub_order_id": so.ID().String(),
			})
		}
	}

	if !alreadyPaid {
		h.notifier.NotifyCustomer(ctx, ord.CustomerID(), notification.KindPaymentConfirmed, notification.Params{
			"order_id": ord.ID().String(),
			"amount":   ord.GrandTotal().String(),
		})
	}

	return nil
}
