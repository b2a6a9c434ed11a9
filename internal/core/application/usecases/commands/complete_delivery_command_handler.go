package commands

import (
	"context"
	"errors"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/codledger"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/order"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/services"
	"github.com/TienDattttt/shoppi-sub004/internal/core/ports"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler settles a successful delivery: shipment and
// sub-order move to delivered, collected cash accrues to the shipper's daily
// ledger, the completion policy re-evaluates the parent order and a rating
// prompt is queued for the customer.
//
// Idempotent end to end: a shipment that is already delivered short-circuits
// before any ledger accrual, so a redelivered event cannot double-count cash
// or queue a second rating prompt.
type CompleteDeliveryCommandHandler struct {
	uowFactory        SettlementUoWFactory
	policy            services.CompletionPolicy
	notifier          ports.Notifier
	ratingPromptDelay time.Duration
	now               func() time.Time
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery
// completions. ratingPromptDelay is how long after delivery the customer is
// asked to rate the shop.
func NewCompleteDeliveryCommandHandler(
	uowFactory SettlementUoWFactory,
	notifier ports.Notifier,
	ratingPromptDelay time.Duration,
	now func() time.Time,
) CompleteDeliveryCommandHandler {
	if now == nil {
		now = time.Now
	}

	return CompleteDeliveryCommandHandler{
		uowFactory:        uowFactory,
		policy:            services.NewCompletionPolicy(),
		notifier:          notifier,
		ratingPromptDelay: ratingPromptDelay,
		now:               now,
	}
}

// Handle processes the delivery completion.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	sh, err := uow.ShipmentRepository().GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return err
	}

	if sh.Status() == shipment.Delivered {
		return nil
	}

	changed, err := sh.MarkDelivered(cmd.CODCollected())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	so, err := uow.SubOrderRepository().Get(ctx, sh.SubOrderID())
	if err != nil {
		return err
	}
	if _, err = so.AdvanceTo(suborder.Delivered); err != nil {
		return err
	}

	if err = h.accrueCOD(ctx, uow, sh); err != nil {
		return err
	}

	ord, err := uow.OrderRepository().Get(ctx, so.OrderID())
	if err != nil {
		return err
	}

	siblings, err := uow.SubOrderRepository().GetAllByOrder(ctx, ord.ID())
	if err != nil {
		return err
	}
	// The loaded sibling list still carries the pre-update status of this
	// sub-order; evaluate completion against the in-memory state.
	for i, sibling := range siblings {
		if sibling.ID().IsEqual(so.ID()) {
			siblings[i] = so
		}
	}

	orderCompleted, err := h.policy.CheckAndComplete(ord, siblings)
	if err != nil {
		return err
	}

	if err = h.queueRatingPrompt(ctx, uow, ord.CustomerID(), so.ShopID(), sh.TrackingNumber()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, sh); err != nil {
		return err
	}
	if err = uow.SubOrderRepository().Update(ctx, so); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.announce(ctx, ord, so, sh, orderCompleted)
	return nil
}

// accrueCOD adds collected doorstep cash to the shipper's ledger for the
// current calendar day, opening the ledger on first accrual.
func (h *CompleteDeliveryCommandHandler) accrueCOD(
	ctx context.Context, uow SettlementUoW, sh *shipment.Shipment,
) error {
	if !sh.IsCOD() || !sh.CODCollected() || sh.Shipper() == nil {
		return nil
	}

	shipperID := *sh.Shipper()
	ledger, err := uow.CODLedgerRepository().GetByShipper(ctx, shipperID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		ledger, err = codledger.NewCODLedger(shipperID, h.now())
	}
	if err != nil {
		return err
	}

	ledger.Accrue(sh.CODAmount(), h.now())
	return uow.CODLedgerRepository().Upsert(ctx, ledger)
}

func (h *CompleteDeliveryCommandHandler) queueRatingPrompt(
	ctx context.Context,
	uow SettlementUoW,
	customerID kernel.UUID,
	shopID kernel.UUID,
	trackingNumber string,
) error {
	prompt, err := notification.NewScheduledNotification(
		kernel.NewUUID(),
		notification.RoleCustomer,
		customerID,
		notification.KindRatingPrompt,
		notification.Params{
			"shop_id":         shopID.String(),
			"tracking_number": trackingNumber,
		},
		h.now().Add(h.ratingPromptDelay),
	)
	if err != nil {
		return err
	}

	return uow.ScheduledNotificationRepository().Add(ctx, prompt)
}

func (h *CompleteDeliveryCommandHandler) announce(
	ctx context.Context,
	ord *order.Order,
	so *suborder.SubOrder,
	sh *shipment.Shipment,
	orderCompleted bool,
) {
	h.notifier.NotifyPartner(ctx, so.ShopID(), notification.KindDeliveryCompleted, notification.Params{
		"tracking_number": sh.TrackingNumber(),
		"cod_amount":      sh.CODAmount().String(),
	})
	h.notifier.NotifyCustomer(ctx, ord.CustomerID(), notification.KindDeliveryCompleted, notification.Params{
		"tracking_number": sh.TrackingNumber(),
	})

	if orderCompleted {
		h.notifier.NotifyCustomer(ctx, ord.CustomerID(), notification.KindOrderCompleted, notification.Params{
			"order_id": ord.ID().String(),
		})
	}
}
