package commands

import (
	"context"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/services"
	"github.com/TienDattttt/shoppi-sub004/internal/core/ports"
)

// FailDeliveryCommandHandler records a failed doorstep attempt. While
// attempts remain, the shipment is queued for redelivery on the next business
// morning and the customer is told when to expect it; once attempts are
// exhausted the parcel goes back to the shop and the partner is told.
//
// Idempotent: a redelivered failure event with the same reason against a
// shipment already awaiting redelivery does not burn an extra attempt.
type FailDeliveryCommandHandler struct {
	uowFactory ShipmentUoWFactory
	scheduler  services.RedeliveryScheduler
	notifier   ports.Notifier
	now        func() time.Time
}

// NewFailDeliveryCommandHandler creates a handler for delivery failures.
func NewFailDeliveryCommandHandler(
	uowFactory ShipmentUoWFactory,
	notifier ports.Notifier,
	now func() time.Time,
) FailDeliveryCommandHandler {
	if now == nil {
		now = time.Now
	}

	return FailDeliveryCommandHandler{
		uowFactory: uowFactory,
		scheduler:  services.NewRedeliveryScheduler(),
		notifier:   notifier,
		now:        now,
	}
}

// Handle processes the failed attempt.
func (h *FailDeliveryCommandHandler) Handle(ctx context.Context, cmd FailDeliveryCommand) error {
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

	nextAttempt := h.scheduler.NextAttempt(h.now())
	outcome, err := sh.RegisterDeliveryFailure(cmd.Reason(), nextAttempt)
	if err != nil {
		return err
	}
	if outcome == shipment.OutcomeAlreadyRecorded {
		return nil
	}

	so, err := uow.SubOrderRepository().Get(ctx, sh.SubOrderID())
	if err != nil {
		return err
	}

	subOrderTarget := suborder.DeliveryFailed
	if outcome == shipment.OutcomeReturning {
		subOrderTarget = suborder.Returning
	}
	if _, err = so.AdvanceTo(suborder.DeliveryFailed); err != nil {
		return err
	}
	if subOrderTarget == suborder.Returning {
		if _, err = so.AdvanceTo(suborder.Returning); err != nil {
			return err
		}
	}

	ord, err := uow.OrderRepository().Get(ctx, so.OrderID())
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, sh); err != nil {
		return err
	}
	if err = uow.SubOrderRepository().Update(ctx, so); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.announce(ctx, ord.CustomerID(), sh, so, outcome, nextAttempt, cmd.Reason())
	return nil
}

func (h *FailDeliveryCommandHandler) announce(
	ctx context.Context,
	customerID kernel.UUID,
	sh *shipment.Shipment,
	so *suborder.SubOrder,
	outcome shipment.FailureOutcome,
	nextAttempt time.Time,
	reason string,
) {
	if outcome == shipment.OutcomeReturning {
		h.notifier.NotifyPartner(ctx, so.ShopID(), notification.KindParcelReturning, notification.Params{
			"tracking_number": sh.TrackingNumber(),
			"reason":          sh.ReturnReason(),
		})
		return
	}

	h.notifier.NotifyCustomer(ctx, customerID, notification.KindRedeliveryScheduled, notification.Params{
		"tracking_number": sh.TrackingNumber(),
		"reason":          reason,
		"next_attempt":    nextAttempt.Format("Mon, 02 Jan 2006 15:04"),
	})
}
