package commands

import (
	"context"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/core/events"
	"github.com/TienDattttt/shoppi-sub004/internal/core/ports"
)

// DispatchRedeliveriesCommandHandler finds shipments whose redelivery slot
// has arrived, publishes the out-for-delivery intent back onto the broker and
// pings the shipper. The status change itself travels through the normal
// consumer path so there is a single code path for shipment movement.
type DispatchRedeliveriesCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
	notifier   ports.Notifier
	now        func() time.Time
}

// NewDispatchRedeliveriesCommandHandler creates a handler for the redelivery
// cron job.
func NewDispatchRedeliveriesCommandHandler(
	uowFactory ShipmentUoWFactory,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	now func() time.Time,
) DispatchRedeliveriesCommandHandler {
	if now == nil {
		now = time.Now
	}

	return DispatchRedeliveriesCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
		now:        now,
	}
}

// Handle publishes a redelivery intent for every due shipment.
func (h *DispatchRedeliveriesCommandHandler) Handle(ctx context.Context, cmd DispatchRedeliveriesCommand) error {
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

	due, err := uow.ShipmentRepository().GetDueRedeliveries(ctx, h.now())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, sh := range due {
		if err = h.publisher.Publish(ctx, events.ShipmentStatusChanged, events.ShipmentStatusPayload{
			TrackingNumber: sh.TrackingNumber(),
			Status:         shipment.OutForDelivery.String(),
		}); err != nil {
			return err
		}

		if shipperID := sh.Shipper(); shipperID != nil {
			h.notifier.NotifyShipper(ctx, *shipperID, notification.KindShipmentProgress, notification.Params{
				"tracking_number": sh.TrackingNumber(),
				"status":          "redelivery due",
			})
		}
	}

	return nil
}
