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

// ApplyShipmentStatusCommandHandler applies a courier movement status to the
// shipment and propagates it through the mapping tables to the sub-order and
// the order. Read-then-write inside one transaction: a redelivered or
// out-of-order event settles as a no-op instead of regressing state.
type ApplyShipmentStatusCommandHandler struct {
	uowFactory ShipmentUoWFactory
	mapper     services.StatusMapper
	notifier   ports.Notifier
	now        func() time.Time
}

// NewApplyShipmentStatusCommandHandler creates a handler for courier status
// updates.
func NewApplyShipmentStatusCommandHandler(
	uowFactory ShipmentUoWFactory,
	notifier ports.Notifier,
	now func() time.Time,
) ApplyShipmentStatusCommandHandler {
	if now == nil {
		now = time.Now
	}

	return ApplyShipmentStatusCommandHandler{
		uowFactory: uowFactory,
		mapper:     services.NewStatusMapper(),
		notifier:   notifier,
		now:        now,
	}
}

// Handle processes the status update.
func (h *ApplyShipmentStatusCommandHandler) Handle(ctx context.Context, cmd ApplyShipmentStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	subOrderTarget, err := h.mapper.SubOrderStatusFor(cmd.Status())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sh, err := uow.ShipmentRepository().GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return err
	}

	var changed bool
	if cmd.Status() == shipment.Returned {
		changed, err = sh.MarkReturned(h.now())
	} else {
		changed, err = sh.AdvanceTo(cmd.Status())
	}
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

	if _, err = so.AdvanceTo(subOrderTarget); err != nil {
		return err
	}

	ord, err := uow.OrderRepository().Get(ctx, so.OrderID())
	if err != nil {
		return err
	}

	if orderTarget, ok := h.mapper.OrderStatusFor(so.Status()); ok {
		if _, err = ord.AdvanceTo(orderTarget); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, ord); err != nil {
			return err
		}
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

	h.announce(ctx, ord.CustomerID(), so, cmd)
	return nil
}

func (h *ApplyShipmentStatusCommandHandler) announce(
	ctx context.Context,
	customerID kernel.UUID,
	so *suborder.SubOrder,
	cmd ApplyShipmentStatusCommand,
) {
	params := notification.Params{
		"tracking_number": cmd.TrackingNumber(),
		"status":          cmd.Status().String(),
	}

	switch cmd.Status() {
	case shipment.PickedUp:
		h.notifier.NotifyPartner(ctx, so.ShopID(), notification.KindShipmentProgress, params)
	case shipment.OutForDelivery:
		h.notifier.NotifyCustomer(ctx, customerID, notification.KindShipmentProgress, params)
	}
}
