package commands

import (
	"context"
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/services"
	"github.com/TienDattttt/shoppi-sub004/internal/core/events"
	"github.com/TienDattttt/shoppi-sub004/internal/core/ports"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
)

// ReassignShipperCommandHandler hands a rejected shipment to the next
// eligible shipper. When nobody else is available the shipment goes back to
// the dispatch pool and the partner gets a delay notice; the handler still
// succeeds so the rejection event is not requeued forever.
type ReassignShipperCommandHandler struct {
	uowFactory ShipmentUoWFactory
	roster     ports.ShipperRoster
	dispatcher services.ShipperDispatcher
	publisher  ports.EventPublisher
	notifier   ports.Notifier
}

// NewReassignShipperCommandHandler creates a handler for shipper rejections.
func NewReassignShipperCommandHandler(
	uowFactory ShipmentUoWFactory,
	roster ports.ShipperRoster,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
) ReassignShipperCommandHandler {
	return ReassignShipperCommandHandler{
		uowFactory: uowFactory,
		roster:     roster,
		dispatcher: services.NewShipperDispatcher(),
		publisher:  publisher,
		notifier:   notifier,
	}
}

// Handle processes the rejection.
func (h *ReassignShipperCommandHandler) Handle(ctx context.Context, cmd ReassignShipperCommand) error {
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

	// Stale rejection: the shipment already moved on or belongs to someone else.
	if sh.Status() != shipment.Assigned || sh.Shipper() == nil ||
		!sh.Shipper().IsEqual(cmd.RejectedShipperID()) {
		return nil
	}

	if err = sh.Unassign(); err != nil {
		return err
	}

	so, err := uow.SubOrderRepository().Get(ctx, sh.SubOrderID())
	if err != nil {
		return err
	}

	ord, err := uow.OrderRepository().Get(ctx, so.OrderID())
	if err != nil {
		return err
	}

	newShipperID, assigned, err := h.tryReassign(ctx, sh, cmd.RejectedShipperID())
	if err != nil {
		return err
	}
	if assigned {
		so.AttachShipment(sh.TrackingNumber(), sh.Shipper())
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

	if !assigned {
		h.notifier.NotifyPartner(ctx, so.ShopID(), notification.KindShipmentProgress, notification.Params{
			"tracking_number": sh.TrackingNumber(),
			"delay":           "reassignment pending, no shipper available",
		})
		return nil
	}

	_ = h.publisher.Publish(ctx, events.ShipmentAssigned, events.ShipmentPayload{
		ShipmentID:     sh.ID().String(),
		SubOrderID:     so.ID().String(),
		TrackingNumber: sh.TrackingNumber(),
		ShipperID:      newShipperID.String(),
	})

	h.notifier.NotifyShipper(ctx, newShipperID, notification.KindShipperAssigned, notification.Params{
		"tracking_number": sh.TrackingNumber(),
	})
	h.notifier.NotifyCustomer(ctx, ord.CustomerID(), notification.KindShipmentProgress, notification.Params{
		"tracking_number": sh.TrackingNumber(),
		"status":          "shipper reassigned",
	})

	return nil
}

func (h *ReassignShipperCommandHandler) tryReassign(
	ctx context.Context, sh *shipment.Shipment, rejectedID kernel.UUID,
) (kernel.UUID, bool, error) {
	candidates, err := h.roster.AvailableShippers(ctx, sh.PickupPoint())
	if err != nil {
		return kernel.UUID{}, false, errs.NewRetryableError("list available shippers", err)
	}

	eligible := make([]services.ShipperCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.ID.IsEqual(rejectedID) {
			eligible = append(eligible, c)
		}
	}

	newShipperID, err := h.dispatcher.Dispatch(sh, eligible)
	if errors.Is(err, services.ErrShipperNotFound) {
		return kernel.UUID{}, false, nil
	}
	if err != nil {
		return kernel.UUID{}, false, err
	}

	return newShipperID, true, nil
}
