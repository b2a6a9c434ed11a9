package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/services"
	"github.com/TienDattttt/shoppi-sub004/internal/core/events"
	"github.com/TienDattttt/shoppi-sub004/internal/core/ports"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
)

// CreateShipmentCommandHandler opens a shipment for a sub-order and tries to
// assign the closest available shipper right away.
//
// Idempotent: a sub-order that already has a shipment in motion is left
// untouched. Assignment failure is not a handler failure: the shipment stays
// pending in the dispatch pool and the operations team is alerted.
type CreateShipmentCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	geoResolver ports.GeoResolver
	roster      ports.ShipperRoster
	dispatcher  services.ShipperDispatcher
	publisher   ports.EventPublisher
	notifier    ports.Notifier
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	geoResolver ports.GeoResolver,
	roster ports.ShipperRoster,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory:  uowFactory,
		geoResolver: geoResolver,
		roster:      roster,
		dispatcher:  services.NewShipperDispatcher(),
		publisher:   publisher,
		notifier:    notifier,
	}
}

// Handle processes the shipment create request.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
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

	if _, err := uow.ShipmentRepository().GetActiveBySubOrder(ctx, cmd.SubOrderID()); err == nil {
		return nil
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	so, err := uow.SubOrderRepository().Get(ctx, cmd.SubOrderID())
	if err != nil {
		return err
	}

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	pickupPoint, err := h.geoResolver.Resolve(ctx, so.PickupAddress())
	if err != nil {
		return errs.NewRetryableError("resolve pickup address", err)
	}

	deliveryPoint, err := h.geoResolver.Resolve(ctx, so.DeliveryAddress())
	if err != nil {
		return errs.NewRetryableError("resolve delivery address", err)
	}

	shipmentID := kernel.NewUUID()
	sh, err := shipment.NewShipment(shipmentID, trackingNumberFor(shipmentID),
		so.ID(), cmd.CODAmount(), pickupPoint, deliveryPoint)
	if err != nil {
		return err
	}

	shipperID, assigned, err := h.tryAssign(ctx, sh)
	if err != nil {
		return err
	}

	so.AttachShipment(sh.TrackingNumber(), sh.Shipper())
	if _, err = so.AdvanceTo(suborder.Processing); err != nil {
		return err
	}
	if assigned {
		if _, err = so.AdvanceTo(suborder.ReadyToShip); err != nil {
			return err
		}
	}

	if err = uow.ShipmentRepository().Add(ctx, sh); err != nil {
		return err
	}
	if err = uow.SubOrderRepository().Update(ctx, so); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.announce(ctx, ord.CustomerID(), so, sh, shipperID, assigned)
	return nil
}

// tryAssign dispatches the shipment to the closest free shipper. An empty
// roster leaves the shipment pending; only infrastructure failures bubble up.
func (h *CreateShipmentCommandHandler) tryAssign(
	ctx context.Context, sh *shipment.Shipment,
) (kernel.UUID, bool, error) {
	candidates, err := h.roster.AvailableShippers(ctx, sh.PickupPoint())
	if err != nil {
		return kernel.UUID{}, false, errs.NewRetryableError("list available shippers", err)
	}

	shipperID, err := h.dispatcher.Dispatch(sh, candidates)
	if errors.Is(err, services.ErrShipperNotFound) {
		return kernel.UUID{}, false, nil
	}
	if err != nil {
		return kernel.UUID{}, false, err
	}

	return shipperID, true, nil
}

func (h *CreateShipmentCommandHandler) announce(
	ctx context.Context,
	customerID kernel.UUID,
	so *suborder.SubOrder,
	sh *shipment.Shipment,
	shipperID kernel.UUID,
	assigned bool,
) {
	params := notification.Params{
		"tracking_number": sh.TrackingNumber(),
		"sub_order_id":    so.ID().String(),
	}

	_ = h.publisher.Publish(ctx, events.ShipmentCreated, events.ShipmentPayload{
		ShipmentID:     sh.ID().String(),
		SubOrderID:     so.ID().String(),
		TrackingNumber: sh.TrackingNumber(),
	})

	if !assigned {
		h.notifier.AlertAdmin(ctx, "shipment left unassigned",
			fmt.Sprintf("no shipper available for %s", sh.TrackingNumber()))
		return
	}

	_ = h.publisher.Publish(ctx, events.ShipmentAssigned, events.ShipmentPayload{
		ShipmentID:     sh.ID().String(),
		SubOrderID:     so.ID().String(),
		TrackingNumber: sh.TrackingNumber(),
		ShipperID:      shipperID.String(),
	})

	h.notifier.NotifyShipper(ctx, shipperID, notification.KindShipperAssigned, params)
	h.notifier.NotifyCustomer(ctx, customerID, notification.KindShipmentCreated, params)
}

// trackingNumberFor derives the customer-facing tracking number from the
// shipment ID, stable across retries of the same creation.
func trackingNumberFor(id kernel.UUID) string {
	compact := strings.ReplaceAll(id.String(), "-", "")
	return "SHP-" + strings.ToUpper(compact[:12])
}
