// Package events contains the inbound broker consumers: queue bindings and
// the dispatch tables that decode envelopes into commands.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/rabbit"
	"github.com/TienDattttt/shoppi-sub004/internal/core/application/usecases/commands"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	coreevents "github.com/TienDattttt/shoppi-sub004/internal/core/events"
	"github.com/TienDattttt/shoppi-sub004/internal/core/ports"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/logger"
)

// ShipmentQueue is the durable queue of the shipment lifecycle consumer.
const ShipmentQueue = "fulfillment.shipments"

// ShipmentHandlers groups the command handlers the shipment consumer
// dispatches to.
type ShipmentHandlers struct {
	CreateShipment   commands.CreateShipmentCommandHandler
	ApplyStatus      commands.ApplyShipmentStatusCommandHandler
	CompleteDelivery commands.CompleteDeliveryCommandHandler
	FailDelivery     commands.FailDeliveryCommandHandler
	ReassignShipper  commands.ReassignShipperCommandHandler
	FlagOffline      commands.FlagOfflineShipperCommandHandler
}

type shipmentConsumer struct {
	handlers   ShipmentHandlers
	uowFactory commands.ShipmentUoWFactory
	notifier   ports.Notifier
}

// NewShipmentConsumer builds the consumer for the shipment lifecycle queue
// with its dispatch table registered.
func NewShipmentConsumer(
	client *rabbit.Client,
	handlers ShipmentHandlers,
	uowFactory commands.ShipmentUoWFactory,
	notifier ports.Notifier,
	handlerTimeout time.Duration,
	log logger.Logger,
) *rabbit.Consumer {
	sc := &shipmentConsumer{
		handlers:   handlers,
		uowFactory: uowFactory,
		notifier:   notifier,
	}

	spec := rabbit.QueueSpec{
		Name: ShipmentQueue,
		Bindings: []rabbit.QueueBinding{
			{Exchange: rabbit.ShipmentsExchange, Key: "shipment.create_request"},
			{Exchange: rabbit.ShipmentsExchange, Key: "shipment.status_changed"},
			{Exchange: rabbit.ShipmentsExchange, Key: "shipment.delivery_completed"},
			{Exchange: rabbit.ShipmentsExchange, Key: "shipment.delivery_failed"},
			{Exchange: rabbit.ShipmentsExchange, Key: "shipper.rejection"},
			{Exchange: rabbit.ShipmentsExchange, Key: "shipper.offline"},
			{Exchange: rabbit.ShipmentsExchange, Key: "shipper.nearby"},
		},
	}

	consumer := rabbit.NewConsumer("shipments", client, spec, handlerTimeout, log)
	consumer.Register(coreevents.ShipmentCreateRequest, sc.onCreateRequest)
	consumer.Register(coreevents.ShipmentStatusChanged, sc.onStatusChanged)
	consumer.Register(coreevents.DeliveryCompleted, sc.onDeliveryCompleted)
	consumer.Register(coreevents.DeliveryFailed, sc.onDeliveryFailed)
	consumer.Register(coreevents.ShipperRejection, sc.onShipperRejection)
	consumer.Register(coreevents.ShipperOffline, sc.onShipperOffline)
	consumer.Register(coreevents.ShipperNearby, sc.onShipperNearby)
	return consumer
}

func (sc *shipmentConsumer) onCreateRequest(ctx context.Context, env coreevents.Envelope) error {
	var payload coreevents.ShipmentCreateRequestPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return fmt.Errorf("decode %s: %w", env.Event, err)
	}

	orderID, err := kernel.UUIDFromString(payload.OrderID)
	if err != nil {
		return err
	}
	subOrderID, err := kernel.UUIDFromString(payload.SubOrderID)
	if err != nil {
		return err
	}
	codAmount, err := kernel.NewMoney(payload.CODAmount)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateShipmentCommand(orderID, subOrderID, codAmount)
	if err != nil {
		return err
	}

	return sc.handlers.CreateShipment.Handle(ctx, cmd)
}

// onStatusChanged routes delivered and failed to their dedicated commands so
// settlement and retry logic have a single path regardless of which event
// form the courier emits.
func (sc *shipmentConsumer) onStatusChanged(ctx context.Context, env coreevents.Envelope) error {
	var payload coreevents.ShipmentStatusPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return fmt.Errorf("decode %s: %w", env.Event, err)
	}

	status, err := shipment.StatusFromString(payload.Status)
	if err != nil {
		return err
	}

	switch status {
	case shipment.Delivered:
		cmd, cmdErr := commands.NewCompleteDeliveryCommand(payload.TrackingNumber, false)
		if cmdErr != nil {
			return cmdErr
		}
		return sc.handlers.CompleteDelivery.Handle(ctx, cmd)
	case shipment.Failed:
		cmd, cmdErr := commands.NewFailDeliveryCommand(payload.TrackingNumber, "delivery attempt failed")
		if cmdErr != nil {
			return cmdErr
		}
		return sc.handlers.FailDelivery.Handle(ctx, cmd)
	}

	cmd, err := commands.NewApplyShipmentStatusCommand(payload.TrackingNumber, status)
	if err != nil {
		return err
	}

	return sc.handlers.ApplyStatus.Handle(ctx, cmd)
}

func (sc *shipmentConsumer) onDeliveryCompleted(ctx context.Context, env coreevents.Envelope) error {
	var payload coreevents.DeliveryCompletedPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return fmt.Errorf("decode %s: %w", env.Event, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(payload.TrackingNumber, payload.CODCollected)
	if err != nil {
		return err
	}

	return sc.handlers.CompleteDelivery.Handle(ctx, cmd)
}

func (sc *shipmentConsumer) onDeliveryFailed(ctx context.Context, env coreevents.Envelope) error {
	var payload coreevents.DeliveryFailedPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return fmt.Errorf("decode %s: %w", env.Event, err)
	}

	cmd, err := commands.NewFailDeliveryCommand(payload.TrackingNumber, payload.Reason)
	if err != nil {
		return err
	}

	return sc.handlers.FailDelivery.Handle(ctx, cmd)
}

func (sc *shipmentConsumer) onShipperRejection(ctx context.Context, env coreevents.Envelope) error {
	var payload coreevents.ShipperEventPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return fmt.Errorf("decode %s: %w", env.Event, err)
	}

	shipperID, err := kernel.UUIDFromString(payload.ShipperID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReassignShipperCommand(payload.TrackingNumber, shipperID)
	if err != nil {
		return err
	}

	return sc.handlers.ReassignShipper.Handle(ctx, cmd)
}

func (sc *shipmentConsumer) onShipperOffline(ctx context.Context, env coreevents.Envelope) error {
	var payload coreevents.ShipperEventPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return fmt.Errorf("decode %s: %w", env.Event, err)
	}

	shipperID, err := kernel.UUIDFromString(payload.ShipperID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewFlagOfflineShipperCommand(shipperID)
	if err != nil {
		return err
	}

	return sc.handlers.FlagOffline.Handle(ctx, cmd)
}

// onShipperNearby is a pure notification: find whose parcel it is and give
// the customer a heads-up. No state changes, so no command.
func (sc *shipmentConsumer) onShipperNearby(ctx context.Context, env coreevents.Envelope) error {
	var payload coreevents.ShipperEventPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return fmt.Errorf("decode %s: %w", env.Event, err)
	}

	customerID, err := sc.customerFor(ctx, payload.TrackingNumber)
	if err != nil {
		return err
	}

	params := notification.Params{"tracking_number": payload.TrackingNumber}
	if payload.EtaMinutes > 0 {
		params["eta_minutes"] = strconv.Itoa(payload.EtaMinutes)
	}

	sc.notifier.NotifyCustomer(ctx, customerID, notification.KindShipperNearby, params)
	return nil
}

func (sc *shipmentConsumer) customerFor(ctx context.Context, trackingNumber string) (kernel.UUID, error) {
	uow := sc.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sh, err := uow.ShipmentRepository().GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return kernel.UUID{}, err
	}

	so, err := uow.SubOrderRepository().Get(ctx, sh.SubOrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	ord, err := uow.OrderRepository().Get(ctx, so.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	return ord.CustomerID(), nil
}
