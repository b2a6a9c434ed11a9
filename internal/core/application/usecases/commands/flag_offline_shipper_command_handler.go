package commands

import (
	"context"
	"fmt"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/core/ports"
)

// FlagOfflineShipperCommandHandler returns every assigned shipment of an
// offline shipper to the dispatch pool and alerts the operations team.
// Shipments already picked up stay with the shipper; only assigned-but-not-
// collected parcels are released.
type FlagOfflineShipperCommandHandler struct {
	uowFactory ShipmentUoWFactory
	notifier   ports.Notifier
}

// NewFlagOfflineShipperCommandHandler creates a handler for offline shippers.
func NewFlagOfflineShipperCommandHandler(
	uowFactory ShipmentUoWFactory,
	notifier ports.Notifier,
) FlagOfflineShipperCommandHandler {
	return FlagOfflineShipperCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the offline signal.
func (h *FlagOfflineShipperCommandHandler) Handle(ctx context.Context, cmd FlagOfflineShipperCommand) error {
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

	carried, err := uow.ShipmentRepository().GetAssignedByShipper(ctx, cmd.ShipperID())
	if err != nil {
		return err
	}

	released := 0
	for _, sh := range carried {
		if sh.Status() != shipment.Assigned {
			continue
		}
		if err = sh.Unassign(); err != nil {
			return err
		}
		if err = uow.ShipmentRepository().Update(ctx, sh); err != nil {
			return err
		}
		released++
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if released > 0 {
		h.notifier.AlertAdmin(ctx, "shipper offline",
			fmt.Sprintf("shipper %s went offline, %d shipments returned to dispatch pool",
				cmd.ShipperID(), released))
	}

	return nil
}
