package commands

import (
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

var ErrApplyShipmentStatusCommandIsNotConstructed = errors.New(
	"ApplyShipmentStatusCommand must be created via NewApplyShipmentStatusCommand constructor",
)

// ApplyShipmentStatusCommand carries a courier status update for a shipment,
// decoded from a SHIPMENT_STATUS_CHANGED event. Delivered and failed statuses
// have dedicated commands; this one covers the movement statuses in between.
type ApplyShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	status         shipment.Status

	guard guard.ConstructorGuard
}

// NewApplyShipmentStatusCommand creates a command applying a status update.
func NewApplyShipmentStatusCommand(
	trackingNumber string,
	status shipment.Status,
) (ApplyShipmentStatusCommand, error) {
	cmd := ApplyShipmentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setStatus(status),
	); err != nil {
		return ApplyShipmentStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrApplyShipmentStatusCommandIsNotConstructed)
}

// TrackingNumber returns the shipment's tracking number.
func (c ApplyShipmentStatusCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Status returns the courier status to apply.
func (c ApplyShipmentStatusCommand) Status() shipment.Status {
	return c.status
}

func (c *ApplyShipmentStatusCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}

	c.trackingNumber = trackingNumber
	return nil
}

func (c *ApplyShipmentStatusCommand) setStatus(status shipment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
