package commands

import (
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

var ErrReassignShipperCommandIsNotConstructed = errors.New(
	"ReassignShipperCommand must be created via NewReassignShipperCommand constructor",
)

// ReassignShipperCommand asks for a shipment to be handed to another shipper
// after the assigned one rejected the job, decoded from a SHIPPER_REJECTION
// event.
type ReassignShipperCommand struct { //nolint:recvcheck //using for validation
	trackingNumber    string
	rejectedShipperID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReassignShipperCommand creates a command reassigning the shipment.
func NewReassignShipperCommand(
	trackingNumber string,
	rejectedShipperID kernel.UUID,
) (ReassignShipperCommand, error) {
	cmd := ReassignShipperCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setRejectedShipperID(rejectedShipperID),
	); err != nil {
		return ReassignShipperCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignShipperCommand) Validate() error {
	return c.guard.Validate(ErrReassignShipperCommandIsNotConstructed)
}

// TrackingNumber returns the rejected shipment's tracking number.
func (c ReassignShipperCommand) TrackingNumber() string {
	return c.trackingNumber
}

// RejectedShipperID returns the shipper who turned the job down.
func (c ReassignShipperCommand) RejectedShipperID() kernel.UUID {
	return c.rejectedShipperID
}

func (c *ReassignShipperCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}

	c.trackingNumber = trackingNumber
	return nil
}

func (c *ReassignShipperCommand) setRejectedShipperID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.rejectedShipperID = id
	return nil
}
