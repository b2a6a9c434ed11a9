package commands

import (
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a successful doorstep delivery, decoded
// from a DELIVERY_COMPLETED event. CODCollected reports whether the shipper
// actually received cash.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	codCollected   bool

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command settling the delivery.
func NewCompleteDeliveryCommand(trackingNumber string, codCollected bool) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		codCollected: codCollected,
		guard:        guard.NewConstructorGuard(),
	}

	if err := cmd.setTrackingNumber(trackingNumber); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// TrackingNumber returns the delivered shipment's tracking number.
func (c CompleteDeliveryCommand) TrackingNumber() string {
	return c.trackingNumber
}

// CODCollected reports whether doorstep cash changed hands.
func (c CompleteDeliveryCommand) CODCollected() bool {
	return c.codCollected
}

func (c *CompleteDeliveryCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}

	c.trackingNumber = trackingNumber
	return nil
}
