package commands

import (
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

var ErrFailDeliveryCommandIsNotConstructed = errors.New(
	"FailDeliveryCommand must be created via NewFailDeliveryCommand constructor",
)

// FailDeliveryCommand represents a failed doorstep attempt, decoded from a
// DELIVERY_FAILED event.
type FailDeliveryCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	reason         string

	guard guard.ConstructorGuard
}

// NewFailDeliveryCommand creates a command recording the failed attempt.
func NewFailDeliveryCommand(trackingNumber string, reason string) (FailDeliveryCommand, error) {
	cmd := FailDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setReason(reason),
	); err != nil {
		return FailDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FailDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFailDeliveryCommandIsNotConstructed)
}

// TrackingNumber returns the shipment's tracking number.
func (c FailDeliveryCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Reason returns the human-readable failure reason from the shipper.
func (c FailDeliveryCommand) Reason() string {
	return c.reason
}

func (c *FailDeliveryCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}

	c.trackingNumber = trackingNumber
	return nil
}

func (c *FailDeliveryCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("failure reason")
	}

	c.reason = reason
	return nil
}
