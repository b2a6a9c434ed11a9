package commands

import (
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

var ErrFailPaymentCommandIsNotConstructed = errors.New(
	"FailPaymentCommand must be created via NewFailPaymentCommand constructor",
)

// FailPaymentCommand represents a failed payment for an order, decoded from a
// PAYMENT_FAILED event. Reason is provider copy passed through to the customer.
type FailPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewFailPaymentCommand creates a command recording the payment failure.
func NewFailPaymentCommand(orderID kernel.UUID, reason string) (FailPaymentCommand, error) {
	cmd := FailPaymentCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return FailPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FailPaymentCommand) Validate() error {
	return c.guard.Validate(ErrFailPaymentCommandIsNotConstructed)
}

// OrderID returns the order whose payment failed.
func (c FailPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the provider's failure reason, possibly empty.
func (c FailPaymentCommand) Reason() string {
	return c.reason
}

func (c *FailPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
