package commands

import (
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand asks for a shipment to be opened for a sub-order,
// decoded from a SHIPMENT_CREATE_REQUEST event. CODAmount is zero for
// prepaid orders.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	subOrderID kernel.UUID
	codAmount  kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command opening a shipment.
func NewCreateShipmentCommand(
	orderID kernel.UUID,
	subOrderID kernel.UUID,
	codAmount kernel.Money,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		codAmount: codAmount,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSubOrderID(subOrderID),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// OrderID returns the parent order's identifier.
func (c CreateShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SubOrderID returns the sub-order the shipment is for.
func (c CreateShipmentCommand) SubOrderID() kernel.UUID {
	return c.subOrderID
}

// CODAmount returns the cash to collect at the doorstep.
func (c CreateShipmentCommand) CODAmount() kernel.Money {
	return c.codAmount
}

func (c *CreateShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateShipmentCommand) setSubOrderID(subOrderID kernel.UUID) error {
	if err := subOrderID.Validate(); err != nil {
		return err
	}

	c.subOrderID = subOrderID
	return nil
}
