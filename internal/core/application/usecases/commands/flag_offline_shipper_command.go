package commands

import (
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

var ErrFlagOfflineShipperCommandIsNotConstructed = errors.New(
	"FlagOfflineShipperCommand must be created via NewFlagOfflineShipperCommand constructor",
)

// FlagOfflineShipperCommand represents a shipper dropping off the network,
// decoded from a SHIPPER_OFFLINE event. Every assigned shipment they carry
// goes back to the dispatch pool.
type FlagOfflineShipperCommand struct { //nolint:recvcheck //using for validation
	shipperID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFlagOfflineShipperCommand creates a command releasing the shipper's load.
func NewFlagOfflineShipperCommand(shipperID kernel.UUID) (FlagOfflineShipperCommand, error) {
	cmd := FlagOfflineShipperCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setShipperID(shipperID); err != nil {
		return FlagOfflineShipperCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FlagOfflineShipperCommand) Validate() error {
	return c.guard.Validate(ErrFlagOfflineShipperCommandIsNotConstructed)
}

// ShipperID returns the offline shipper's identifier.
func (c FlagOfflineShipperCommand) ShipperID() kernel.UUID {
	return c.shipperID
}

func (c *FlagOfflineShipperCommand) setShipperID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.shipperID = id
	return nil
}
