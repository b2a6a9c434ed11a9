package commands

import (
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

var ErrDispatchRedeliveriesCommandIsNotConstructed = errors.New(
	"DispatchRedeliveriesCommand must be created via NewDispatchRedeliveriesCommand constructor",
)

// DispatchRedeliveriesCommand kicks off due redelivery attempts. Issued by
// the cron scheduler, not by a broker event.
type DispatchRedeliveriesCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchRedeliveriesCommand creates the command.
func NewDispatchRedeliveriesCommand() DispatchRedeliveriesCommand {
	return DispatchRedeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c DispatchRedeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrDispatchRedeliveriesCommandIsNotConstructed)
}
