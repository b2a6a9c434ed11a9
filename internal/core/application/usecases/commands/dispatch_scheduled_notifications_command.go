package commands

import (
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

var ErrDispatchScheduledNotificationsCommandIsNotConstructed = errors.New(
	"DispatchScheduledNotificationsCommand must be created via " +
		"NewDispatchScheduledNotificationsCommand constructor",
)

// DispatchScheduledNotificationsCommand sends due delayed notifications such
// as rating prompts. Issued by the cron scheduler.
type DispatchScheduledNotificationsCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchScheduledNotificationsCommand creates the command.
func NewDispatchScheduledNotificationsCommand() DispatchScheduledNotificationsCommand {
	return DispatchScheduledNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c DispatchScheduledNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchScheduledNotificationsCommandIsNotConstructed)
}
