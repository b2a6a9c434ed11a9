package commands

import (
	"context"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
	"github.com/TienDattttt/shoppi-sub004/internal/core/ports"
)

// DispatchScheduledNotificationsCommandHandler delivers due scheduled
// notifications through the notifier and marks them sent in the same
// transaction, so a crashed run re-sends at most the batch in flight.
type DispatchScheduledNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	notifier   ports.Notifier
	now        func() time.Time
}

// NewDispatchScheduledNotificationsCommandHandler creates a handler for the
// scheduled notification cron job.
func NewDispatchScheduledNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	notifier ports.Notifier,
	now func() time.Time,
) DispatchScheduledNotificationsCommandHandler {
	if now == nil {
		now = time.Now
	}

	return DispatchScheduledNotificationsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        now,
	}
}

// Handle sends every due notification and marks it sent.
func (h *DispatchScheduledNotificationsCommandHandler) Handle(
	ctx context.Context, cmd DispatchScheduledNotificationsCommand,
) error {
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

	due, err := uow.ScheduledNotificationRepository().GetDue(ctx, h.now())
	if err != nil {
		return err
	}

	for _, sn := range due {
		if !sn.MarkSent(h.now()) {
			continue
		}

		h.send(ctx, sn)
		if err = uow.ScheduledNotificationRepository().Update(ctx, sn); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h *DispatchScheduledNotificationsCommandHandler) send(
	ctx context.Context, sn *notification.ScheduledNotification,
) {
	switch sn.Role() {
	case notification.RoleCustomer:
		h.notifier.NotifyCustomer(ctx, sn.RecipientID(), sn.Kind(), sn.Params())
	case notification.RolePartner:
		h.notifier.NotifyPartner(ctx, sn.RecipientID(), sn.Kind(), sn.Params())
	case notification.RoleShipper:
		h.notifier.NotifyShipper(ctx, sn.RecipientID(), sn.Kind(), sn.Params())
	case notification.RoleAdmin:
		h.notifier.AlertAdmin(ctx, string(sn.Kind()), "")
	}
}
