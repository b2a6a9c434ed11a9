package ports

import (
	"context"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
)

// ScheduledNotificationRepository defines the persistence contract for
// notifications queued for later dispatch.
type ScheduledNotificationRepository interface {
	// Add persists a new scheduled notification.
	Add(ctx context.Context, aggregate *notification.ScheduledNotification) error

	// Update persists changes, in practice the sent timestamp.
	Update(ctx context.Context, aggregate *notification.ScheduledNotification) error

	// GetDue retrieves unsent notifications scheduled at or before now.
	GetDue(ctx context.Context, now time.Time) ([]*notification.ScheduledNotification, error)
}
