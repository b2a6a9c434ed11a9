package notificationrepo

import (
	"context"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"

	"gorm.io/gorm"
)

// GormNotificationRepository implements ScheduledNotificationRepository using GORM.
type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormNotificationRepository creates a new GORM scheduled notification repository.
func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add queues a new scheduled notification.
func (r *GormNotificationRepository) Add(
	ctx context.Context, aggregate *notification.ScheduledNotification,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing scheduled notification, typically to record the
// sent timestamp.
func (r *GormNotificationRepository) Update(
	ctx context.Context, aggregate *notification.ScheduledNotification,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetDue retrieves unsent notifications whose scheduled time has passed.
func (r *GormNotificationRepository) GetDue(
	ctx context.Context, now time.Time,
) ([]*notification.ScheduledNotification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "sent_at IS NULL AND scheduled_at <= ?", now).
		Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*notification.ScheduledNotification, 0, len(dtos))
	for _, dto := range dtos {
		sn, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, sn)
	}

	return notifications, nil
}
