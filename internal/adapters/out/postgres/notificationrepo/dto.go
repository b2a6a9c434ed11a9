// Package notificationrepo persists scheduled notifications awaiting
// dispatch. Params are serialized to a JSON text column.
package notificationrepo

import (
	"encoding/json"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO is the database representation of a scheduled notification.
type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role        string    `gorm:"type:varchar(16)"`
	RecipientID uuid.UUID `gorm:"type:uuid;index"`
	Kind        string    `gorm:"type:varchar(32)"`
	Params      string
	ScheduledAt time.Time `gorm:"index"`
	SentAt      *time.Time
}

// TableName overrides GORM's default naming to use "scheduled_notifications".
func (NotificationDTO) TableName() string {
	return "scheduled_notifications"
}

func fromDomain(aggregate *notification.ScheduledNotification) (NotificationDTO, error) {
	params, err := json.Marshal(aggregate.Params())
	if err != nil {
		return NotificationDTO{}, err
	}

	return NotificationDTO{
		ID:          aggregate.ID().Bytes(),
		Role:        string(aggregate.Role()),
		RecipientID: aggregate.RecipientID().Bytes(),
		Kind:        string(aggregate.Kind()),
		Params:      string(params),
		ScheduledAt: aggregate.ScheduledAt(),
		SentAt:      aggregate.SentAt(),
	}, nil
}

func toDomain(dto NotificationDTO) (*notification.ScheduledNotification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	var params notification.Params
	if dto.Params != "" {
		if err = json.Unmarshal([]byte(dto.Params), &params); err != nil {
			return nil, err
		}
	}

	return notification.RestoreScheduledNotification(
		id,
		notification.Role(dto.Role),
		recipientID,
		notification.Kind(dto.Kind),
		params,
		dto.ScheduledAt,
		dto.SentAt,
	)
}
