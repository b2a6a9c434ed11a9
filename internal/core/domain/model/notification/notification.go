// Package notification contains the vocabulary of outbound notifications and
// the ScheduledNotification aggregate for messages that must fire later, such
// as the rating prompt sent after a delivery settles.
package notification

import (
	"errors"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

// Role identifies who a notification is addressed to.
type Role string

const (
	RoleCustomer Role = "customer"
	RolePartner  Role = "partner"
	RoleShipper  Role = "shipper"
	RoleAdmin    Role = "admin"
)

// Validate rejects roles outside the known set.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RolePartner, RoleShipper, RoleAdmin:
		return nil
	}
	return errs.NewValueIsInvalidError("notification role")
}

// Kind names a notification template. The notifier owns the copy; the domain
// only says what happened and to whom.
type Kind string

const (
	KindPaymentConfirmed    Kind = "payment_confirmed"
	KindPaymentFailed       Kind = "payment_failed"
	KindPaymentRefunded     Kind = "payment_refunded"
	KindShipmentCreated     Kind = "shipment_created"
	KindShipperAssigned     Kind = "shipper_assigned"
	KindShipmentProgress    Kind = "shipment_progress"
	KindShipperNearby       Kind = "shipper_nearby"
	KindDeliveryCompleted   Kind = "delivery_completed"
	KindRedeliveryScheduled Kind = "redelivery_scheduled"
	KindParcelReturning     Kind = "parcel_returning"
	KindOrderCompleted      Kind = "order_completed"
	KindRatingPrompt        Kind = "rating_prompt"
)

// Params carries template values such as tracking numbers and amounts.
type Params map[string]string

// ErrNotificationIsNotConstructed is returned when a ScheduledNotification
// was not created through a constructor.
var ErrNotificationIsNotConstructed = errors.New(
	"ScheduledNotification must be created via NewScheduledNotification or RestoreScheduledNotification")

// ScheduledNotification is a notification persisted for later dispatch. A
// cron job picks up due rows and hands them to the notifier exactly once.
type ScheduledNotification struct {
	id          kernel.UUID
	role        Role
	recipientID kernel.UUID
	kind        Kind
	params      Params
	scheduledAt time.Time
	sentAt      *time.Time

	guard guard.ConstructorGuard
}

// NewScheduledNotification queues a notification for dispatch at scheduledAt.
func NewScheduledNotification(
	id kernel.UUID,
	role Role,
	recipientID kernel.UUID,
	kind Kind,
	params Params,
	scheduledAt time.Time,
) (*ScheduledNotification, error) {
	if err := errors.Join(id.Validate(), role.Validate(), recipientID.Validate()); err != nil {
		return nil, err
	}
	if kind == "" {
		return nil, errs.NewValueIsRequiredError("notification kind")
	}

	return &ScheduledNotification{
		id:          id,
		role:        role,
		recipientID: recipientID,
		kind:        kind,
		params:      params,
		scheduledAt: scheduledAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreScheduledNotification reconstructs a ScheduledNotification from persistence.
func RestoreScheduledNotification(
	id kernel.UUID,
	role Role,
	recipientID kernel.UUID,
	kind Kind,
	params Params,
	scheduledAt time.Time,
	sentAt *time.Time,
) (*ScheduledNotification, error) {
	sn, err := NewScheduledNotification(id, role, recipientID, kind, params, scheduledAt)
	if err != nil {
		return nil, err
	}

	sn.sentAt = sentAt
	return sn, nil
}

// Validate ensures the aggregate was created through a constructor.
func (n *ScheduledNotification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

// ID returns the notification identifier.
func (n *ScheduledNotification) ID() kernel.UUID { return n.id }

// Role returns who the notification is addressed to.
func (n *ScheduledNotification) Role() Role { return n.role }

// RecipientID returns the addressee's identifier.
func (n *ScheduledNotification) RecipientID() kernel.UUID { return n.recipientID }

// Kind returns the template name.
func (n *ScheduledNotification) Kind() Kind { return n.kind }

// Params returns the template values.
func (n *ScheduledNotification) Params() Params { return n.params }

// ScheduledAt returns when the notification becomes due.
func (n *ScheduledNotification) ScheduledAt() time.Time { return n.scheduledAt }

// SentAt returns when the notification was dispatched, or nil if pending.
func (n *ScheduledNotification) SentAt() *time.Time { return n.sentAt }

// IsSent reports whether the notification was already dispatched.
func (n *ScheduledNotification) IsSent() bool { return n.sentAt != nil }

// MarkSent records the dispatch time. Marking twice is a no-op so a crashed
// job run cannot double-send on replay.
func (n *ScheduledNotification) MarkSent(at time.Time) bool {
	if n.sentAt != nil {
		return false
	}
	n.sentAt = &at
	return true
}
