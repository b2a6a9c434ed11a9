// Package shipment contains the Shipment aggregate: the courier-side view of
// a sub-order in motion. A shipment tracks who carries the parcel, how many
// delivery attempts were made and what cash is due on the doorstep.
package shipment

import (
	"errors"
	"fmt"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

// MaxDeliveryAttempts is the number of doorstep attempts before a shipment is
// sent back to the shop.
const MaxDeliveryAttempts = 3

// Domain errors for shipment operations.
var (
	// ErrShipmentIsNotConstructed is returned when a Shipment was not created
	// through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")
	// ErrTrackingNumberIsRequired is returned when the tracking number is empty.
	ErrTrackingNumberIsRequired = errs.NewValueIsRequiredError("tracking number")
	// ErrShipmentNotAssigned is returned when an operation needs an assigned
	// shipper and there is none.
	ErrShipmentNotAssigned = errs.NewValueIsRequiredError("assigned shipper")
)

// FailureOutcome describes what a delivery failure did to the shipment.
type FailureOutcome int

const (
	// OutcomeAlreadyRecorded means the same failure was applied before and the
	// shipment was left untouched.
	OutcomeAlreadyRecorded FailureOutcome = iota
	// OutcomeRedeliveryScheduled means another attempt was queued.
	OutcomeRedeliveryScheduled
	// OutcomeReturning means attempts are exhausted and the parcel goes back.
	OutcomeReturning
)

// Shipment is the delivery unit created for a sub-order. At most one shipment
// is active per sub-order at a time.
type Shipment struct {
	id                    kernel.UUID
	trackingNumber        string
	subOrderID            kernel.UUID
	shipperID             *kernel.UUID
	status                Status
	codAmount             kernel.Money
	codCollected          bool
	deliveryAttempts      int
	failureReason         string
	scheduledRedeliveryAt *time.Time
	returnReason          string
	returnedAt            *time.Time
	pickupPoint           kernel.GeoPoint
	deliveryPoint         kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewShipment creates a shipment in Pending status awaiting shipper
// assignment. codAmount is zero for prepaid orders.
func NewShipment(
	id kernel.UUID,
	trackingNumber string,
	subOrderID kernel.UUID,
	codAmount kernel.Money,
	pickupPoint kernel.GeoPoint,
	deliveryPoint kernel.GeoPoint,
) (*Shipment, error) {
	sh := &Shipment{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		sh.setID(id),
		sh.setTrackingNumber(trackingNumber),
		sh.setSubOrderID(subOrderID),
	); err != nil {
		return nil, err
	}

	sh.codAmount = codAmount
	sh.pickupPoint = pickupPoint
	sh.deliveryPoint = deliveryPoint
	return sh, nil
}

// RestoreShipment reconstructs a Shipment from persistence.
func RestoreShipment(
	id kernel.UUID,
	trackingNumber string,
	subOrderID kernel.UUID,
	shipperID *kernel.UUID,
	status Status,
	codAmount kernel.Money,
	codCollected bool,
	deliveryAttempts int,
	failureReason string,
	scheduledRedeliveryAt *time.Time,
	returnReason string,
	returnedAt *time.Time,
	pickupPoint kernel.GeoPoint,
	deliveryPoint kernel.GeoPoint,
) (*Shipment, error) {
	sh := &Shipment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		sh.setID(id),
		sh.setTrackingNumber(trackingNumber),
		sh.setSubOrderID(subOrderID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if shipperID != nil {
		if err := shipperID.Validate(); err != nil {
			return nil, err
		}
	}
	if deliveryAttempts < 0 {
		return nil, errs.NewValueIsOutOfRangeError("delivery attempts", deliveryAttempts, 0, MaxDeliveryAttempts)
	}

	sh.shipperID = shipperID
	sh.status = status
	sh.codAmount = codAmount
	sh.codCollected = codCollected
	sh.deliveryAttempts = deliveryAttempts
	sh.failureReason = failureReason
	sh.scheduledRedeliveryAt = scheduledRedeliveryAt
	sh.returnReason = returnReason
	sh.returnedAt = returnedAt
	sh.pickupPoint = pickupPoint
	sh.deliveryPoint = deliveryPoint
	return sh, nil
}

// Validate ensures the Shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// ID returns the shipment identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// TrackingNumber returns the customer-facing tracking number.
func (s *Shipment) TrackingNumber() string { return s.trackingNumber }

// SubOrderID returns the sub-order this shipment fulfils.
func (s *Shipment) SubOrderID() kernel.UUID { return s.subOrderID }

// Shipper returns the assigned shipper's ID, or nil when unassigned.
func (s *Shipment) Shipper() *kernel.UUID { return s.shipperID }

// Status returns the current shipment status.
func (s *Shipment) Status() Status { return s.status }

// CODAmount returns the cash to collect on delivery, zero for prepaid orders.
func (s *Shipment) CODAmount() kernel.Money { return s.codAmount }

// IsCOD reports whether cash changes hands at the doorstep.
func (s *Shipment) IsCOD() bool { return !s.codAmount.IsZero() }

// CODCollected reports whether the doorstep cash was actually collected.
func (s *Shipment) CODCollected() bool { return s.codCollected }

// PickupPoint returns the shop coordinates parcels are collected from.
func (s *Shipment) PickupPoint() kernel.GeoPoint { return s.pickupPoint }

// DeliveryPoint returns the customer coordinates.
func (s *Shipment) DeliveryPoint() kernel.GeoPoint { return s.deliveryPoint }

// DeliveryAttempts returns the number of doorstep attempts made so far.
func (s *Shipment) DeliveryAttempts() int { return s.deliveryAttempts }

// FailureReason returns the reason of the last failed attempt, if any.
func (s *Shipment) FailureReason() string { return s.failureReason }

// ScheduledRedeliveryAt returns when the next attempt is due, or nil when no
// redelivery is queued.
func (s *Shipment) ScheduledRedeliveryAt() *time.Time { return s.scheduledRedeliveryAt }

// ReturnReason explains why the parcel went back to the shop, empty while the
// shipment is not returning.
func (s *Shipment) ReturnReason() string { return s.returnReason }

// ReturnedAt returns when the parcel arrived back at the shop, nil until the
// courier confirms the return.
func (s *Shipment) ReturnedAt() *time.Time { return s.returnedAt }

// Assign hands the shipment to a shipper.
func (s *Shipment) Assign(shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return err
	}

	changed, err := s.AdvanceTo(Assigned)
	if err != nil {
		return err
	}
	if changed {
		s.shipperID = &shipperID
	}

	return nil
}

// Unassign puts an assigned shipment back into the dispatch pool, for example
// when its shipper rejects the job or goes offline.
func (s *Shipment) Unassign() error {
	if s.shipperID == nil {
		return ErrShipmentNotAssigned
	}

	changed, err := s.AdvanceTo(Pending)
	if err != nil {
		return err
	}
	if changed {
		s.shipperID = nil
	}

	return nil
}

// MarkDelivered finishes the shipment successfully. codCollected records
// whether doorstep cash changed hands; it only accrues to the shipper's
// ledger on the first delivery of the shipment.
func (s *Shipment) MarkDelivered(codCollected bool) (bool, error) {
	changed, err := s.AdvanceTo(Delivered)
	if err != nil {
		return false, err
	}
	if changed {
		s.codCollected = codCollected
		s.scheduledRedeliveryAt = nil
	}

	return changed, nil
}

// RegisterDeliveryFailure records a failed doorstep attempt. While attempts
// remain, a redelivery is queued for redeliverAt; once MaxDeliveryAttempts is
// reached the shipment moves to Returning. Applying the same failure to a
// shipment already awaiting redelivery is a no-op, so redelivered events do
// not burn extra attempts.
func (s *Shipment) RegisterDeliveryFailure(reason string, redeliverAt time.Time) (FailureOutcome, error) {
	if s.status == PendingRedelivery && s.failureReason == reason {
		return OutcomeAlreadyRecorded, nil
	}
	if s.status.IsFinal() {
		return OutcomeAlreadyRecorded,
			errs.NewTerminalStateError("shipment", s.status.String(), Failed.String())
	}

	s.deliveryAttempts++
	s.failureReason = reason

	if s.deliveryAttempts >= MaxDeliveryAttempts {
		s.status = Returning
		s.scheduledRedeliveryAt = nil
		s.returnReason = fmt.Sprintf("%d failed delivery attempts, last: %s", s.deliveryAttempts, reason)
		return OutcomeReturning, nil
	}

	s.status = PendingRedelivery
	s.scheduledRedeliveryAt = &redeliverAt
	return OutcomeRedeliveryScheduled, nil
}

// MarkReturned records the parcel's arrival back at the shop.
func (s *Shipment) MarkReturned(at time.Time) (bool, error) {
	changed, err := s.AdvanceTo(Returned)
	if err != nil {
		return false, err
	}
	if changed {
		s.returnedAt = &at
	}

	return changed, nil
}

// StartRedelivery puts a queued shipment back on the road.
func (s *Shipment) StartRedelivery() (bool, error) {
	changed, err := s.AdvanceTo(OutForDelivery)
	if err != nil {
		return false, err
	}
	if changed {
		s.scheduledRedeliveryAt = nil
	}

	return changed, nil
}

// AdvanceTo applies a status transition with the no-op/terminal semantics of
// Status.Advance.
func (s *Shipment) AdvanceTo(target Status) (bool, error) {
	newStatus, changed, err := s.status.Advance(target)
	if err != nil {
		return false, err
	}
	if changed {
		s.status = newStatus
	}

	return changed, nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}
	s.trackingNumber = trackingNumber
	return nil
}

func (s *Shipment) setSubOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.subOrderID = id
	return nil
}
