// Package suborder contains the SubOrder aggregate: the portion of a
// multi-vendor order fulfilled by a single shop. Each sub-order advances
// independently; there is no cross-shop atomicity.
package suborder

import (
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

// Domain errors for sub-order operations.
var (
	// ErrSubOrderIsNotConstructed is returned when a SubOrder was not created
	// through NewSubOrder or RestoreSubOrder.
	ErrSubOrderIsNotConstructed = errors.New("SubOrder must be created via NewSubOrder or RestoreSubOrder")
	// ErrPickupAddressIsRequired is returned when the shop pickup address is empty.
	ErrPickupAddressIsRequired = errs.NewValueIsRequiredError("pickup address")
	// ErrDeliveryAddressIsRequired is returned when the customer address is empty.
	ErrDeliveryAddressIsRequired = errs.NewValueIsRequiredError("delivery address")
)

// SubOrder is the per-shop fulfillment unit of an Order. It carries the
// addresses a shipment needs and the shop's share of the order total.
// A sub-order is owned by exactly one order (back-reference only).
type SubOrder struct {
	id              kernel.UUID
	orderID         kernel.UUID
	shopID          kernel.UUID
	total           kernel.Money
	status          Status
	shipperID       *kernel.UUID
	trackingNumber  string
	pickupAddress   string
	deliveryAddress string

	guard guard.ConstructorGuard
}

// NewSubOrder creates a sub-order in Pending status.
func NewSubOrder(
	id kernel.UUID,
	orderID kernel.UUID,
	shopID kernel.UUID,
	total kernel.Money,
	pickupAddress string,
	deliveryAddress string,
) (*SubOrder, error) {
	so := &SubOrder{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		so.setID(id),
		so.setOrderID(orderID),
		so.setShopID(shopID),
		so.setAddresses(pickupAddress, deliveryAddress),
	); err != nil {
		return nil, err
	}

	so.total = total
	return so, nil
}

// RestoreSubOrder reconstructs a SubOrder from persistence.
func RestoreSubOrder(
	id kernel.UUID,
	orderID kernel.UUID,
	shopID kernel.UUID,
	total kernel.Money,
	status Status,
	shipperID *kernel.UUID,
	trackingNumber string,
	pickupAddress string,
	deliveryAddress string,
) (*SubOrder, error) {
	so := &SubOrder{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		so.setID(id),
		so.setOrderID(orderID),
		so.setShopID(shopID),
		so.setAddresses(pickupAddress, deliveryAddress),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if shipperID != nil {
		if err := shipperID.Validate(); err != nil {
			return nil, err
		}
	}

	so.total = total
	so.status = status
	so.shipperID = shipperID
	so.trackingNumber = trackingNumber
	return so, nil
}

// Validate ensures the SubOrder was created through a constructor.
func (s *SubOrder) Validate() error {
	if s == nil {
		return ErrSubOrderIsNotConstructed
	}
	return s.guard.Validate(ErrSubOrderIsNotConstructed)
}

// ID returns the sub-order identifier.
func (s *SubOrder) ID() kernel.UUID { return s.id }

// OrderID returns the parent order identifier.
func (s *SubOrder) OrderID() kernel.UUID { return s.orderID }

// ShopID returns the fulfilling shop identifier.
func (s *SubOrder) ShopID() kernel.UUID { return s.shopID }

// Total returns the shop's share of the order total.
func (s *SubOrder) Total() kernel.Money { return s.total }

// Status returns the current fulfillment status.
func (s *SubOrder) Status() Status { return s.status }

// Shipper returns the assigned shipper's ID, or nil when unassigned.
func (s *SubOrder) Shipper() *kernel.UUID { return s.shipperID }

// TrackingNumber returns the tracking number of the active shipment, if any.
func (s *SubOrder) TrackingNumber() string { return s.trackingNumber }

// PickupAddress returns the shop address parcels are collected from.
func (s *SubOrder) PickupAddress() string { return s.pickupAddress }

// DeliveryAddress returns the customer address parcels are delivered to.
func (s *SubOrder) DeliveryAddress() string { return s.deliveryAddress }

// AttachShipment records the shipment created for this sub-order.
func (s *SubOrder) AttachShipment(trackingNumber string, shipperID *kernel.UUID) {
	s.trackingNumber = trackingNumber
	s.shipperID = shipperID
}

// AdvanceTo applies a fulfillment status transition with the no-op/terminal
// semantics of Status.Advance.
func (s *SubOrder) AdvanceTo(target Status) (bool, error) {
	newStatus, changed, err := s.status.Advance(target)
	if err != nil {
		return false, err
	}
	if changed {
		s.status = newStatus
	}

	return changed, nil
}

func (s *SubOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *SubOrder) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.orderID = id
	return nil
}

func (s *SubOrder) setShopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.shopID = id
	return nil
}

func (s *SubOrder) setAddresses(pickup, delivery string) error {
	if pickup == "" {
		return ErrPickupAddressIsRequired
	}
	if delivery == "" {
		return ErrDeliveryAddressIsRequired
	}

	s.pickupAddress = pickup
	s.deliveryAddress = delivery
	return nil
}
