package services

import (
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/order"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
)

// StatusMapper is a domain service translating courier-side shipment statuses
// into the fulfillment statuses of the owning sub-order and order.
//
// The tables are deliberately partial. A shipment status without an entry
// means the courier event carries no fulfillment meaning (for example a
// shipment going back to the dispatch pool), and handlers treat the resulting
// UnmappedStatusError as a logged acknowledgement, never a retry.
type StatusMapper struct{}

// NewStatusMapper creates a new StatusMapper instance.
func NewStatusMapper() StatusMapper {
	return StatusMapper{}
}

// SubOrderStatusFor returns the sub-order status a shipment status maps to.
// Returns UnmappedStatusError when the shipment status has no fulfillment
// meaning for the sub-order.
func (m StatusMapper) SubOrderStatusFor(s shipment.Status) (suborder.Status, error) {
	mapped, ok := map[shipment.Status]suborder.Status{
		shipment.Assigned:          suborder.ReadyToShip,
		shipment.PickedUp:          suborder.Shipping,
		shipment.InTransit:         suborder.Shipping,
		shipment.OutForDelivery:    suborder.Shipping,
		shipment.Delivered:         suborder.Delivered,
		shipment.Failed:            suborder.DeliveryFailed,
		shipment.PendingRedelivery: suborder.DeliveryFailed,
		shipment.Returning:         suborder.Returning,
		shipment.Returned:          suborder.Returned,
		shipment.Cancelled:         suborder.Cancelled,
	}[s]
	if !ok {
		return suborder.Unknown, errs.NewUnmappedStatusError(s.String())
	}

	return mapped, nil
}

// OrderStatusFor returns the order status directly implied by a sub-order
// status, and whether such a direct mapping exists. Delivered and Completed
// sub-orders are absent on purpose: whole-order completion is decided by
// CompletionPolicy over all sub-orders, not by any single one.
func (m StatusMapper) OrderStatusFor(s suborder.Status) (order.Status, bool) {
	mapped, ok := map[suborder.Status]order.Status{
		suborder.Shipping:  order.Shipping,
		suborder.Returned:  order.Processing,
		suborder.Cancelled: order.Cancelled,
	}[s]

	return mapped, ok
}
