package ports

import (
	"context"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	// Returns ObjectNotFoundError when no such shipment exists.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByTrackingNumber retrieves a shipment by its tracking number, the
	// identifier courier events carry.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error)

	// GetActiveBySubOrder retrieves the non-final shipment of a sub-order.
	// Returns ObjectNotFoundError when the sub-order has no shipment in motion.
	GetActiveBySubOrder(ctx context.Context, subOrderID kernel.UUID) (*shipment.Shipment, error)

	// GetDueRedeliveries retrieves shipments awaiting redelivery whose
	// scheduled slot is at or before now.
	GetDueRedeliveries(ctx context.Context, now time.Time) ([]*shipment.Shipment, error)

	// GetAssignedByShipper retrieves the non-final shipments a shipper is
	// currently carrying. Used when a shipper goes offline.
	GetAssignedByShipper(ctx context.Context, shipperID kernel.UUID) ([]*shipment.Shipment, error)
}
