package ports

import (
	"context"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"
)

// SubOrderRepository defines the persistence contract for sub-order aggregates.
type SubOrderRepository interface {
	// Add persists a new sub-order aggregate to storage.
	Add(ctx context.Context, aggregate *suborder.SubOrder) error

	// Update persists changes to an existing sub-order aggregate.
	Update(ctx context.Context, aggregate *suborder.SubOrder) error

	// Get retrieves a sub-order aggregate by its unique identifier.
	// Returns ObjectNotFoundError when no such sub-order exists.
	Get(ctx context.Context, id kernel.UUID) (*suborder.SubOrder, error)

	// GetAllByOrder retrieves every sub-order belonging to an order.
	// Used by the completion policy to decide whole-order completion.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*suborder.SubOrder, error)
}
