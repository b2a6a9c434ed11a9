package ports

import (
	"context"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/services"
)

// StockReleaser returns reserved stock to the catalog when a payment fails
// or an order is refunded.
type StockReleaser interface {
	ReleaseStock(ctx context.Context, orderID kernel.UUID) error
}

// GeoResolver resolves a postal address to coordinates for dispatch ranking.
type GeoResolver interface {
	Resolve(ctx context.Context, address string) (kernel.GeoPoint, error)
}

// ShipperRoster lists the shippers currently available for dispatch near a
// pickup point.
type ShipperRoster interface {
	AvailableShippers(ctx context.Context, near kernel.GeoPoint) ([]services.ShipperCandidate, error)
}
