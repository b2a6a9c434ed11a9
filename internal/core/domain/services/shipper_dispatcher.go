package services

import (
	"errors"
	"math"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
)

// ErrShipperNotFound is returned when no suitable shipper is available for a
// shipment. This occurs when no candidates are provided or every candidate is
// already carrying its maximum number of shipments.
var ErrShipperNotFound = errors.New("shipper not found")

// ShipperCandidate is a dispatch-time view of a shipper: who they are, where
// they are and how loaded they are. The roster adapter produces these.
type ShipperCandidate struct {
	ID              kernel.UUID
	Location        kernel.GeoPoint
	ActiveShipments int
	MaxShipments    int
}

// HasCapacity reports whether the shipper can take one more shipment.
func (c ShipperCandidate) HasCapacity() bool {
	return c.ActiveShipments < c.MaxShipments
}

// ShipperDispatcher is a domain service that assigns a pending shipment to
// the closest shipper with free capacity. Distance to the pickup point is the
// only ranking criterion; ties go to the first candidate.
type ShipperDispatcher struct{}

// NewShipperDispatcher creates a new ShipperDispatcher instance.
func NewShipperDispatcher() ShipperDispatcher {
	return ShipperDispatcher{}
}

// Dispatch picks the best candidate for the shipment, ranked by distance to
// its pickup point, assigns it and returns the chosen shipper's ID. Returns
// ErrShipperNotFound when no candidate has free capacity.
func (d ShipperDispatcher) Dispatch(
	sh *shipment.Shipment,
	candidates []ShipperCandidate,
) (kernel.UUID, error) {
	if err := sh.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	best, err := d.findBestShipper(sh.PickupPoint(), candidates)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = sh.Assign(best.ID); err != nil {
		return kernel.UUID{}, err
	}

	return best.ID, nil
}

func (d ShipperDispatcher) findBestShipper(
	pickupPoint kernel.GeoPoint,
	candidates []ShipperCandidate,
) (ShipperCandidate, error) {
	var (
		best         ShipperCandidate
		bestDistance = math.MaxFloat64
		found        bool
	)

	for _, c := range candidates {
		if err := c.ID.Validate(); err != nil {
			return ShipperCandidate{}, err
		}
		if !c.HasCapacity() {
			continue
		}

		distance := c.Location.DistanceTo(pickupPoint)
		if distance < bestDistance {
			bestDistance = distance
			best = c
			found = true
		}
	}

	if !found {
		return ShipperCandidate{}, ErrShipperNotFound
	}

	return best, nil
}
