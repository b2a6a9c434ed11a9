package kernel

import (
	"fmt"
	"math"

	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
)

// Coordinate bounds in decimal degrees.
const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// GeoPoint is a value object for a geographic coordinate pair. Shipments carry
// a pickup and a delivery point resolved from the shop and customer addresses.
//
// The zero value (0, 0) is a legal coordinate; use the constructed flag of the
// owning aggregate to distinguish "unset" where that matters.
type GeoPoint struct {
	latitude  float64
	longitude float64
}

// NewGeoPoint creates a GeoPoint, validating both coordinates against their
// decimal-degree bounds.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	if latitude < minLatitude || latitude > maxLatitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", latitude, minLatitude, maxLatitude)
	}
	if longitude < minLongitude || longitude > maxLongitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", longitude, minLongitude, maxLongitude)
	}

	return GeoPoint{latitude: latitude, longitude: longitude}, nil
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// DistanceTo returns the great-circle distance to other in kilometres,
// computed with the haversine formula. Precision is more than enough for
// ranking shippers by proximity.
func (p GeoPoint) DistanceTo(other GeoPoint) float64 {
	const earthRadiusKm = 6371.0

	lat1 := p.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - p.latitude) * math.Pi / 180
	dLng := (other.longitude - p.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// IsEqual compares two points by value.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// String formats the point for logs.
func (p GeoPoint) String() string {
	return fmt.Sprintf("(%f, %f)", p.latitude, p.longitude)
}
