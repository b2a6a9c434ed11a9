package queries

import (
	"errors"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

var (
	ErrGetShipperCODBalanceQueryIsNotConstructed = errors.New(
		"GetShipperCODBalanceQuery must be created via NewGetShipperCODBalanceQuery constructor",
	)
)

// GetShipperCODBalanceQuery retrieves the cash a shipper has collected on
// delivery during the current day, for end-of-day settlement.
type GetShipperCODBalanceQuery struct {
	shipperID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipperCODBalanceQuery creates a query for the given shipper.
func NewGetShipperCODBalanceQuery(shipperID kernel.UUID) (GetShipperCODBalanceQuery, error) {
	if err := shipperID.Validate(); err != nil {
		return GetShipperCODBalanceQuery{}, err
	}

	return GetShipperCODBalanceQuery{
		shipperID: shipperID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// ShipperID returns the shipper being queried.
func (q GetShipperCODBalanceQuery) ShipperID() kernel.UUID {
	return q.shipperID
}

// Validate ensures the query was created through the constructor.
func (q GetShipperCODBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetShipperCODBalanceQueryIsNotConstructed)
}

// GetShipperCODBalanceQueryResponse is the settlement read model. A shipper
// with no ledger row has a zero balance, not an error.
type GetShipperCODBalanceQueryResponse struct {
	ShipperID      kernel.UUID
	Day            time.Time
	CollectedTotal int64
	ShipmentCount  int
}
