// Package codledger contains the CODLedger aggregate: the running cash total
// a shipper has collected on delivery during the current day. One ledger row
// exists per shipper; the balance resets when the first delivery of a new day
// is accrued.
package codledger

import (
	"errors"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

// ErrLedgerIsNotConstructed is returned when a CODLedger was not created
// through NewCODLedger or RestoreCODLedger.
var ErrLedgerIsNotConstructed = errors.New("CODLedger must be created via NewCODLedger or RestoreCODLedger")

// CODLedger tracks cash-on-delivery collections per shipper per day.
type CODLedger struct {
	shipperID      kernel.UUID
	day            time.Time
	collectedTotal kernel.Money
	shipmentCount  int

	guard guard.ConstructorGuard
}

// NewCODLedger opens an empty ledger for the shipper on the day containing at.
func NewCODLedger(shipperID kernel.UUID, at time.Time) (*CODLedger, error) {
	if err := shipperID.Validate(); err != nil {
		return nil, err
	}

	return &CODLedger{
		shipperID:      shipperID,
		day:            startOfDay(at),
		collectedTotal: kernel.ZeroMoney(),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreCODLedger reconstructs a CODLedger from persistence.
func RestoreCODLedger(
	shipperID kernel.UUID,
	day time.Time,
	collectedTotal kernel.Money,
	shipmentCount int,
) (*CODLedger, error) {
	if err := shipperID.Validate(); err != nil {
		return nil, err
	}

	return &CODLedger{
		shipperID:      shipperID,
		day:            startOfDay(day),
		collectedTotal: collectedTotal,
		shipmentCount:  shipmentCount,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the CODLedger was created through a constructor.
func (l *CODLedger) Validate() error {
	if l == nil {
		return ErrLedgerIsNotConstructed
	}
	return l.guard.Validate(ErrLedgerIsNotConstructed)
}

// ShipperID returns the shipper this ledger belongs to.
func (l *CODLedger) ShipperID() kernel.UUID { return l.shipperID }

// Day returns the calendar day the current balance covers.
func (l *CODLedger) Day() time.Time { return l.day }

// CollectedTotal returns the cash collected so far today.
func (l *CODLedger) CollectedTotal() kernel.Money { return l.collectedTotal }

// ShipmentCount returns how many COD shipments were settled today.
func (l *CODLedger) ShipmentCount() int { return l.shipmentCount }

// Accrue adds a collected amount at the given time. When at falls on a later
// day than the ledger covers, the balance resets before the amount is added,
// so yesterday's cash never leaks into today's settlement.
func (l *CODLedger) Accrue(amount kernel.Money, at time.Time) {
	day := startOfDay(at)
	if !day.Equal(l.day) {
		l.day = day
		l.collectedTotal = kernel.ZeroMoney()
		l.shipmentCount = 0
	}

	l.collectedTotal = l.collectedTotal.Add(amount)
	l.shipmentCount++
}

func startOfDay(at time.Time) time.Time {
	y, m, d := at.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, at.Location())
}
