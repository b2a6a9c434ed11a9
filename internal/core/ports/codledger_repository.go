package ports

import (
	"context"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/codledger"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
)

// CODLedgerRepository defines the persistence contract for COD ledgers.
// One ledger row exists per shipper; Upsert creates it on first accrual.
type CODLedgerRepository interface {
	// GetByShipper retrieves the ledger of a shipper.
	// Returns ObjectNotFoundError when the shipper never collected COD.
	GetByShipper(ctx context.Context, shipperID kernel.UUID) (*codledger.CODLedger, error)

	// Upsert persists the ledger, creating the row when missing.
	Upsert(ctx context.Context, aggregate *codledger.CODLedger) error
}
