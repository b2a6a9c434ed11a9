// Package codledgerrepo persists the per-shipper daily COD ledger. The table
// holds one row per shipper; the day column marks which calendar day the
// balance covers.
package codledgerrepo

import (
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/codledger"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CODLedgerDTO is the database representation of a shipper's COD ledger.
type CODLedgerDTO struct {
	ShipperID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day            time.Time
	CollectedTotal int64
	ShipmentCount  int
}

// TableName overrides GORM's default naming to use "cod_ledgers".
func (CODLedgerDTO) TableName() string {
	return "cod_ledgers"
}

func fromDomain(aggregate *codledger.CODLedger) CODLedgerDTO {
	return CODLedgerDTO{
		ShipperID:      aggregate.ShipperID().Bytes(),
		Day:            aggregate.Day(),
		CollectedTotal: aggregate.CollectedTotal().Amount(),
		ShipmentCount:  aggregate.ShipmentCount(),
	}
}

func toDomain(dto CODLedgerDTO) (*codledger.CODLedger, error) {
	shipperID, err := kernel.UUIDFromBytes(dto.ShipperID[:])
	if err != nil {
		return nil, err
	}

	collectedTotal, err := kernel.NewMoney(dto.CollectedTotal)
	if err != nil {
		return nil, err
	}

	return codledger.RestoreCODLedger(shipperID, dto.Day, collectedTotal, dto.ShipmentCount)
}
