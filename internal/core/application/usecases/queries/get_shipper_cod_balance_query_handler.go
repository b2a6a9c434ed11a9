package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipperCODBalanceQueryHandler reads the shipper's daily COD ledger row.
type GetShipperCODBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetShipperCODBalanceQueryHandler creates a handler for COD balance
// queries.
func NewGetShipperCODBalanceQueryHandler(db *gorm.DB) GetShipperCODBalanceQueryHandler {
	return GetShipperCODBalanceQueryHandler{db: db}
}

// Handle executes the query. A shipper without a ledger row gets a zero
// balance so the settlement endpoint never 404s on a quiet day.
func (h GetShipperCODBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetShipperCODBalanceQuery,
) (GetShipperCODBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipperCODBalanceQueryResponse{}, err
	}

	response := GetShipperCODBalanceQueryResponse{ShipperID: query.ShipperID()}

	var shipperID uuid.UUID
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			shipper_id,
			day,
			collected_total,
			shipment_count
		FROM cod_ledgers
		WHERE shipper_id = ?
	`, query.ShipperID().Bytes()).Row()

	err := row.Scan(
		&shipperID,
		&response.Day,
		&response.CollectedTotal,
		&response.ShipmentCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return response, nil
	}
	if err != nil {
		return GetShipperCODBalanceQueryResponse{}, err
	}

	if response.ShipperID, err = kernel.UUIDFromBytes(shipperID[:]); err != nil {
		return GetShipperCODBalanceQueryResponse{}, err
	}

	return response, nil
}
