package codledgerrepo

import (
	"context"
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/codledger"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCODLedgerRepository implements CODLedgerRepository using GORM.
type GormCODLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCODLedgerRepository creates a new GORM COD ledger repository.
func NewGormCODLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormCODLedgerRepository {
	return &GormCODLedgerRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetByShipper retrieves the ledger row of a shipper.
func (r *GormCODLedgerRepository) GetByShipper(
	ctx context.Context, shipperID kernel.UUID,
) (*codledger.CODLedger, error) {
	if err := shipperID.Validate(); err != nil {
		return nil, err
	}

	var dto CODLedgerDTO
	err := r.db.WithContext(ctx).First(&dto, "shipper_id = ?", shipperID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cod ledger", shipperID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Upsert inserts the ledger row or replaces it when the shipper already has
// one. The ledger carries a running daily total, so the whole row is written.
func (r *GormCODLedgerRepository) Upsert(ctx context.Context, aggregate *codledger.CODLedger) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shipper_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ShipperID(), aggregate)
	return nil
}
