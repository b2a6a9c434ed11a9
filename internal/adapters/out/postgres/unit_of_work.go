// Package postgres provides the GORM-based Unit of Work that coordinates
// transactional writes across the fulfillment repositories.
//
// Each business operation gets a fresh UnitOfWork from the factory, begins a
// transaction, performs repository operations and commits. Repositories
// obtained from an active unit of work share its transaction; aggregates they
// write are tracked for post-commit processing.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, ord); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/postgres/codledgerrepo"
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/postgres/notificationrepo"
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/postgres/orderrepo"
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/postgres/shipmentrepo"
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/postgres/suborderrepo"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances over a shared GORM
// connection. Each Create call returns an isolated instance, so concurrent
// consumers and jobs never share transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the given connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork implements ports.UnitOfWork on GORM transactions. It tracks
// every aggregate written through its repositories, which keeps the door open
// for outbox-style event publishing after commit.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin on an instance with an active
// transaction is a no-op rather than a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the transaction. The instance cannot be reused afterwards.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Safe to call from a defer after Commit:
// the already-closed transaction yields gorm.ErrInvalidTransaction, which the
// caller ignores.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns the order repository bound to this unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// SubOrderRepository returns the sub-order repository bound to this unit of work.
func (uow *GormUnitOfWork) SubOrderRepository() ports.SubOrderRepository {
	return suborderrepo.NewGormSubOrderRepository(uow.conn(), uow)
}

// ShipmentRepository returns the shipment repository bound to this unit of work.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

// CODLedgerRepository returns the COD ledger repository bound to this unit of work.
func (uow *GormUnitOfWork) CODLedgerRepository() ports.CODLedgerRepository {
	return codledgerrepo.NewGormCODLedgerRepository(uow.conn(), uow)
}

// ScheduledNotificationRepository returns the scheduled notification
// repository bound to this unit of work.
func (uow *GormUnitOfWork) ScheduledNotificationRepository() ports.ScheduledNotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate modified within this unit of work.
// Called by the repositories on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
