package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each consumed event
// or command. This ensures proper isolation between concurrent handlers.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary covering the
// read-then-write cycle of an event handler. Client code must explicitly
// manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// SubOrderRepository returns a SubOrderRepository bound to the current transaction.
	SubOrderRepository() SubOrderRepository

	// ShipmentRepository returns a ShipmentRepository bound to the current transaction.
	ShipmentRepository() ShipmentRepository

	// CODLedgerRepository returns a CODLedgerRepository bound to the current transaction.
	CODLedgerRepository() CODLedgerRepository

	// ScheduledNotificationRepository returns a ScheduledNotificationRepository
	// bound to the current transaction.
	ScheduledNotificationRepository() ScheduledNotificationRepository
}
