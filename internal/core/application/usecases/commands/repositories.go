// Package commands contains the business operations triggered by consumed
// broker events and cron jobs. All commands follow a consistent pattern:
// constructor validation, transaction management through a unit of work, and
// read-then-write persistence so redelivered events settle as no-ops.
package commands

import (
	"context"

	"github.com/TienDattttt/shoppi-sub004/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest composite that covers its writes.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SubOrderRepoFactory provides access to the sub-order repository within a transaction.
	SubOrderRepoFactory interface {
		SubOrderRepository() ports.SubOrderRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// CODLedgerRepoFactory provides access to the COD ledger repository within a transaction.
	CODLedgerRepoFactory interface {
		CODLedgerRepository() ports.CODLedgerRepository
	}

	// NotificationRepoFactory provides access to the scheduled notification
	// repository within a transaction.
	NotificationRepoFactory interface {
		ScheduledNotificationRepository() ports.ScheduledNotificationRepository
	}

	// OrderUoW manages transactions for payment reconciliation: the order and
	// its sub-orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		SubOrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ShipmentUoW manages transactions for shipment lifecycle operations that
	// touch the shipment, its sub-order and the parent order.
	ShipmentUoW interface {
		TxManager
		OrderRepoFactory
		SubOrderRepoFactory
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// SettlementUoW manages transactions for delivery settlement: everything
	// ShipmentUoW covers plus the COD ledger and the scheduled notifications.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		SubOrderRepoFactory
		ShipmentRepoFactory
		CODLedgerRepoFactory
		NotificationRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	// NotificationUoW manages transactions for the scheduled notification job.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
