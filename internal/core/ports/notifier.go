package ports

import (
	"context"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
)

// Notifier fans a fulfillment event out to the people who care about it.
// Implementations deliver best effort: a lost notification must never fail
// the business operation that triggered it, so these methods log failures
// instead of returning them.
type Notifier interface {
	// NotifyCustomer sends a notification to the order's customer.
	NotifyCustomer(ctx context.Context, customerID kernel.UUID, kind notification.Kind, params notification.Params)

	// NotifyPartner sends a notification to the shop fulfilling a sub-order.
	NotifyPartner(ctx context.Context, shopID kernel.UUID, kind notification.Kind, params notification.Params)

	// NotifyShipper sends a notification to a shipper.
	NotifyShipper(ctx context.Context, shipperID kernel.UUID, kind notification.Kind, params notification.Params)

	// AlertAdmin raises an operational alert for the operations team.
	AlertAdmin(ctx context.Context, subject string, detail string)
}
