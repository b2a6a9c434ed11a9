package services

import (
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/order"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"
)

// CompletionPolicy is a domain service deciding when a whole order counts as
// completed: every sub-order must have finished successfully (delivered or
// completed). A mixed outcome, say one shop delivered and another returned,
// leaves the order open for manual settlement.
type CompletionPolicy struct{}

// NewCompletionPolicy creates a new CompletionPolicy instance.
func NewCompletionPolicy() CompletionPolicy {
	return CompletionPolicy{}
}

// CheckAndComplete completes the order when all sub-orders are terminally
// successful. Calling it on an order that is already final is a no-op, so a
// redelivered completion event settles without error. Returns whether the
// order moved to Completed by this call.
func (p CompletionPolicy) CheckAndComplete(o *order.Order, subOrders []*suborder.SubOrder) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	if o.Status().IsFinal() {
		return false, nil
	}
	if len(subOrders) == 0 {
		return false, nil
	}

	for _, so := range subOrders {
		if err := so.Validate(); err != nil {
			return false, err
		}
		if !so.Status().IsTerminalSuccess() {
			return false, nil
		}
	}

	// Completed is only reachable through Delivered; step there first when
	// the order has not caught up with its shipments yet.
	if _, err := o.AdvanceTo(order.Delivered); err != nil {
		return false, err
	}

	return o.AdvanceTo(order.Completed)
}
