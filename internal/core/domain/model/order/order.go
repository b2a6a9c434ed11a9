package order

import (
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

// PaymentMethod identifies how the customer pays for the order.
type PaymentMethod string

const (
	// PaymentMethodCOD means cash is collected by the shipper at delivery.
	PaymentMethodCOD PaymentMethod = "cod"
	// PaymentMethodGateway means the order was paid online through a provider.
	PaymentMethodGateway PaymentMethod = "gateway"
)

// Validate rejects unknown payment methods.
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentMethodCOD, PaymentMethodGateway:
		return nil
	default:
		return errs.NewValueIsInvalidError("payment method")
	}
}

// PaymentStatus tracks the payment leg of the order independently of
// fulfillment progress.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota
	PaymentStatusPending
	PaymentStatusPaid
	PaymentStatusFailed
	PaymentStatusRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown:  "unknown",
		PaymentStatusPending:  "pending",
		PaymentStatusPaid:     "paid",
		PaymentStatusFailed:   "failed",
		PaymentStatusRefunded: "refunded",
	}
}

// String returns the wire representation of the payment status.
func (p PaymentStatus) String() string {
	if s, ok := getPaymentStatusStrings()[p]; ok {
		return s
	}
	return "unknown"
}

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root for a customer purchase. It owns the overall
// fulfillment status and the payment leg; per-shop progress lives in the
// SubOrder aggregates referencing it.
//
// Invariants:
//   - status only moves along Status.Advance: final states never regress
//   - payment status and order status stay consistent (ConfirmPayment,
//     FailPayment and Refund move both together)
//   - the grand total is the sum of item total and shipping fee
//
// Orders are mutated only by the fulfillment consumers executing validated
// transitions; no other code path writes these fields.
type Order struct {
	id            kernel.UUID
	customerID    kernel.UUID
	itemsTotal    kernel.Money
	shippingFee   kernel.Money
	grandTotal    kernel.Money
	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	status        Status

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order awaiting payment. The grand total is derived
// from the item total and shipping fee.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	itemsTotal kernel.Money,
	shippingFee kernel.Money,
	paymentMethod PaymentMethod,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		customerID:    customerID,
		itemsTotal:    itemsTotal,
		shippingFee:   shippingFee,
		grandTotal:    itemsTotal.Add(shippingFee),
		paymentMethod: paymentMethod,
		paymentStatus: PaymentStatusPending,
		status:        PendingPayment,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an Order from persistence without re-deriving
// state, trusting the stored values.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	itemsTotal kernel.Money,
	shippingFee kernel.Money,
	grandTotal kernel.Money,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	status Status,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		paymentMethod.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		customerID:    customerID,
		itemsTotal:    itemsTotal,
		shippingFee:   shippingFee,
		grandTotal:    grandTotal,
		paymentMethod: paymentMethod,
		paymentStatus: paymentStatus,
		status:        status,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the buying customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// ItemsTotal returns the sum of item prices.
func (o *Order) ItemsTotal() kernel.Money { return o.itemsTotal }

// ShippingFee returns the shipping fee charged to the customer.
func (o *Order) ShippingFee() kernel.Money { return o.shippingFee }

// GrandTotal returns the total amount paid or owed by the customer.
func (o *Order) GrandTotal() kernel.Money { return o.grandTotal }

// PaymentMethod returns how the order is paid.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// PaymentStatus returns the current state of the payment leg.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// Status returns the current fulfillment status.
func (o *Order) Status() Status { return o.status }

// IsPaid reports whether the payment leg has completed successfully.
func (o *Order) IsPaid() bool {
	return o.paymentStatus == PaymentStatusPaid
}

// ConfirmPayment records a successful payment and moves the order into
// Processing so shipments can be created. Callers re-read the persisted
// order and skip the call when it is already paid (idempotent consumption).
func (o *Order) ConfirmPayment() error {
	newStatus, changed, err := o.status.Advance(Processing)
	if err != nil {
		return err
	}
	if changed {
		o.status = newStatus
	}

	o.paymentStatus = PaymentStatusPaid
	return nil
}

// FailPayment records a failed payment attempt.
func (o *Order) FailPayment() error {
	newStatus, changed, err := o.status.Advance(PaymentFailed)
	if err != nil {
		return err
	}
	if changed {
		o.status = newStatus
	}

	o.paymentStatus = PaymentStatusFailed
	return nil
}

// Refund moves the order into the final Refunded state and marks the payment
// leg refunded. Refunds of final orders other than Delivered are rejected by
// the status machine.
func (o *Order) Refund() error {
	newStatus, changed, err := o.status.Advance(Refunded)
	if err != nil {
		return err
	}
	if changed {
		o.status = newStatus
		o.paymentStatus = PaymentStatusRefunded
	}

	return nil
}

// AdvanceTo applies a fulfillment status transition. Stale or out-of-order
// targets are a no-op (changed == false); transitions out of a final state
// return a TerminalStateError.
func (o *Order) AdvanceTo(target Status) (bool, error) {
	newStatus, changed, err := o.status.Advance(target)
	if err != nil {
		return false, err
	}
	if changed {
		o.status = newStatus
	}

	return changed, nil
}
