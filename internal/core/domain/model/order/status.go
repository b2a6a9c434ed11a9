package order

import (
	"fmt"

	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	PendingPayment ──> Confirmed ──> Processing ──> Shipping ──> Delivered ──> Completed
//	      │                                                          │
//	      └──> PaymentFailed                        Refunded <───────┘  (from any non-final state)
//
// Cancelled and Refunded are reachable from every non-final state. Completed,
// Cancelled and Refunded are final: no event can move an order out of them.
//
// Because events arrive at least once and possibly out of order, Advance
// treats a transition that is not in the table as a stale replay (no-op)
// rather than an error; only transitions out of a final state are rejected.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// PendingPayment is the initial status: the order awaits a payment outcome.
	PendingPayment

	// Confirmed indicates the payment was authorized but fulfillment has not begun.
	Confirmed

	// PaymentFailed indicates the payment attempt failed; the customer may retry.
	PaymentFailed

	// Processing indicates the order is paid and sub-orders are being prepared.
	Processing

	// Shipping indicates at least one shipment is in flight.
	Shipping

	// Delivered indicates every sub-order reached its customer.
	Delivered

	// Completed is the final success state, set by the completion policy.
	Completed

	// Cancelled is a final state for orders abandoned before completion.
	Cancelled

	// Refunded is a final state for orders whose payment was returned.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		PendingPayment: "pending_payment",
		Confirmed:      "confirmed",
		PaymentFailed:  "payment_failed",
		Processing:     "processing",
		Shipping:       "shipping",
		Delivered:      "delivered",
		Completed:      "completed",
		Cancelled:      "cancelled",
		Refunded:       "refunded",
	}
}

// allowedTransitions lists the legal forward edges of the order state machine.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		PendingPayment: {Confirmed, PaymentFailed, Processing, Cancelled},
		Confirmed:      {Processing, Shipping, Cancelled, Refunded},
		PaymentFailed:  {PendingPayment, Cancelled},
		Processing:     {Shipping, Delivered, Cancelled, Refunded},
		Shipping:       {Delivered, Completed, Cancelled, Refunded},
		Delivered:      {Completed, Refunded},
	}
}

// StatusFromString parses a status received from an event payload.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("order status",
		fmt.Errorf("%q is not a valid order status", s))
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled || s == Refunded
}

// Advance computes the transition to target.
//
// Returns:
//   - (target, true, nil) when the transition is legal
//   - (s, false, nil) when target equals the current status or the transition
//     is not in the table (stale or out-of-order event; treated as a no-op)
//   - (s, false, TerminalStateError) when s is final and target differs
func (s Status) Advance(target Status) (Status, bool, error) {
	if err := target.Validate(); err != nil {
		return s, false, err
	}

	if s == target {
		return s, false, nil
	}

	if s.IsFinal() {
		return s, false, errs.NewTerminalStateError("order", s.String(), target.String())
	}

	for _, allowed := range allowedTransitions()[s] {
		if allowed == target {
			return target, true, nil
		}
	}

	return s, false, nil
}
