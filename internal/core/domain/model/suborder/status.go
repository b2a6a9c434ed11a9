package suborder

import (
	"fmt"

	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
)

// Status represents the lifecycle state of a sub-order, the per-shop slice of
// a customer order.
//
// Success path:
//
//	Pending ──> Confirmed ──> Processing ──> ReadyToShip ──> Shipping ──> Delivered ──> Completed
//
// Failure branches:
//
//	Shipping ──> DeliveryFailed ──> Returning ──> Returned
//	any non-final ──> Cancelled
//	Delivered/Returned ──> RefundRequested ──> Refunded
//
// Completed, Returned, Cancelled and Refunded are final. As with orders,
// transitions not present in the table are treated as stale replays and
// applied as no-ops; only transitions out of a final state are errors.
type Status int

const (
	Unknown Status = iota
	Pending
	Confirmed
	Processing
	ReadyToShip
	Shipping
	Delivered
	Completed
	DeliveryFailed
	Returning
	Returned
	Cancelled
	RefundRequested
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		Pending:         "pending",
		Confirmed:       "confirmed",
		Processing:      "processing",
		ReadyToShip:     "ready_to_ship",
		Shipping:        "shipping",
		Delivered:       "delivered",
		Completed:       "completed",
		DeliveryFailed:  "delivery_failed",
		Returning:       "returning",
		Returned:        "returned",
		Cancelled:       "cancelled",
		RefundRequested: "refund_requested",
		Refunded:        "refunded",
	}
}

func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Confirmed, Processing, Cancelled},
		Confirmed:      {Processing, ReadyToShip, Cancelled},
		Processing:     {ReadyToShip, Shipping, Delivered, Cancelled},
		ReadyToShip:    {Shipping, Delivered, DeliveryFailed, Cancelled},
		Shipping:       {Delivered, Completed, DeliveryFailed, Cancelled},
		Delivered:      {Completed, RefundRequested},
		DeliveryFailed: {ReadyToShip, Shipping, Returning, Cancelled},
		Returning:      {Returned, Cancelled},
		RefundRequested: {
			Refunded,
		},
	}
}

// StatusFromString parses a status received from an event payload.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("sub-order status",
		fmt.Errorf("%q is not a valid sub-order status", s))
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
	return s == Completed || s == Returned || s == Cancelled || s == Refunded
}

// IsTerminalSuccess reports whether the sub-order counts towards whole-order
// completion.
func (s Status) IsTerminalSuccess() bool {
	return s == Delivered || s == Completed
}

// Advance computes the transition to target with the same semantics as the
// order status machine: no-op for stale targets, TerminalStateError out of a
// final state.
func (s Status) Advance(target Status) (Status, bool, error) {
	if err := target.Validate(); err != nil {
		return s, false, err
	}

	if s == target {
		return s, false, nil
	}

	if s.IsFinal() {
		return s, false, errs.NewTerminalStateError("sub-order", s.String(), target.String())
	}

	for _, allowed := range allowedTransitions()[s] {
		if allowed == target {
			return target, true, nil
		}
	}

	return s, false, nil
}
