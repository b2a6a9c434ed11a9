package shipment

import (
	"fmt"

	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
)

// Status represents the courier-side lifecycle of a shipment.
//
// Success path:
//
//	Pending ──> Assigned ──> PickedUp ──> InTransit ──> OutForDelivery ──> Delivered
//
// Failure loop:
//
//	OutForDelivery ──> Failed ──> PendingRedelivery ──> OutForDelivery (next attempt)
//	Failed ──> Returning ──> Returned (attempts exhausted)
//
// PendingRedelivery also accepts Delivered directly: the completion event may
// arrive before the redelivery dispatch puts the shipment back out for
// delivery, and a real doorstep handover must not be dropped over ordering.
//
// Delivered, Returned and Cancelled are final. Stale targets are no-ops, the
// same way order and sub-order statuses behave.
type Status int

const (
	Unknown Status = iota
	Pending
	Assigned
	PickedUp
	InTransit
	OutForDelivery
	Delivered
	Failed
	PendingRedelivery
	Returning
	Returned
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "unknown",
		Pending:           "pending",
		Assigned:          "assigned",
		PickedUp:          "picked_up",
		InTransit:         "in_transit",
		OutForDelivery:    "out_for_delivery",
		Delivered:         "delivered",
		Failed:            "failed",
		PendingRedelivery: "pending_redelivery",
		Returning:         "returning",
		Returned:          "returned",
		Cancelled:         "cancelled",
	}
}

func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:           {Assigned, Cancelled},
		Assigned:          {Pending, PickedUp, InTransit, Cancelled},
		PickedUp:          {InTransit, OutForDelivery, Delivered, Failed, Cancelled},
		InTransit:         {OutForDelivery, Delivered, Failed, Cancelled},
		OutForDelivery:    {Delivered, Failed, Cancelled},
		Failed:            {PendingRedelivery, Returning, Cancelled},
		PendingRedelivery: {OutForDelivery, Delivered, Returning, Cancelled},
		Returning:         {Returned, Cancelled},
	}
}

// StatusFromString parses a status received from a courier event payload.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("shipment status",
		fmt.Errorf("%q is not a valid shipment status", s))
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
	return s == Delivered || s == Returned || s == Cancelled
}

// Advance computes the transition to target: no-op for stale or unknown
// targets in the table, TerminalStateError out of a final state.
func (s Status) Advance(target Status) (Status, bool, error) {
	if err := target.Validate(); err != nil {
		return s, false, err
	}

	if s == target {
		return s, false, nil
	}

	if s.IsFinal() {
		return s, false, errs.NewTerminalStateError("shipment", s.String(), target.String())
	}

	for _, allowed := range allowedTransitions()[s] {
		if allowed == target {
			return target, true, nil
		}
	}

	return s, false, nil
}
