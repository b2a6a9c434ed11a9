// Package events defines the wire vocabulary of the fulfillment broker: event
// names, the JSON envelope and the payloads the consumers and publishers
// share. Exchange and queue topology is a transport concern and lives in the
// rabbit adapter.
package events

import (
	"encoding/json"
	"time"
)

// Event names as they appear in envelope headers and routing keys.
const (
	PaymentSuccess  = "PAYMENT_SUCCESS"
	PaymentFailed   = "PAYMENT_FAILED"
	PaymentRefunded = "PAYMENT_REFUNDED"

	ShipmentCreateRequest = "SHIPMENT_CREATE_REQUEST"
	ShipmentCreated       = "SHIPMENT_CREATED"
	ShipmentAssigned      = "SHIPMENT_ASSIGNED"
	ShipmentStatusChanged = "SHIPMENT_STATUS_CHANGED"
	DeliveryCompleted     = "DELIVERY_COMPLETED"
	DeliveryFailed        = "DELIVERY_FAILED"
	ShipperRejection      = "SHIPPER_REJECTION"
	ShipperOffline        = "SHIPPER_OFFLINE"
	ShipperNearby         = "SHIPPER_NEARBY"
)

// Legacy event names still emitted by the old order service. Normalized to
// their canonical payment names at decode so handlers see a single vocabulary.
const (
	LegacyOrderPaymentSuccess = "order.payment_success"
	LegacyOrderPaymentFailed  = "order.payment_failed"
)

// Normalize maps legacy event names to their canonical form. Unknown names
// pass through unchanged.
func Normalize(event string) string {
	switch event {
	case LegacyOrderPaymentSuccess:
		return PaymentSuccess
	case LegacyOrderPaymentFailed:
		return PaymentFailed
	}
	return event
}

// Envelope is the JSON frame every broker message carries. Data stays raw
// until the dispatch table knows which payload to decode it into.
type Envelope struct {
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEnvelope frames a payload for publishing.
func NewEnvelope(event string, data json.RawMessage, at time.Time) Envelope {
	return Envelope{Event: event, Data: data, Timestamp: at}
}

// PaymentPayload is carried by PAYMENT_SUCCESS, PAYMENT_FAILED and
// PAYMENT_REFUNDED.
type PaymentPayload struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id,omitempty"`
	Amount        int64  `json:"amount,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// ShipmentCreateRequestPayload asks the fulfillment service to open a
// shipment for a sub-order. Published once per sub-order after payment.
type ShipmentCreateRequestPayload struct {
	OrderID    string `json:"order_id"`
	SubOrderID string `json:"sub_order_id"`
	CODAmount  int64  `json:"cod_amount"`
}

// ShipmentPayload is carried by SHIPMENT_CREATED and SHIPMENT_ASSIGNED.
type ShipmentPayload struct {
	ShipmentID     string `json:"shipment_id"`
	SubOrderID     string `json:"sub_order_id"`
	TrackingNumber string `json:"tracking_number"`
	ShipperID      string `json:"shipper_id,omitempty"`
}

// ShipmentStatusPayload is carried by SHIPMENT_STATUS_CHANGED.
type ShipmentStatusPayload struct {
	TrackingNumber string `json:"tracking_number"`
	Status         string `json:"status"`
}

// DeliveryCompletedPayload is carried by DELIVERY_COMPLETED.
type DeliveryCompletedPayload struct {
	TrackingNumber string `json:"tracking_number"`
	CODCollected   bool   `json:"cod_collected"`
}

// DeliveryFailedPayload is carried by DELIVERY_FAILED.
type DeliveryFailedPayload struct {
	TrackingNumber string `json:"tracking_number"`
	Reason         string `json:"reason"`
}

// ShipperEventPayload is carried by SHIPPER_REJECTION, SHIPPER_OFFLINE and
// SHIPPER_NEARBY. TrackingNumber is empty for SHIPPER_OFFLINE, which concerns
// every shipment the shipper carries.
type ShipperEventPayload struct {
	ShipperID      string `json:"shipper_id"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	EtaMinutes     int    `json:"eta_minutes,omitempty"`
}
