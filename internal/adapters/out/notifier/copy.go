package notifier

import (
	"fmt"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
)

func titleFor(kind notification.Kind) string {
	switch kind {
	case notification.KindPaymentConfirmed:
		return "Payment confirmed"
	case notification.KindPaymentFailed:
		return "Payment failed"
	case notification.KindPaymentRefunded:
		return "Refund issued"
	case notification.KindShipmentCreated:
		return "Your order is being prepared"
	case notification.KindShipperAssigned:
		return "New delivery assignment"
	case notification.KindShipmentProgress:
		return "Delivery update"
	case notification.KindShipperNearby:
		return "Your shipper is nearby"
	case notification.KindDeliveryCompleted:
		return "Delivered"
	case notification.KindRedeliveryScheduled:
		return "Delivery attempt failed"
	case notification.KindParcelReturning:
		return "Parcel returning to shop"
	case notification.KindOrderCompleted:
		return "Order completed"
	case notification.KindRatingPrompt:
		return "How was your order?"
	}
	return string(kind)
}

func bodyFor(role notification.Role, kind notification.Kind, params notification.Params) string {
	tracking := params["tracking_number"]

	switch kind {
	case notification.KindPaymentConfirmed:
		if role == notification.RolePartner {
			return "A paid order is waiting to be packed."
		}
		return "We received your payment. Your order is on its way to fulfillment."
	case notification.KindPaymentFailed:
		return fmt.Sprintf("Your payment could not be processed: %s.", params["reason"])
	case notification.KindPaymentRefunded:
		return fmt.Sprintf("Your payment of %s was refunded.", params["amount"])
	case notification.KindShipmentCreated:
		return fmt.Sprintf("Shipment %s has been created for your order.", tracking)
	case notification.KindShipperAssigned:
		return fmt.Sprintf("Pick up shipment %s at the shop.", tracking)
	case notification.KindShipmentProgress:
		if role == notification.RolePartner {
			return fmt.Sprintf("Shipment %s was picked up.", tracking)
		}
		return fmt.Sprintf("Shipment %s is out for delivery.", tracking)
	case notification.KindShipperNearby:
		if eta := params["eta_minutes"]; eta != "" {
			return fmt.Sprintf("Your shipper is about %s minutes away.", eta)
		}
		return "Your shipper is almost there."
	case notification.KindDeliveryCompleted:
		if role == notification.RolePartner {
			return fmt.Sprintf("Shipment %s was delivered. COD collected: %s.",
				tracking, params["cod_amount"])
		}
		return fmt.Sprintf("Shipment %s was delivered. Enjoy!", tracking)
	case notification.KindRedeliveryScheduled:
		return fmt.Sprintf("We could not deliver shipment %s (%s). Next attempt: %s.",
			tracking, params["reason"], params["next_attempt"])
	case notification.KindParcelReturning:
		return fmt.Sprintf("Shipment %s is coming back: %s.", tracking, params["reason"])
	case notification.KindOrderCompleted:
		return "All parcels arrived. Your order is complete."
	case notification.KindRatingPrompt:
		return "Tell us how the shop and the delivery went."
	}
	return string(kind)
}
