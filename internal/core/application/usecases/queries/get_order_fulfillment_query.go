package queries

import (
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/guard"
)

var (
	ErrGetOrderFulfillmentQueryIsNotConstructed = errors.New(
		"GetOrderFulfillmentQuery must be created via NewGetOrderFulfillmentQuery constructor",
	)
)

// GetOrderFulfillmentQuery retrieves the full fulfillment picture of one
// order: payment state, every sub-order and the shipment attached to it.
//
// Example:
//
//	query, err := NewGetOrderFulfillmentQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get fulfillment view: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s with %d sub-orders\n",
//	    view.OrderID, view.Status, len(view.SubOrders))
type GetOrderFulfillmentQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderFulfillmentQuery creates a query for the given order.
func NewGetOrderFulfillmentQuery(orderID kernel.UUID) (GetOrderFulfillmentQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderFulfillmentQuery{}, err
	}

	return GetOrderFulfillmentQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order being queried.
func (q GetOrderFulfillmentQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderFulfillmentQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderFulfillmentQueryIsNotConstructed)
}

// SubOrderFulfillmentView is one sub-order row of the fulfillment view.
// ShipmentStatus is empty while no shipment exists for the sub-order yet.
type SubOrderFulfillmentView struct {
	SubOrderID       kernel.UUID
	ShopID           kernel.UUID
	Status           string
	TrackingNumber   string
	ShipmentStatus   string
	DeliveryAttempts int
}

// GetOrderFulfillmentQueryResponse is the read model returned to API clients
// tracking an order.
type GetOrderFulfillmentQueryResponse struct {
	OrderID       kernel.UUID
	CustomerID    kernel.UUID
	Status        string
	PaymentMethod string
	PaymentStatus string
	GrandTotal    int64
	SubOrders     []SubOrderFulfillmentView
}
