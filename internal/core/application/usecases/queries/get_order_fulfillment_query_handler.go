package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/order"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderFulfillmentQueryHandler reads the fulfillment view straight from
// the database, bypassing the aggregates. One query for the order header, one
// join for the sub-order rows.
type GetOrderFulfillmentQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderFulfillmentQueryHandler creates a handler for fulfillment view
// queries. Requires a GORM database connection for query execution.
func NewGetOrderFulfillmentQueryHandler(db *gorm.DB) GetOrderFulfillmentQueryHandler {
	return GetOrderFulfillmentQueryHandler{db: db}
}

// Handle executes the query. Returns ErrObjectNotFound when the order does
// not exist.
func (h GetOrderFulfillmentQueryHandler) Handle(
	ctx context.Context,
	query GetOrderFulfillmentQuery,
) (GetOrderFulfillmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	response, err := h.readHeader(ctx, query.OrderID())
	if err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	response.SubOrders, err = h.readSubOrders(ctx, query.OrderID())
	if err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderFulfillmentQueryHandler) readHeader(
	ctx context.Context, orderID kernel.UUID,
) (GetOrderFulfillmentQueryResponse, error) {
	var response GetOrderFulfillmentQueryResponse
	var id, customerID uuid.UUID
	var status, paymentStatus int
	var paymentMethod string

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			payment_method,
			payment_status,
			grand_total
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(
		&id,
		&customerID,
		&status,
		&paymentMethod,
		&paymentStatus,
		&response.GrandTotal,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return response, errs.NewObjectNotFoundError("order", orderID.String())
	}
	if err != nil {
		return response, err
	}

	if response.OrderID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return response, err
	}
	if response.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return response, err
	}

	response.Status = order.Status(status).String()
	response.PaymentMethod = paymentMethod
	response.PaymentStatus = order.PaymentStatus(paymentStatus).String()
	return response, nil
}

func (h GetOrderFulfillmentQueryHandler) readSubOrders(
	ctx context.Context, orderID kernel.UUID,
) ([]SubOrderFulfillmentView, error) {
	views := make([]SubOrderFulfillmentView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			so.id,
			so.shop_id,
			so.status,
			so.tracking_number,
			sh.status,
			sh.delivery_attempts
		FROM sub_orders so
		LEFT JOIN shipments sh ON sh.tracking_number = so.tracking_number
		WHERE so.order_id = ?
		ORDER BY so.id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var view SubOrderFulfillmentView
		var id, shopID uuid.UUID
		var status int
		var shipmentStatus, deliveryAttempts sql.NullInt64

		err = rows.Scan(
			&id,
			&shopID,
			&status,
			&view.TrackingNumber,
			&shipmentStatus,
			&deliveryAttempts,
		)
		if err != nil {
			return nil, err
		}

		if view.SubOrderID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.ShopID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
			return nil, err
		}

		view.Status = suborder.Status(status).String()
		if shipmentStatus.Valid {
			view.ShipmentStatus = shipment.Status(shipmentStatus.Int64).String()
			view.DeliveryAttempts = int(deliveryAttempts.Int64)
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
