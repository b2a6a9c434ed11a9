// Package http exposes the operational surface of the fulfillment core over
// echo: health, consumer lifecycle, metrics and the read-side views.
package http

import (
	"errors"
	"net/http"

	"github.com/TienDattttt/shoppi-sub004/internal/consumers"
	"github.com/TienDattttt/shoppi-sub004/internal/core/application/usecases/queries"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Error is the JSON error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between the HTTP surface, the consumer manager and the
// read-side query handlers.
type Server struct {
	manager *consumers.Manager

	orderFulfillmentHandler queries.GetOrderFulfillmentQueryHandler
	codBalanceHandler       queries.GetShipperCODBalanceQueryHandler
}

// NewServer creates the HTTP server facade.
func NewServer(
	manager *consumers.Manager,
	orderFulfillmentHandler queries.GetOrderFulfillmentQueryHandler,
	codBalanceHandler queries.GetShipperCODBalanceQueryHandler,
) *Server {
	return &Server{
		manager:                 manager,
		orderFulfillmentHandler: orderFulfillmentHandler,
		codBalanceHandler:       codBalanceHandler,
	}
}

// Router builds the echo instance with all routes registered.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", s.Health)
	e.GET("/consumers", s.GetConsumers)
	e.POST("/consumers/:name/restart", s.RestartConsumer)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/api/v1/orders/:id/fulfillment", s.GetOrderFulfillment)
	e.GET("/api/v1/shippers/:id/cod-balance", s.GetShipperCODBalance)

	return e
}

// Health handles GET /health. Degraded consumers turn the process unhealthy
// without killing it, so orchestrators can see the difference.
func (s *Server) Health(ctx echo.Context) error {
	if err := s.manager.HealthCheck(); err != nil {
		return ctx.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"reason": err.Error(),
		})
	}

	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetConsumers handles GET /consumers - reports every consumer's state.
func (s *Server) GetConsumers(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.manager.Statuses())
}

// RestartConsumer handles POST /consumers/:name/restart.
func (s *Server) RestartConsumer(ctx echo.Context) error {
	name := ctx.Param("name")

	if err := s.manager.Restart(ctx.Request().Context(), name); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Unknown consumer: " + name,
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to restart consumer: " + err.Error(),
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderFulfillment handles GET /api/v1/orders/:id/fulfillment.
func (s *Server) GetOrderFulfillment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderFulfillmentQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	view, err := s.orderFulfillmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve fulfillment view",
		})
	}

	return ctx.JSON(http.StatusOK, toFulfillmentResponse(view))
}

// GetShipperCODBalance handles GET /api/v1/shippers/:id/cod-balance.
func (s *Server) GetShipperCODBalance(ctx echo.Context) error {
	shipperID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid shipper id",
		})
	}

	query, err := queries.NewGetShipperCODBalanceQuery(shipperID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	balance, err := s.codBalanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve COD balance",
		})
	}

	return ctx.JSON(http.StatusOK, codBalanceResponse{
		ShipperID:      balance.ShipperID.String(),
		Day:            balance.Day.Format("2006-01-02"),
		CollectedTotal: balance.CollectedTotal,
		ShipmentCount:  balance.ShipmentCount,
	})
}

type subOrderFulfillmentResponse struct {
	SubOrderID       string `json:"sub_order_id"`
	ShopID           string `json:"shop_id"`
	Status           string `json:"status"`
	TrackingNumber   string `json:"tracking_number,omitempty"`
	ShipmentStatus   string `json:"shipment_status,omitempty"`
	DeliveryAttempts int    `json:"delivery_attempts"`
}

type fulfillmentResponse struct {
	OrderID       string                        `json:"order_id"`
	CustomerID    string                        `json:"customer_id"`
	Status        string                        `json:"status"`
	PaymentMethod string                        `json:"payment_method"`
	PaymentStatus string                        `json:"payment_status"`
	GrandTotal    int64                         `json:"grand_total"`
	SubOrders     []subOrderFulfillmentResponse `json:"sub_orders"`
}

type codBalanceResponse struct {
	ShipperID      string `json:"shipper_id"`
	Day            string `json:"day"`
	CollectedTotal int64  `json:"collected_total"`
	ShipmentCount  int    `json:"shipment_count"`
}

func toFulfillmentResponse(view queries.GetOrderFulfillmentQueryResponse) fulfillmentResponse {
	subOrders := make([]subOrderFulfillmentResponse, len(view.SubOrders))
	for i, so := range view.SubOrders {
		subOrders[i] = subOrderFulfillmentResponse{
			SubOrderID:       so.SubOrderID.String(),
			ShopID:           so.ShopID.String(),
			Status:           so.Status,
			TrackingNumber:   so.TrackingNumber,
			ShipmentStatus:   so.ShipmentStatus,
			DeliveryAttempts: so.DeliveryAttempts,
		}
	}

	return fulfillmentResponse{
		OrderID:       view.OrderID.String(),
		CustomerID:    view.CustomerID.String(),
		Status:        view.Status,
		PaymentMethod: view.PaymentMethod,
		PaymentStatus: view.PaymentStatus,
		GrandTotal:    view.GrandTotal,
		SubOrders:     subOrders,
	}
}
