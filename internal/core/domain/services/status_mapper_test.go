package services_test

import (
	"testing"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/order"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/services"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapper_SubOrderStatusFor(t *testing.T) {
	mapper := services.NewStatusMapper()

	tests := []struct {
		shipmentStatus shipment.Status
		want           suborder.Status
	}{
		{shipment.Assigned, suborder.ReadyToShip},
		{shipment.PickedUp, suborder.Shipping},
		{shipment.InTransit, suborder.Shipping},
		{shipment.OutForDelivery, suborder.Shipping},
		{shipment.Delivered, suborder.Delivered},
		{shipment.Failed, suborder.DeliveryFailed},
		{shipment.PendingRedelivery, suborder.DeliveryFailed},
		{shipment.Returning, suborder.Returning},
		{shipment.Returned, suborder.Returned},
		{shipment.Cancelled, suborder.Cancelled},
	}

	for _, tt := range tests {
		t.Run(tt.shipmentStatus.String(), func(t *testing.T) {
			got, err := mapper.SubOrderStatusFor(tt.shipmentStatus)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusMapper_SubOrderStatusFor_Unmapped(t *testing.T) {
	mapper := services.NewStatusMapper()

	_, err := mapper.SubOrderStatusFor(shipment.Pending)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnmappedStatus)
}

func TestStatusMapper_OrderStatusFor(t *testing.T) {
	mapper := services.NewStatusMapper()

	t.Run("shipping_suborder_moves_the_order", func(t *testing.T) {
		got, ok := mapper.OrderStatusFor(suborder.Shipping)

		require.True(t, ok)
		assert.Equal(t, order.Shipping, got)
	})

	t.Run("delivered_suborder_defers_to_completion_policy", func(t *testing.T) {
		_, ok := mapper.OrderStatusFor(suborder.Delivered)

		assert.False(t, ok)
	})

	t.Run("returned_suborder_keeps_order_in_processing", func(t *testing.T) {
		got, ok := mapper.OrderStatusFor(suborder.Returned)

		require.True(t, ok)
		assert.Equal(t, order.Processing, got)
	})
}
