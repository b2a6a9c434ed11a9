package services_test

import (
	"testing"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/order"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessingOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		kernel.ZeroMoney(), kernel.ZeroMoney(), order.PaymentMethodCOD)
	require.NoError(t, err)
	require.NoError(t, o.ConfirmPayment())

	return o
}

func newSubOrderIn(t *testing.T, orderID kernel.UUID, status suborder.Status) *suborder.SubOrder {
	t.Helper()

	so, err := suborder.RestoreSubOrder(
		kernel.NewUUID(), orderID, kernel.NewUUID(), kernel.ZeroMoney(),
		status, nil, "", "12 Shop Street", "34 Customer Lane")
	require.NoError(t, err)

	return so
}

func TestCompletionPolicy_CheckAndComplete(t *testing.T) {
	policy := services.NewCompletionPolicy()

	t.Run("completes_when_all_suborders_delivered", func(t *testing.T) {
		o := newProcessingOrder(t)
		subs := []*suborder.SubOrder{
			newSubOrderIn(t, o.ID(), suborder.Delivered),
			newSubOrderIn(t, o.ID(), suborder.Completed),
		}

		completed, err := policy.CheckAndComplete(o, subs)

		require.NoError(t, err)
		assert.True(t, completed)
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("waits_while_any_suborder_is_open", func(t *testing.T) {
		o := newProcessingOrder(t)
		subs := []*suborder.SubOrder{
			newSubOrderIn(t, o.ID(), suborder.Delivered),
			newSubOrderIn(t, o.ID(), suborder.Shipping),
		}

		completed, err := policy.CheckAndComplete(o, subs)

		require.NoError(t, err)
		assert.False(t, completed)
		assert.Equal(t, order.Processing, o.Status())
	})

	t.Run("mixed_outcome_never_completes", func(t *testing.T) {
		o := newProcessingOrder(t)
		subs := []*suborder.SubOrder{
			newSubOrderIn(t, o.ID(), suborder.Delivered),
			newSubOrderIn(t, o.ID(), suborder.Returned),
		}

		completed, err := policy.CheckAndComplete(o, subs)

		require.NoError(t, err)
		assert.False(t, completed)
	})

	t.Run("already_final_order_is_a_noop", func(t *testing.T) {
		o := newProcessingOrder(t)
		subs := []*suborder.SubOrder{newSubOrderIn(t, o.ID(), suborder.Delivered)}
		completed, err := policy.CheckAndComplete(o, subs)
		require.NoError(t, err)
		require.True(t, completed)

		// Redelivered event re-runs the policy against a completed order.
		completed, err = policy.CheckAndComplete(o, subs)

		require.NoError(t, err)
		assert.False(t, completed)
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("no_suborders_means_nothing_to_complete", func(t *testing.T) {
		o := newProcessingOrder(t)

		completed, err := policy.CheckAndComplete(o, nil)

		require.NoError(t, err)
		assert.False(t, completed)
	})
}
