package suborder_test

import (
	"testing"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_StringRoundTrip(t *testing.T) {
	statuses := []suborder.Status{
		suborder.Pending, suborder.Confirmed, suborder.Processing,
		suborder.ReadyToShip, suborder.Shipping, suborder.Delivered,
		suborder.Completed, suborder.DeliveryFailed, suborder.Returning,
		suborder.Returned, suborder.Cancelled, suborder.RefundRequested,
		suborder.Refunded,
	}

	for _, status := range statuses {
		t.Run(status.String(), func(t *testing.T) {
			parsed, err := suborder.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		})
	}
}

func TestStatus_Advance(t *testing.T) {
	t.Run("success_path", func(t *testing.T) {
		path := []suborder.Status{
			suborder.Confirmed, suborder.Processing, suborder.ReadyToShip,
			suborder.Shipping, suborder.Delivered, suborder.Completed,
		}

		current := suborder.Pending
		for _, next := range path {
			newStatus, changed, err := current.Advance(next)
			require.NoError(t, err, "from %s to %s", current, next)
			assert.True(t, changed, "from %s to %s", current, next)
			current = newStatus
		}
		assert.Equal(t, suborder.Completed, current)
	})

	t.Run("failure_branch_to_return", func(t *testing.T) {
		newStatus, changed, err := suborder.Shipping.Advance(suborder.DeliveryFailed)
		require.NoError(t, err)
		require.True(t, changed)

		newStatus, changed, err = newStatus.Advance(suborder.Returning)
		require.NoError(t, err)
		require.True(t, changed)

		newStatus, changed, err = newStatus.Advance(suborder.Returned)
		require.NoError(t, err)
		require.True(t, changed)
		assert.Equal(t, suborder.Returned, newStatus)
	})

	t.Run("failed_delivery_can_reenter_shipping", func(t *testing.T) {
		// Redelivery attempt after a failed one.
		newStatus, changed, err := suborder.DeliveryFailed.Advance(suborder.Shipping)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, suborder.Shipping, newStatus)
	})

	t.Run("stale_transition_is_noop", func(t *testing.T) {
		newStatus, changed, err := suborder.Delivered.Advance(suborder.Shipping)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, suborder.Delivered, newStatus)
	})

	t.Run("final_states_reject_transitions", func(t *testing.T) {
		finals := []suborder.Status{
			suborder.Completed, suborder.Returned, suborder.Cancelled, suborder.Refunded,
		}
		for _, final := range finals {
			_, _, err := final.Advance(suborder.Shipping)

			require.Error(t, err, "final %s", final)
			assert.ErrorIs(t, err, errs.ErrTerminalState)
		}
	})
}

func TestStatus_IsTerminalSuccess(t *testing.T) {
	assert.True(t, suborder.Delivered.IsTerminalSuccess())
	assert.True(t, suborder.Completed.IsTerminalSuccess())
	assert.False(t, suborder.Returned.IsTerminalSuccess())
	assert.False(t, suborder.Shipping.IsTerminalSuccess())
}
