package services_test

import (
	"testing"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingShipment(t *testing.T) *shipment.Shipment {
	t.Helper()

	pickup, err := kernel.NewGeoPoint(10.7769, 106.7009)
	require.NoError(t, err)
	delivery, err := kernel.NewGeoPoint(10.8231, 106.6297)
	require.NoError(t, err)
	sh, err := shipment.NewShipment(kernel.NewUUID(), "SHP-000321", kernel.NewUUID(), kernel.ZeroMoney(), pickup, delivery)
	require.NoError(t, err)

	return sh
}

func mustGeoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()

	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)

	return p
}

func TestShipperDispatcher_Dispatch(t *testing.T) {
	dispatcher := services.NewShipperDispatcher()

	t.Run("picks_the_closest_free_shipper", func(t *testing.T) {
		sh := newPendingShipment(t)
		near := services.ShipperCandidate{
			ID: kernel.NewUUID(), Location: mustGeoPoint(t, 10.78, 106.70),
			ActiveShipments: 1, MaxShipments: 5,
		}
		far := services.ShipperCandidate{
			ID: kernel.NewUUID(), Location: mustGeoPoint(t, 10.95, 106.85),
			ActiveShipments: 0, MaxShipments: 5,
		}

		chosen, err := dispatcher.Dispatch(sh, []services.ShipperCandidate{far, near})

		require.NoError(t, err)
		assert.True(t, chosen.IsEqual(near.ID))
		assert.Equal(t, shipment.Assigned, sh.Status())
		require.NotNil(t, sh.Shipper())
		assert.True(t, sh.Shipper().IsEqual(near.ID))
	})

	t.Run("skips_shippers_at_capacity", func(t *testing.T) {
		sh := newPendingShipment(t)
		loaded := services.ShipperCandidate{
			ID: kernel.NewUUID(), Location: mustGeoPoint(t, 10.7769, 106.7009),
			ActiveShipments: 5, MaxShipments: 5,
		}
		free := services.ShipperCandidate{
			ID: kernel.NewUUID(), Location: mustGeoPoint(t, 10.90, 106.80),
			ActiveShipments: 0, MaxShipments: 5,
		}

		chosen, err := dispatcher.Dispatch(sh, []services.ShipperCandidate{loaded, free})

		require.NoError(t, err)
		assert.True(t, chosen.IsEqual(free.ID))
	})

	t.Run("no_free_shipper_leaves_shipment_pending", func(t *testing.T) {
		sh := newPendingShipment(t)
		loaded := services.ShipperCandidate{
			ID: kernel.NewUUID(), Location: mustGeoPoint(t, 10.78, 106.70),
			ActiveShipments: 5, MaxShipments: 5,
		}

		_, err := dispatcher.Dispatch(sh, []services.ShipperCandidate{loaded})

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrShipperNotFound)
		assert.Equal(t, shipment.Pending, sh.Status())
	})

	t.Run("no_candidates_at_all", func(t *testing.T) {
		sh := newPendingShipment(t)

		_, err := dispatcher.Dispatch(sh, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrShipperNotFound)
	})
}
