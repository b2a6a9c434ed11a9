package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"order.payment_success", events.PaymentSuccess},
		{"order.payment_failed", events.PaymentFailed},
		{events.PaymentSuccess, events.PaymentSuccess},
		{events.DeliveryCompleted, events.DeliveryCompleted},
		{"something.else", "something.else"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, events.Normalize(tt.in))
		})
	}
}

func TestEnvelope_Decode(t *testing.T) {
	raw := []byte(`{
		"event": "DELIVERY_FAILED",
		"data": {"tracking_number": "SHP-000123", "reason": "customer unavailable"},
		"timestamp": "2026-09-01T10:15:00Z"
	}`)

	var env events.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, events.DeliveryFailed, env.Event)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 15, 0, 0, time.UTC), env.Timestamp)

	var payload events.DeliveryFailedPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "SHP-000123", payload.TrackingNumber)
	assert.Equal(t, "customer unavailable", payload.Reason)
}
