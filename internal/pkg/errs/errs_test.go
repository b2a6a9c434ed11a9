package errs_test

import (
	"errors"
	"testing"

	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("shipmentId", "123")

		assert.Equal(t, "shipmentId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "status", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("unknown enum value")
		err := errs.NewValueIsInvalidErrorWithCause("status", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: status (cause: unknown enum value)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("deliveryAttempts", 5, 0, 3)

		assert.Equal(t, "deliveryAttempts", err.ParamName)
		assert.Equal(t, 5, err.Value)
		assert.Equal(t,
			"value is invalid: 5 is deliveryAttempts, min value is 0, max value is 3",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitizes newlines in string values", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("reason", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestTerminalStateError(t *testing.T) {
	err := errs.NewTerminalStateError("shipment", "returned", "delivered")

	assert.Equal(t, "state is terminal: shipment is returned, cannot apply delivered", err.Error())
	assert.ErrorIs(t, err, errs.ErrTerminalState)
}

func TestUnmappedStatusError(t *testing.T) {
	err := errs.NewUnmappedStatusError("teleported")

	assert.Equal(t, "status is not mapped: teleported", err.Error())
	assert.ErrorIs(t, err, errs.ErrUnmappedStatus)
}

func TestIsTerminal(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		terminal bool
	}{
		{"terminal state", errs.NewTerminalStateError("shipment", "returned", "delivered"), true},
		{"unmapped status", errs.NewUnmappedStatusError("weird"), true},
		{"invalid value", errs.NewValueIsInvalidError("status"), true},
		{"required value", errs.NewValueIsRequiredError("orderId"), true},
		{"retryable", errs.NewRetryableError("update shipment", errors.New("conn reset")), false},
		{"not found", errs.NewObjectNotFoundError("shipment", "s1"), false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.terminal, errs.IsTerminal(tc.err))
		})
	}
}
