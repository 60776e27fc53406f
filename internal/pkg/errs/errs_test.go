package errs_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("vendorId", "123", cause)

		assert.Equal(t, "vendorId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: vendorId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("carrier")

		assert.Equal(t, "carrier", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: carrier", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("vendor is inactive")
		err := errs.NewValueIsInvalidErrorWithCause("vendorId", cause)

		assert.Equal(t, "vendorId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: vendorId (cause: vendor is inactive)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("trackingNumber")

		assert.Equal(t, "trackingNumber", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: trackingNumber", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("holdReason", cause)

		assert.Equal(t, "holdReason", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: holdReason (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestStateConflictError(t *testing.T) {
	t.Run("NewStateConflictError", func(t *testing.T) {
		err := errs.NewStateConflictError("ord-1", "Production", "Shipped")

		assert.Equal(t, "ord-1", err.OrderID)
		assert.Equal(t, "Production", err.Expected)
		assert.Equal(t, "Shipped", err.Actual)
		require.NoError(t, err.Cause)
		assert.Equal(t, "state conflict: order ord-1 is Shipped, expected Production", err.Error())
		assert.Equal(t, errs.ErrStateConflict, err.Unwrap())
	})

	t.Run("NewStateConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("0 rows affected")
		err := errs.NewStateConflictErrorWithCause("ord-1", "Production", "Shipped", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"state conflict: order ord-1 is Shipped, expected Production (cause: 0 rows affected)",
			err.Error())
	})
}

func TestInvalidTransitionError(t *testing.T) {
	t.Run("NewInvalidTransitionError", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("Delivered", "Production")

		assert.Equal(t, "Delivered", err.From)
		assert.Equal(t, "Production", err.To)
		require.NoError(t, err.Cause)
		assert.Equal(t, "invalid status transition: Delivered -> Production", err.Error())
		assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
	})

	t.Run("NewInvalidTransitionErrorWithCause", func(t *testing.T) {
		cause := errors.New("not in transition table")
		err := errs.NewInvalidTransitionErrorWithCause("Cancelled", "Production", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"invalid status transition: Cancelled -> Production (cause: not in transition table)",
			err.Error())
	})
}

func TestSideEffectError(t *testing.T) {
	cause := errors.New("smtp timeout")
	err := errs.NewSideEffectError("shipping_notification", "ord-1", cause)

	assert.Equal(t, "shipping_notification", err.Effect)
	assert.Equal(t, "ord-1", err.OrderID)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t,
		"side effect failed: shipping_notification for order ord-1 (cause: smtp timeout)",
		err.Error())
	assert.Equal(t, errs.ErrSideEffectFailed, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrStateConflict)
		require.Error(t, errs.ErrInvalidTransition)
		require.Error(t, errs.ErrSideEffectFailed)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "state conflict", errs.ErrStateConflict.Error())
		assert.Equal(t, "invalid status transition", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "side effect failed", errs.ErrSideEffectFailed.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("carrier"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsRequiredError("trackingNumber"), errs.ErrValueIsRequired)
		require.ErrorIs(t,
			errs.NewStateConflictError("ord-1", "Production", "Shipped"), errs.ErrStateConflict)
		require.ErrorIs(t,
			errs.NewInvalidTransitionError("Delivered", "Production"), errs.ErrInvalidTransition)
		require.ErrorIs(t,
			errs.NewSideEffectError("vendor_webhook", "ord-1", errors.New("boom")),
			errs.ErrSideEffectFailed)
	})
}
