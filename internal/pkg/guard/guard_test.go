package guard_test

import (
	"errors"
	"testing"

	"laundry/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("DeliveryBatch must be created via NewBatch")

	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("copies_keep_constructed_state", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		cp := g

		require.NoError(t, cp.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_EmbeddedInEntity(t *testing.T) {
	type fee struct {
		amount int
		guard  guard.ConstructorGuard
	}
	errFeeNotConstructed := errors.New("fee must be created via newFee")
	newFee := func(amount int) (fee, error) {
		if amount < 0 {
			return fee{}, errors.New("amount cannot be negative")
		}
		return fee{amount: amount, guard: guard.NewConstructorGuard()}, nil
	}

	f, err := newFee(150)
	require.NoError(t, err)
	require.NoError(t, f.guard.Validate(errFeeNotConstructed))

	var zero fee
	assert.Equal(t, errFeeNotConstructed, zero.guard.Validate(errFeeNotConstructed))

	_, err = newFee(-1)
	require.Error(t, err)
}
