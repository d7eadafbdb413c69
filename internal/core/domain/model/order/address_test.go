package order_test

import (
	"testing"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddressDetails() order.AddressDetails {
	return order.AddressDetails{
		Name:     "Asha",
		Mobile:   "90000 00001",
		Line1:    "12 MG Road",
		City:     "Bengaluru",
		State:    "KA",
		Pincode:  "560001",
		Landmark: "near  metro",
	}
}

func TestNewAddress(t *testing.T) {
	t.Run("should create address and normalize fields", func(t *testing.T) {
		a, err := order.NewAddress(validAddressDetails())

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "9000000001", a.Mobile().String())
		assert.Equal(t, "near metro", a.Landmark())
		assert.True(t, a.ID().IsZero())
	})

	t.Run("should report every missing field", func(t *testing.T) {
		_, err := order.NewAddress(order.AddressDetails{Mobile: "9000000001"})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "address name")
		assert.Contains(t, err.Error(), "address line1")
		assert.Contains(t, err.Error(), "city")
		assert.Contains(t, err.Error(), "pincode")
	})

	t.Run("should reject non numeric pincode", func(t *testing.T) {
		d := validAddressDetails()
		d.Pincode = "56A001"

		_, err := order.NewAddress(d)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero address is not constructed", func(t *testing.T) {
		var a order.Address

		assert.ErrorIs(t, a.Validate(), order.ErrAddressIsNotConstructed)
	})

	t.Run("restore keeps id", func(t *testing.T) {
		a, err := order.RestoreAddress(kernel.ID(7), validAddressDetails())

		require.NoError(t, err)
		assert.Equal(t, kernel.ID(7), a.ID())
	})
}
