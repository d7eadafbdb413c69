package customer_test

import (
	"strings"
	"testing"

	"laundry/internal/core/domain/model/customer"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGuestCustomer(t *testing.T) {
	mobile := kernel.MustNewMobile("9000000001")

	t.Run("should create active customer with placeholder email", func(t *testing.T) {
		c, err := customer.NewGuestCustomer("  Asha  ", mobile, "hash")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "Asha", c.Name())
		assert.Equal(t, kernel.RoleCustomer, c.Role())
		assert.True(t, c.IsActive())
		assert.True(t, strings.HasPrefix(c.Email(), "9000000001."))
		assert.True(t, strings.HasSuffix(c.Email(), "@laundry.customer.com"))
		assert.True(t, c.ID().IsZero())
	})

	t.Run("placeholder emails differ per call", func(t *testing.T) {
		assert.NotEqual(t, customer.PlaceholderEmail(mobile), customer.PlaceholderEmail(mobile))
	})

	t.Run("should report missing fields", func(t *testing.T) {
		c, err := customer.NewGuestCustomer("", kernel.Mobile{}, "")

		require.Error(t, err)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "customer name")
		assert.Contains(t, err.Error(), "customer mobile")
		assert.Contains(t, err.Error(), "password hash")
	})
}

func TestRestoreCustomer(t *testing.T) {
	c, err := customer.RestoreCustomer(customer.Snapshot{
		ID: 3, Name: "Ravi", Mobile: "+91 90000 00002", Email: "ravi@example.com",
		Role: kernel.RoleCustomer, Status: customer.StatusActive,
	})
	require.NoError(t, err)

	assert.Equal(t, "+919000000002", c.Mobile().String())
	assert.Error(t, c.AssignID(4))

	c.Deactivate()
	assert.False(t, c.IsActive())
	assert.Equal(t, "inactive", c.Status().String())

	_, err = customer.RestoreCustomer(customer.Snapshot{Mobile: "123"})
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	s, err := customer.ParseStatus("ACTIVE")
	require.NoError(t, err)
	assert.Equal(t, customer.StatusActive, s)

	_, err = customer.ParseStatus("gone")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
