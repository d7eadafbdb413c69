package commands_test

import (
	"testing"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	items := []order.LineItem{{Category: "Shirts", Product: "Formal Shirt", Quantity: 1}}
	hint := &services.CustomerHint{Name: "Asha", Mobile: "9000000001"}

	t.Run("should default service type", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(nil, hint, order.AddressDetails{}, order.ServiceUnknown, items)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, order.WashIron, cmd.ServiceType())
		assert.True(t, cmd.IsGuest())
	})

	t.Run("guest needs a hint", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(nil, nil, order.AddressDetails{}, order.WashIron, items)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject empty items and bad lines", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(nil, hint, order.AddressDetails{}, order.WashIron, nil)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = commands.NewCreateOrderCommand(nil, hint, order.AddressDetails{}, order.WashIron,
			[]order.LineItem{{Category: "Shirts", Quantity: 1}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "items[0]")
	})

	t.Run("zero command is not constructed", func(t *testing.T) {
		assert.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
