package queries_test

import (
	"testing"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actor(t *testing.T, id kernel.ID, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, role, "", "")
	require.NoError(t, err)
	return a
}

func TestNewListOrdersQuery_DefaultsLimit(t *testing.T) {
	query, err := queries.NewListOrdersQuery(actor(t, 1, kernel.RoleStaff), queries.OrderFilter{})

	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.Equal(t, queries.DefaultListLimit, query.Filter().Limit)
	assert.Nil(t, query.Filter().CustomerID)
}

func TestNewListOrdersQuery_RejectsBadPaging(t *testing.T) {
	tests := []struct {
		name   string
		filter queries.OrderFilter
	}{
		{"limit above maximum", queries.OrderFilter{Limit: queries.MaxListLimit + 1}},
		{"negative limit", queries.OrderFilter{Limit: -1}},
		{"negative skip", queries.OrderFilter{Skip: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewListOrdersQuery(actor(t, 1, kernel.RoleStaff), tt.filter)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestNewListOrdersQuery_RejectsInvalidStatus(t *testing.T) {
	status := order.Unknown

	_, err := queries.NewListOrdersQuery(actor(t, 1, kernel.RoleStaff), queries.OrderFilter{Status: &status})

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewListOrdersQuery_CustomerScopedToOwnOrders(t *testing.T) {
	other := kernel.ID(99)

	query, err := queries.NewListOrdersQuery(actor(t, 7, kernel.RoleCustomer), queries.OrderFilter{
		CustomerID: &other,
		Search:     "ORD",
	})

	require.NoError(t, err)
	require.NotNil(t, query.Filter().CustomerID)
	assert.Equal(t, kernel.ID(7), *query.Filter().CustomerID)
	assert.Empty(t, query.Filter().Search)
}

func TestNewListOrdersQuery_StaffKeepsFilters(t *testing.T) {
	customerID := kernel.ID(99)

	query, err := queries.NewListOrdersQuery(actor(t, 1, kernel.RoleAdmin), queries.OrderFilter{
		CustomerID: &customerID,
		Search:     "  ab12 ",
		Skip:       10,
		Limit:      200,
	})

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(99), *query.Filter().CustomerID)
	assert.Equal(t, "ab12", query.Filter().Search)
	assert.Equal(t, 10, query.Filter().Skip)
	assert.Equal(t, 200, query.Filter().Limit)
}

func TestNewListOrdersQuery_RequiresActor(t *testing.T) {
	_, err := queries.NewListOrdersQuery(kernel.Actor{}, queries.OrderFilter{})

	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestListOrdersQuery_ZeroValueIsNotConstructed(t *testing.T) {
	var query queries.ListOrdersQuery

	assert.ErrorIs(t, query.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
}

func TestNewGetOrderQuery(t *testing.T) {
	query, err := queries.NewGetOrderQuery(actor(t, 7, kernel.RoleCustomer), 42)

	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.Equal(t, kernel.ID(42), query.OrderID())

	_, err = queries.NewGetOrderQuery(actor(t, 7, kernel.RoleCustomer), 0)
	assert.Error(t, err)
}

func TestEnsureCanView(t *testing.T) {
	tests := []struct {
		name    string
		actor   kernel.Actor
		wantErr error
	}{
		{"staff", actor(t, 1, kernel.RoleStaff), nil},
		{"admin", actor(t, 2, kernel.RoleAdmin), nil},
		{"owner", actor(t, 7, kernel.RoleCustomer), nil},
		{"other customer", actor(t, 8, kernel.RoleCustomer), errs.ErrForbidden},
		{"anonymous", kernel.Actor{}, errs.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := queries.EnsureCanView(tt.actor, 7)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
