package postgres

import (
	"context"

	"laundry/internal/adapters/out/postgres/customerrepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, parents first.
func Models() []any {
	return []any{
		&customerrepo.CustomerDTO{},
		&orderrepo.AddressDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&outboxrepo.OutboxDTO{},
	}
}

// Migrate creates or alters the tables to match Models.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}
