package customerrepo

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/customer"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.ID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindActiveByMobile returns the oldest active customer account using mobile.
func (r *GormCustomerRepository) FindActiveByMobile(ctx context.Context, mobile kernel.Mobile) (*customer.Customer, error) {
	var dto CustomerDTO
	err := r.db.WithContext(ctx).
		Where("mobile = ? AND role = ? AND status = ?",
			mobile.String(), kernel.RoleCustomer.String(), customer.StatusActive.String()).
		Order("id").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", mobile.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return c.AssignID(kernel.ID(dto.ID))
}
