// Package customerrepo reads and creates customer accounts in the shared users table.
package customerrepo

import (
	"time"

	"laundry/internal/core/domain/model/customer"
	"laundry/internal/core/domain/model/kernel"
)

// CustomerDTO maps the columns of the users table that ordering touches.
type CustomerDTO struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Mobile       string    `gorm:"type:varchar(20);not null;index"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(16);not null"`
	Status       string    `gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (CustomerDTO) TableName() string {
	return "users"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:           c.ID().Int64(),
		Name:         c.Name(),
		Mobile:       c.Mobile().String(),
		Email:        c.Email(),
		PasswordHash: c.PasswordHash(),
		Role:         c.Role().String(),
		Status:       c.Status().String(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	role, err := kernel.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	status, err := customer.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return customer.RestoreCustomer(customer.Snapshot{
		ID:           kernel.ID(dto.ID),
		Name:         dto.Name,
		Mobile:       dto.Mobile,
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		Role:         role,
		Status:       status,
	})
}
