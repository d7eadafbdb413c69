// Package orderrepo persists the order aggregate: the order row, its address
// snapshot and its item rows. Status and service values are stored in their
// external spelling and normalized again on every read, so rows written by
// older clients load without errors.
package orderrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
)

// TokenConstraint is the unique index backing token uniqueness.
const TokenConstraint = "uq_orders_token"

type AddressDTO struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"type:varchar(255);not null"`
	Mobile   string `gorm:"type:varchar(20);not null"`
	Line1    string `gorm:"column:line1;type:varchar(255);not null"`
	Line2    string `gorm:"column:line2;type:varchar(255)"`
	Landmark string `gorm:"type:varchar(255)"`
	City     string `gorm:"type:varchar(120);not null"`
	State    string `gorm:"type:varchar(120)"`
	Pincode  string `gorm:"type:varchar(6);not null"`
}

func (AddressDTO) TableName() string {
	return "addresses"
}

type OrderDTO struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	Token       string     `gorm:"type:varchar(40);not null;uniqueIndex:uq_orders_token"`
	CustomerID  int64      `gorm:"not null;index"`
	AddressID   int64      `gorm:"not null"`
	Address     AddressDTO `gorm:"foreignKey:AddressID"`
	ServiceType string     `gorm:"type:varchar(32);not null"`
	Status      string     `gorm:"type:varchar(32);not null;index"`
	CreatedAt   time.Time  `gorm:"not null;index"`
	CreatedBy   string     `gorm:"type:varchar(255);not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
	UpdatedBy   string     `gorm:"type:varchar(255);not null"`
	PickedAt    *time.Time
	PickedBy    *string `gorm:"type:varchar(255)"`
	CompletedAt *time.Time
	CompletedBy *string `gorm:"type:varchar(255)"`
	DeliveredAt *time.Time
	DeliveredBy *string `gorm:"type:varchar(255)"`
	CancelledAt *time.Time
	CancelledBy *string   `gorm:"type:varchar(255)"`
	Items       []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type ItemDTO struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	OrderID      int64     `gorm:"not null;index"`
	CategoryName string    `gorm:"type:varchar(255);not null"`
	ProductName  string    `gorm:"type:varchar(255);not null"`
	Quantity     int       `gorm:"not null"`
	ServiceType  string    `gorm:"type:varchar(32);not null"`
	Status       string    `gorm:"type:varchar(32);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	CreatedBy    string    `gorm:"type:varchar(255);not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	UpdatedBy    string    `gorm:"type:varchar(255);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

func addressFromDomain(a order.Address) AddressDTO {
	return AddressDTO{
		ID:       a.ID().Int64(),
		Name:     a.Name(),
		Mobile:   a.Mobile().String(),
		Line1:    a.Line1(),
		Line2:    a.Line2(),
		Landmark: a.Landmark(),
		City:     a.City(),
		State:    a.State(),
		Pincode:  a.Pincode(),
	}
}

// fromDomain maps the order row only; items and the address are written
// separately so that their ids can be assigned back.
func fromDomain(o *order.Order, n services.StatusNormalizer) OrderDTO {
	return OrderDTO{
		ID:          o.ID().Int64(),
		Token:       o.Token().String(),
		CustomerID:  o.CustomerID().Int64(),
		AddressID:   o.Address().ID().Int64(),
		ServiceType: n.ServiceToExternal(o.ServiceType()),
		Status:      n.ToExternal(o.Status()),
		CreatedAt:   o.Created().At(),
		CreatedBy:   o.Created().By(),
		UpdatedAt:   o.Updated().At(),
		UpdatedBy:   o.Updated().By(),
		PickedAt:    o.Picked().AtPtr(),
		PickedBy:    o.Picked().ByPtr(),
		CompletedAt: o.Completed().AtPtr(),
		CompletedBy: o.Completed().ByPtr(),
		DeliveredAt: o.Delivered().AtPtr(),
		DeliveredBy: o.Delivered().ByPtr(),
		CancelledAt: o.Cancelled().AtPtr(),
		CancelledBy: o.Cancelled().ByPtr(),
	}
}

func itemFromDomain(item *order.Item, n services.StatusNormalizer) ItemDTO {
	return ItemDTO{
		ID:           item.ID().Int64(),
		OrderID:      item.OrderID().Int64(),
		CategoryName: item.Category(),
		ProductName:  item.Product(),
		Quantity:     item.Quantity(),
		ServiceType:  n.ServiceToExternal(item.ServiceType()),
		Status:       n.ItemToExternal(item.Status()),
		CreatedAt:    item.Created().At(),
		CreatedBy:    item.Created().By(),
		UpdatedAt:    item.Updated().At(),
		UpdatedBy:    item.Updated().By(),
	}
}

func toDomain(dto OrderDTO, n services.StatusNormalizer) (*order.Order, error) {
	address, err := order.RestoreAddress(kernel.ID(dto.Address.ID), order.AddressDetails{
		Name:     dto.Address.Name,
		Mobile:   dto.Address.Mobile,
		Line1:    dto.Address.Line1,
		Line2:    dto.Address.Line2,
		Landmark: dto.Address.Landmark,
		City:     dto.Address.City,
		State:    dto.Address.State,
		Pincode:  dto.Address.Pincode,
	})
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO, n)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:          kernel.ID(dto.ID),
		Token:       dto.Token,
		CustomerID:  kernel.ID(dto.CustomerID),
		Address:     address,
		ServiceType: n.ServiceToCanonical(dto.ServiceType),
		Status:      n.ToCanonical(dto.Status),
		Items:       items,
		Created:     order.RestoreStamp(&dto.CreatedAt, &dto.CreatedBy),
		Updated:     order.RestoreStamp(&dto.UpdatedAt, &dto.UpdatedBy),
		Picked:      order.RestoreStamp(dto.PickedAt, dto.PickedBy),
		Completed:   order.RestoreStamp(dto.CompletedAt, dto.CompletedBy),
		Delivered:   order.RestoreStamp(dto.DeliveredAt, dto.DeliveredBy),
		Cancelled:   order.RestoreStamp(dto.CancelledAt, dto.CancelledBy),
	})
}

func itemToDomain(dto ItemDTO, n services.StatusNormalizer) (*order.Item, error) {
	return order.RestoreItem(order.ItemSnapshot{
		ID:          kernel.ID(dto.ID),
		OrderID:     kernel.ID(dto.OrderID),
		Category:    dto.CategoryName,
		Product:     dto.ProductName,
		Quantity:    dto.Quantity,
		ServiceType: n.ServiceToCanonical(dto.ServiceType),
		Status:      n.ItemToCanonical(dto.Status),
		Created:     order.RestoreStamp(&dto.CreatedAt, &dto.CreatedBy),
		Updated:     order.RestoreStamp(&dto.UpdatedAt, &dto.UpdatedBy),
	})
}
