// Package queries holds the read side: order projections built straight from
// SQL, normalized to the external status vocabulary, plus the visibility rule
// shared with the HTTP adapter.
package queries

import (
	"time"

	"laundry/internal/core/domain/model/customer"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
)

// OrderDetails is the order projection returned to clients. Status and service
// fields carry the external spelling.
type OrderDetails struct {
	ID             int64
	Token          string
	CustomerID     int64
	CustomerName   string
	CustomerMobile string
	ServiceType    string
	Status         string
	Address        AddressView
	Items          []ItemView

	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
	UpdatedBy   string
	PickedAt    *time.Time
	PickedBy    *string
	CompletedAt *time.Time
	CompletedBy *string
	DeliveredAt *time.Time
	DeliveredBy *string
	CancelledAt *time.Time
	CancelledBy *string
}

type AddressView struct {
	ID       int64
	Name     string
	Mobile   string
	Line1    string
	Line2    string
	Landmark string
	City     string
	State    string
	Pincode  string
}

type ItemView struct {
	ID          int64
	Category    string
	Product     string
	Quantity    int
	ServiceType string
	Status      string
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
	UpdatedBy   string
}

// FromAggregate projects an order that was just written. c may be nil when the
// customer is not at hand; the name and mobile then come from the address.
func FromAggregate(o *order.Order, c *customer.Customer, n services.StatusNormalizer) OrderDetails {
	a := o.Address()
	details := OrderDetails{
		ID:             o.ID().Int64(),
		Token:          o.Token().String(),
		CustomerID:     o.CustomerID().Int64(),
		CustomerName:   a.Name(),
		CustomerMobile: a.Mobile().String(),
		ServiceType:    n.ServiceToExternal(o.ServiceType()),
		Status:         n.ToExternal(o.Status()),
		Address: AddressView{
			ID:       a.ID().Int64(),
			Name:     a.Name(),
			Mobile:   a.Mobile().String(),
			Line1:    a.Line1(),
			Line2:    a.Line2(),
			Landmark: a.Landmark(),
			City:     a.City(),
			State:    a.State(),
			Pincode:  a.Pincode(),
		},
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
	if c != nil {
		details.CustomerName = c.Name()
		details.CustomerMobile = c.Mobile().String()
	}

	items := o.Items()
	details.Items = make([]ItemView, len(items))
	for i, item := range items {
		details.Items[i] = ItemFromAggregate(item, n)
	}
	return details
}

func ItemFromAggregate(item *order.Item, n services.StatusNormalizer) ItemView {
	return ItemView{
		ID:          item.ID().Int64(),
		Category:    item.Category(),
		Product:     item.Product(),
		Quantity:    item.Quantity(),
		ServiceType: n.ServiceToExternal(item.ServiceType()),
		Status:      n.ItemToExternal(item.Status()),
		CreatedAt:   item.Created().At(),
		CreatedBy:   item.Created().By(),
		UpdatedAt:   item.Updated().At(),
		UpdatedBy:   item.Updated().By(),
	}
}
