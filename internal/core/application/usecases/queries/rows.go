package queries

import (
	"context"
	"time"

	"laundry/internal/core/domain/services"

	"gorm.io/gorm"
)

const orderColumns = `
	o.id, o.token, o.customer_id,
	COALESCE(u.name, a.name) AS customer_name,
	COALESCE(u.mobile, a.mobile) AS customer_mobile,
	o.service_type, o.status,
	o.created_at, o.created_by, o.updated_at, o.updated_by,
	o.picked_at, o.picked_by, o.completed_at, o.completed_by,
	o.delivered_at, o.delivered_by, o.cancelled_at, o.cancelled_by,
	a.id AS address_id, a.name AS address_name, a.mobile AS address_mobile,
	a.line1, a.line2, a.landmark, a.city, a.state, a.pincode`

const orderJoins = `
	FROM orders o
	JOIN addresses a ON a.id = o.address_id
	LEFT JOIN users u ON u.id = o.customer_id`

type orderRow struct {
	ID             int64
	Token          string
	CustomerID     int64
	CustomerName   string
	CustomerMobile string
	ServiceType    string
	Status         string
	CreatedAt      time.Time
	CreatedBy      string
	UpdatedAt      time.Time
	UpdatedBy      string
	PickedAt       *time.Time
	PickedBy       *string
	CompletedAt    *time.Time
	CompletedBy    *string
	DeliveredAt    *time.Time
	DeliveredBy    *string
	CancelledAt    *time.Time
	CancelledBy    *string
	AddressID      int64
	AddressName    string
	AddressMobile  string
	Line1          string `gorm:"column:line1"`
	Line2          string `gorm:"column:line2"`
	Landmark       string
	City           string
	State          string
	Pincode        string
}

type itemRow struct {
	ID           int64
	OrderID      int64
	CategoryName string
	ProductName  string
	Quantity     int
	ServiceType  string
	Status       string
	CreatedAt    time.Time
	CreatedBy    string
	UpdatedAt    time.Time
	UpdatedBy    string
}

// details normalizes stored spellings so that legacy rows come out canonical.
func (r orderRow) details(n services.StatusNormalizer) OrderDetails {
	return OrderDetails{
		ID:             r.ID,
		Token:          r.Token,
		CustomerID:     r.CustomerID,
		CustomerName:   r.CustomerName,
		CustomerMobile: r.CustomerMobile,
		ServiceType:    n.ServiceToExternal(n.ServiceToCanonical(r.ServiceType)),
		Status:         n.ToExternal(n.ToCanonical(r.Status)),
		Address: AddressView{
			ID:       r.AddressID,
			Name:     r.AddressName,
			Mobile:   r.AddressMobile,
			Line1:    r.Line1,
			Line2:    r.Line2,
			Landmark: r.Landmark,
			City:     r.City,
			State:    r.State,
			Pincode:  r.Pincode,
		},
		Items:       make([]ItemView, 0),
		CreatedAt:   r.CreatedAt.UTC(),
		CreatedBy:   r.CreatedBy,
		UpdatedAt:   r.UpdatedAt.UTC(),
		UpdatedBy:   r.UpdatedBy,
		PickedAt:    utc(r.PickedAt),
		PickedBy:    r.PickedBy,
		CompletedAt: utc(r.CompletedAt),
		CompletedBy: r.CompletedBy,
		DeliveredAt: utc(r.DeliveredAt),
		DeliveredBy: r.DeliveredBy,
		CancelledAt: utc(r.CancelledAt),
		CancelledBy: r.CancelledBy,
	}
}

func (r itemRow) view(n services.StatusNormalizer) ItemView {
	return ItemView{
		ID:          r.ID,
		Category:    r.CategoryName,
		Product:     r.ProductName,
		Quantity:    r.Quantity,
		ServiceType: n.ServiceToExternal(n.ServiceToCanonical(r.ServiceType)),
		Status:      n.ItemToExternal(n.ItemToCanonical(r.Status)),
		CreatedAt:   r.CreatedAt.UTC(),
		CreatedBy:   r.CreatedBy,
		UpdatedAt:   r.UpdatedAt.UTC(),
		UpdatedBy:   r.UpdatedBy,
	}
}

// attachItems loads the items of all orders in one query, in id order.
func attachItems(ctx context.Context, db *gorm.DB, n services.StatusNormalizer, orders []OrderDetails) error {
	if len(orders) == 0 {
		return nil
	}

	index := make(map[int64]int, len(orders))
	ids := make([]int64, len(orders))
	for i, o := range orders {
		index[o.ID] = i
		ids[i] = o.ID
	}

	var rows []itemRow
	err := db.WithContext(ctx).Raw(`
		SELECT id, order_id, category_name, product_name, quantity, service_type, status,
			created_at, created_by, updated_at, updated_by
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, id
	`, ids).Scan(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		i := index[row.OrderID]
		orders[i].Items = append(orders[i].Items, row.view(n))
	}
	return nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
