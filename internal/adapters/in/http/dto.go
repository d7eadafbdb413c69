package http

import (
	"time"

	"laundry/internal/core/application/usecases/queries"
)

type AddressRequest struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	Landmark string `json:"landmark"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

type ItemRequest struct {
	ID           *int64 `json:"id,omitempty"`
	CategoryName string `json:"category_name"`
	ProductName  string `json:"product_name"`
	Quantity     int    `json:"quantity"`
	Service      string `json:"service,omitempty"`
	Status       string `json:"status,omitempty"`
}

// CreateOrderRequest is used by both POST /orders and POST /orders/public.
// Customer fields are required for guests and select the customer when staff
// create an order on someone's behalf.
type CreateOrderRequest struct {
	CustomerName   string         `json:"customer_name"`
	CustomerMobile string         `json:"customer_mobile"`
	Service        string         `json:"service"`
	Address        AddressRequest `json:"address"`
	Items          []ItemRequest  `json:"items"`
}

// UpdateOrderRequest leaves absent fields alone. A present items list
// replaces the line set: lines with an id are kept, others are new.
type UpdateOrderRequest struct {
	Status  *string         `json:"status,omitempty"`
	Service *string         `json:"service,omitempty"`
	Address *AddressRequest `json:"address,omitempty"`
	Items   *[]ItemRequest  `json:"items,omitempty"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type UpdateItemRequest struct {
	CategoryName string `json:"category_name,omitempty"`
	ProductName  string `json:"product_name,omitempty"`
	Quantity     int    `json:"quantity,omitempty"`
	Service      string `json:"service,omitempty"`
	Status       string `json:"status,omitempty"`
}

type AddressResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	Landmark string `json:"landmark"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

type ItemResponse struct {
	ID           int64     `json:"id"`
	CategoryName string    `json:"category_name"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	Service      string    `json:"service"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedBy    string    `json:"created_by"`
	UpdatedAt    time.Time `json:"updated_at"`
	UpdatedBy    string    `json:"updated_by"`
}

type OrderResponse struct {
	ID             int64           `json:"id"`
	Token          string          `json:"token"`
	CustomerID     int64           `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	CustomerMobile string          `json:"customer_mobile"`
	Service        string          `json:"service"`
	Status         string          `json:"status"`
	Address        AddressResponse `json:"address"`
	Items          []ItemResponse  `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by"`
	UpdatedAt      time.Time       `json:"updated_at"`
	UpdatedBy      string          `json:"updated_by"`
	PickedAt       *time.Time      `json:"picked_at"`
	PickedBy       *string         `json:"picked_by"`
	CompletedAt    *time.Time      `json:"completed_at"`
	CompletedBy    *string         `json:"completed_by"`
	DeliveredAt    *time.Time      `json:"delivered_at"`
	DeliveredBy    *string         `json:"delivered_by"`
	CancelledAt    *time.Time      `json:"cancelled_at"`
	CancelledBy    *string         `json:"cancelled_by"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Skip   int             `json:"skip"`
	Limit  int             `json:"limit"`
}

func toOrderResponse(d queries.OrderDetails) OrderResponse {
	return OrderResponse{
		ID:             d.ID,
		Token:          d.Token,
		CustomerID:     d.CustomerID,
		CustomerName:   d.CustomerName,
		CustomerMobile: d.CustomerMobile,
		Service:        d.ServiceType,
		Status:         d.Status,
		Address: AddressResponse{
			ID:       d.Address.ID,
			Name:     d.Address.Name,
			Mobile:   d.Address.Mobile,
			Line1:    d.Address.Line1,
			Line2:    d.Address.Line2,
			Landmark: d.Address.Landmark,
			City:     d.Address.City,
			State:    d.Address.State,
			Pincode:  d.Address.Pincode,
		},
		Items:       toItemResponses(d.Items),
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
		UpdatedAt:   d.UpdatedAt,
		UpdatedBy:   d.UpdatedBy,
		PickedAt:    d.PickedAt,
		PickedBy:    d.PickedBy,
		CompletedAt: d.CompletedAt,
		CompletedBy: d.CompletedBy,
		DeliveredAt: d.DeliveredAt,
		DeliveredBy: d.DeliveredBy,
		CancelledAt: d.CancelledAt,
		CancelledBy: d.CancelledBy,
	}
}

func toItemResponse(v queries.ItemView) ItemResponse {
	return ItemResponse{
		ID:           v.ID,
		CategoryName: v.Category,
		ProductName:  v.Product,
		Quantity:     v.Quantity,
		Service:      v.ServiceType,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
		CreatedBy:    v.CreatedBy,
		UpdatedAt:    v.UpdatedAt,
		UpdatedBy:    v.UpdatedBy,
	}
}

func toItemResponses(items []queries.ItemView) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, v := range items {
		out[i] = toItemResponse(v)
	}
	return out
}
