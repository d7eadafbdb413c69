package queries

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its address and items. A missing
// order is reported before access is checked, so a customer probing foreign
// ids sees 403 only for orders that exist.
type GetOrderQueryHandler struct {
	db         *gorm.DB
	normalizer services.StatusNormalizer
}

func NewGetOrderQueryHandler(db *gorm.DB, normalizer services.StatusNormalizer) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, normalizer: normalizer}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	var row orderRow
	result := h.db.WithContext(ctx).
		Raw(`SELECT `+orderColumns+orderJoins+` WHERE o.id = ?`, query.OrderID().Int64()).
		Scan(&row)
	if result.Error != nil {
		return OrderDetails{}, result.Error
	}
	if result.RowsAffected == 0 {
		return OrderDetails{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	if err := EnsureCanView(query.Actor(), kernel.ID(row.CustomerID)); err != nil {
		return OrderDetails{}, err
	}

	orders := []OrderDetails{row.details(h.normalizer)}
	if err := attachItems(ctx, h.db, h.normalizer, orders); err != nil {
		return OrderDetails{}, err
	}
	return orders[0], nil
}
