package queries

import (
	"context"
	"strings"

	"laundry/internal/core/domain/services"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// OrderPage is one page of a listing. Total counts every matching order.
type OrderPage struct {
	Orders []OrderDetails
	Total  int64
	Skip   int
	Limit  int
}

type ListOrdersQueryHandler struct {
	db         *gorm.DB
	normalizer services.StatusNormalizer
}

func NewListOrdersQueryHandler(db *gorm.DB, normalizer services.StatusNormalizer) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, normalizer: normalizer}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (OrderPage, error) {
	if err := query.Validate(); err != nil {
		return OrderPage{}, err
	}
	filter := query.Filter()

	var total int64
	if err := h.filtered(ctx, filter).Select("COUNT(*)").Scan(&total).Error; err != nil {
		return OrderPage{}, err
	}

	var rows []orderRow
	err := h.filtered(ctx, filter).
		Select(orderColumns).
		Order("o.created_at DESC, o.id DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Scan(&rows).Error
	if err != nil {
		return OrderPage{}, err
	}

	orders := make([]OrderDetails, len(rows))
	for i, row := range rows {
		orders[i] = row.details(h.normalizer)
	}
	if err = attachItems(ctx, h.db, h.normalizer, orders); err != nil {
		return OrderPage{}, err
	}

	return OrderPage{Orders: orders, Total: total, Skip: filter.Skip, Limit: filter.Limit}, nil
}

// filtered builds the FROM and WHERE part shared by the count and the page.
// Status and service filters match every stored spelling of the value.
func (h ListOrdersQueryHandler) filtered(ctx context.Context, filter OrderFilter) *gorm.DB {
	db := h.db.WithContext(ctx).
		Table("orders o").
		Joins("JOIN addresses a ON a.id = o.address_id").
		Joins("LEFT JOIN users u ON u.id = o.customer_id")

	if filter.CustomerID != nil {
		db = db.Where("o.customer_id = ?", filter.CustomerID.Int64())
	}
	if filter.Status != nil {
		db = whereSpelling(db, "o.status", h.normalizer.StatusFilter(*filter.Status))
	}
	if filter.Service != nil {
		db = whereSpelling(db, "o.service_type", h.normalizer.ServiceFilter(*filter.Service))
	}
	if filter.Search != "" {
		db = db.Where("o.token ILIKE ?", "%"+escapeLike(filter.Search)+"%")
	}
	return db
}

// whereSpelling matches the listed spellings and, for the fallback value, any
// spelling the vocabulary does not know, so filters agree with what rows read as.
func whereSpelling(db *gorm.DB, column string, f services.SpellingFilter) *gorm.DB {
	folded := normalizedColumn(column)
	if f.IncludesUnmapped() {
		return db.Where("("+folded+" = ANY(?) OR NOT ("+folded+" = ANY(?)))",
			pq.Array(f.Spellings), pq.Array(f.Known))
	}
	return db.Where(folded+" = ANY(?)", pq.Array(f.Spellings))
}

// normalizedColumn folds a stored spelling the same way the vocabulary keys are folded.
func normalizedColumn(column string) string {
	return "REPLACE(REPLACE(LOWER(TRIM(" + column + ")), '-', '_'), ' ', '_')"
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
