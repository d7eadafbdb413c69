package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db         *gorm.DB
	tracker    aggregateTracker
	normalizer services.StatusNormalizer
}

// aggregateTracker collects aggregates whose events must reach the outbox.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

func NewGormOrderRepository(
	db *gorm.DB,
	tracker aggregateTracker,
	normalizer services.StatusNormalizer,
) *GormOrderRepository {
	return &GormOrderRepository{
		db:         db,
		tracker:    tracker,
		normalizer: normalizer,
	}
}

// Add inserts the address snapshot, the order row and the items, in that order.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	db := r.db.WithContext(ctx)

	address := addressFromDomain(aggregate.Address())
	address.ID = 0
	if err := db.Create(&address).Error; err != nil {
		return err
	}

	dto := fromDomain(aggregate, r.normalizer)
	dto.ID = 0
	dto.AddressID = address.ID
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return translate(err)
	}

	if err := errors.Join(
		aggregate.AssignAddressID(kernel.ID(address.ID)),
		aggregate.AssignID(kernel.ID(dto.ID)),
	); err != nil {
		return err
	}

	if err := r.insertItems(db, aggregate.Items()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row and its address, then reconciles the item rows.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	db := r.db.WithContext(ctx)

	dto := fromDomain(aggregate, r.normalizer)
	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "token", "created_at", "created_by", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	address := addressFromDomain(aggregate.Address())
	if err := db.Model(&AddressDTO{}).
		Where("id = ?", address.ID).
		Select("*").
		Omit("id").
		Updates(&address).Error; err != nil {
		return err
	}

	if removed := aggregate.RemovedItemIDs(); len(removed) > 0 {
		ids := make([]int64, len(removed))
		for i, id := range removed {
			ids[i] = id.Int64()
		}
		if err := db.Where("order_id = ? AND id IN ?", dto.ID, ids).Delete(&ItemDTO{}).Error; err != nil {
			return err
		}
	}

	var fresh []*order.Item
	for _, item := range aggregate.Items() {
		if item.ID().IsZero() {
			fresh = append(fresh, item)
			continue
		}
		itemDTO := itemFromDomain(item, r.normalizer)
		if err := db.Model(&ItemDTO{}).
			Where("id = ? AND order_id = ?", itemDTO.ID, dto.ID).
			Select("*").
			Omit("id", "order_id", "created_at", "created_by").
			Updates(&itemDTO).Error; err != nil {
			return err
		}
	}
	if err := r.insertItems(db, fresh); err != nil {
		return err
	}

	aggregate.ClearRemovedItemIDs()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes the items, the order and its address snapshot.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	id := aggregate.ID().Int64()

	if err := db.Where("order_id = ?", id).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	result := db.Delete(&OrderDTO{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if err := db.Delete(&AddressDTO{}, aggregate.Address().ID().Int64()).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads an order with its address and items, items in id order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Address").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&dto, "id = ?", id.Int64()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto, r.normalizer)
}

func (r *GormOrderRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("token = ?", token).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormOrderRepository) insertItems(db *gorm.DB, items []*order.Item) error {
	if len(items) == 0 {
		return nil
	}

	dtos := make([]ItemDTO, len(items))
	for i, item := range items {
		dtos[i] = itemFromDomain(item, r.normalizer)
		dtos[i].ID = 0
	}
	if err := db.Create(&dtos).Error; err != nil {
		return err
	}

	for i, item := range items {
		if err := item.AssignID(kernel.ID(dtos[i].ID)); err != nil {
			return err
		}
	}
	return nil
}

// translate turns the token unique violation into ports.ErrDuplicateToken.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == TokenConstraint {
		return fmt.Errorf("%w: %s", ports.ErrDuplicateToken, pgErr.Detail)
	}
	return err
}
