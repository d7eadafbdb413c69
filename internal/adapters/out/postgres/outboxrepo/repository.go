package outboxrepo

import (
	"context"
	"encoding/json"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db         *gorm.DB
	topic      string
	normalizer services.StatusNormalizer
}

func NewGormOutboxRepository(db *gorm.DB, topic string, normalizer services.StatusNormalizer) *GormOutboxRepository {
	if topic == "" {
		topic = DefaultTopic
	}
	return &GormOutboxRepository{db: db, topic: topic, normalizer: normalizer}
}

// Append serializes events and inserts one row per event. The order id is the
// message key so that a partition sees the events of one order in sequence.
func (r *GormOutboxRepository) Append(ctx context.Context, events []order.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxDTO, 0, len(events))
	for _, e := range events {
		id := ulid.Make().String()
		payload := eventPayload{
			EventID:    id,
			Type:       string(e.Type),
			OrderID:    e.OrderID.Int64(),
			Token:      e.Token,
			CustomerID: e.CustomerID.Int64(),
			Status:     r.normalizer.ToExternal(e.Status),
			ItemCount:  e.ItemCount,
			Actor:      e.Actor,
			OccurredAt: e.OccurredAt.UTC(),
		}
		if e.PreviousStatus != order.Unknown && e.PreviousStatus != e.Status {
			payload.PreviousStatus = r.normalizer.ToExternal(e.PreviousStatus)
		}

		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		dtos = append(dtos, OutboxDTO{
			EventID:   id,
			EventType: string(e.Type),
			Topic:     r.topic,
			Key:       e.OrderID.String(),
			Payload:   raw,
			CreatedAt: e.OccurredAt.UTC(),
		})
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// Pending locks unsent rows with FOR UPDATE SKIP LOCKED.
func (r *GormOutboxRepository) Pending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OutboxDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("sent_at IS NULL").
		Order("created_at, event_id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, len(dtos))
	for i, dto := range dtos {
		messages[i] = toMessage(dto)
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkSent(ctx context.Context, eventIDs []string, at time.Time) error {
	if len(eventIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("event_id IN ?", eventIDs).
		Update("sent_at", at.UTC()).Error
}
