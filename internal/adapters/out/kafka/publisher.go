// Package kafka publishes outbox messages to Kafka.
package kafka

import (
	"context"
	"errors"
	"strings"
	"time"

	"laundry/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// ErrNoBrokers is returned by NewPublisher when the broker list is empty.
var ErrNoBrokers = errors.New("kafka: no brokers configured")

const eventIDHeader = "event-id"

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher. Each message carries its own
// topic and is keyed by order id, so events of one order stay in one partition.
type Publisher struct {
	writer messageWriter
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := make([]string, 0)
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func NewPublisher(brokers []string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	return &Publisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}}, nil
}

// NewPublisherWithWriter is used by tests and by callers that tune their own writer.
func NewPublisherWithWriter(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// Publish writes all messages in one call. The writer either acknowledges the
// whole batch or returns an error, in which case the relay retries it later.
func (p *Publisher) Publish(ctx context.Context, messages []ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	out := make([]kafka.Message, len(messages))
	for i, m := range messages {
		out[i] = kafka.Message{
			Topic:   m.Topic,
			Key:     []byte(m.Key),
			Value:   m.Payload,
			Time:    m.CreatedAt.UTC(),
			Headers: []kafka.Header{{Key: eventIDHeader, Value: []byte(m.EventID)}},
		}
	}
	return p.writer.WriteMessages(ctx, out...)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
