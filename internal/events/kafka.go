package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fernwear/internal/model"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// kafkaPublisher publishes order events to a Kafka topic.
type kafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger zerolog.Logger
}

// NewKafkaPublisher creates a Kafka-backed order event publisher.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) Publisher {
	return &kafkaPublisher{
		topic: topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
		logger: logger.With().Str("component", "kafka-publisher").Str("topic", topic).Logger(),
	}
}

// PublishOrderCreated publishes an order.created event keyed by order id.
func (p *kafkaPublisher) PublishOrderCreated(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	event := NewOrderCreatedEvent(order, items)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error().
			Err(err).
			Str("order_id", event.OrderID).
			Msg("failed to publish order event")
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	p.logger.Debug().
		Str("order_id", event.OrderID).
		Msg("order event published")

	return nil
}

// Close flushes and closes the underlying writer.
func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
