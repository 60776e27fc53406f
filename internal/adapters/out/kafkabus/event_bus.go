// Package kafkabus publishes integration events and customer notifications to
// Kafka topics. Downstream workflow automation (email templates, analytics,
// the vendor portal) consumes these topics; the fulfillment service never
// waits on them.
package kafkabus

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

// messageWriter abstracts the Kafka writer for testability.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaEventBus implements IntegrationEventBus on a Kafka topic. Events are
// keyed by the payload's orderId when present so per-order ordering survives
// partitioning.
type KafkaEventBus struct {
	writer messageWriter
}

// NewKafkaEventBus creates an event bus on the given writer. The writer's
// topic is expected to be preconfigured.
func NewKafkaEventBus(writer messageWriter) *KafkaEventBus {
	return &KafkaEventBus{writer: writer}
}

// NewWriter builds a kafka.Writer for the given brokers and topic with the
// settings the fulfillment service uses everywhere: least-bytes balancing and
// acknowledgement from the partition leader only.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
}

// Publish marshals the payload and writes one message named by eventName.
func (b *KafkaEventBus) Publish(ctx context.Context, eventName string, payload map[string]any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var key []byte
	if orderID, ok := payload["orderId"].(string); ok {
		key = []byte(orderID)
	}

	return b.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-name", Value: []byte(eventName)},
		},
	})
}
