package kafkabus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestKafkaEventBus_Publish(t *testing.T) {
	writer := &capturingWriter{}
	bus := NewKafkaEventBus(writer)

	err := bus.Publish(context.Background(), "order.status.changed", map[string]any{
		"orderId":        "a2f1c3d4-0000-0000-0000-000000000001",
		"orderNumber":    "ORD-2024-1042",
		"previousStatus": "PRODUCTION",
		"newStatus":      "SHIPPED",
	})
	require.NoError(t, err)

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]

	assert.Equal(t, []byte("a2f1c3d4-0000-0000-0000-000000000001"), msg.Key)

	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event-name", msg.Headers[0].Key)
	assert.Equal(t, []byte("order.status.changed"), msg.Headers[0].Value)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "ORD-2024-1042", payload["orderNumber"])
	assert.Equal(t, "SHIPPED", payload["newStatus"])
}

func TestKafkaEventBus_Publish_NoOrderID_LeavesKeyEmpty(t *testing.T) {
	writer := &capturingWriter{}
	bus := NewKafkaEventBus(writer)

	err := bus.Publish(context.Background(), "vendor.catalog.refreshed", map[string]any{
		"vendorCount": 12,
	})
	require.NoError(t, err)

	require.Len(t, writer.messages, 1)
	assert.Nil(t, writer.messages[0].Key)
}

func TestKafkaEventBus_Publish_WriterFailure(t *testing.T) {
	writer := &capturingWriter{err: errors.New("broker unreachable")}
	bus := NewKafkaEventBus(writer)

	err := bus.Publish(context.Background(), "order.status.changed", map[string]any{"orderId": "x"})
	require.Error(t, err)
}
