package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
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

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-2024-1042",
		"Ada Lovelace",
		"ada@example.com",
		4999,
		"EUR",
		[]order.LineItem{{ProductName: "Business Cards", Quantity: 500, UnitPriceCents: 999}},
	)
	require.NoError(t, err)
	return o
}

func decode(t *testing.T, msg kafka.Message) notificationMessage {
	t.Helper()
	var decoded notificationMessage
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	return decoded
}

func TestSendShippingNotification(t *testing.T) {
	writer := &capturingWriter{}
	service := NewKafkaNotificationService(writer)
	o := testOrder(t)

	err := service.SendShippingNotification(context.Background(), o, "1Z999AA10123456784", "UPS", "Sep 3, 2026")
	require.NoError(t, err)

	require.Len(t, writer.messages, 1)
	assert.Equal(t, []byte("ada@example.com"), writer.messages[0].Key)

	decoded := decode(t, writer.messages[0])
	assert.Equal(t, TemplateShippingNotification, decoded.Template)
	assert.Equal(t, "ORD-2024-1042", decoded.OrderNumber)
	assert.Equal(t, "Ada Lovelace", decoded.CustomerName)
	assert.Equal(t, "1Z999AA10123456784", decoded.Fields["trackingNumber"])
	assert.Equal(t, "UPS", decoded.Fields["carrier"])
	assert.Equal(t, "Sep 3, 2026", decoded.Fields["estimatedDelivery"])
}

func TestSendOnHoldNotification(t *testing.T) {
	writer := &capturingWriter{}
	service := NewKafkaNotificationService(writer)

	err := service.SendOnHoldNotification(context.Background(), testOrder(t), "artwork resolution too low", "upload a 300dpi file")
	require.NoError(t, err)

	decoded := decode(t, writer.messages[0])
	assert.Equal(t, TemplateOnHold, decoded.Template)
	assert.Equal(t, "artwork resolution too low", decoded.Fields["reason"])
	assert.Equal(t, "upload a 300dpi file", decoded.Fields["actionRequired"])
}

func TestTemplateSelection(t *testing.T) {
	tests := []struct {
		name     string
		send     func(s *KafkaNotificationService, ctx context.Context, o *order.Order) error
		template string
	}{
		{
			name: "order confirmation",
			send: func(s *KafkaNotificationService, ctx context.Context, o *order.Order) error {
				return s.SendOrderConfirmation(ctx, o)
			},
			template: TemplateOrderConfirmation,
		},
		{
			name: "ready for pickup",
			send: func(s *KafkaNotificationService, ctx context.Context, o *order.Order) error {
				return s.SendReadyForPickup(ctx, o, "Main St 1", "ring twice")
			},
			template: TemplateReadyForPickup,
		},
		{
			name: "on the way",
			send: func(s *KafkaNotificationService, ctx context.Context, o *order.Order) error {
				return s.SendOnTheWayNotification(ctx, o)
			},
			template: TemplateOnTheWay,
		},
		{
			name: "pickup confirmation",
			send: func(s *KafkaNotificationService, ctx context.Context, o *order.Order) error {
				return s.SendPickupConfirmation(ctx, o)
			},
			template: TemplatePickupConfirmation,
		},
		{
			name: "delivered",
			send: func(s *KafkaNotificationService, ctx context.Context, o *order.Order) error {
				return s.SendDeliveredConfirmation(ctx, o)
			},
			template: TemplateDeliveredThankYou,
		},
		{
			name: "reprint",
			send: func(s *KafkaNotificationService, ctx context.Context, o *order.Order) error {
				return s.SendReprintNotice(ctx, o)
			},
			template: TemplateReprintNotice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &capturingWriter{}
			service := NewKafkaNotificationService(writer)

			require.NoError(t, tt.send(service, context.Background(), testOrder(t)))

			require.Len(t, writer.messages, 1)
			assert.Equal(t, tt.template, decode(t, writer.messages[0]).Template)
		})
	}
}

func TestSend_WriterFailurePropagates(t *testing.T) {
	writer := &capturingWriter{err: errors.New("broker unreachable")}
	service := NewKafkaNotificationService(writer)

	err := service.SendOrderConfirmation(context.Background(), testOrder(t))
	require.Error(t, err)
}
