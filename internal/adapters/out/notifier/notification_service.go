// Package notifier implements the customer notification channel on top of a
// Kafka topic consumed by the transactional email pipeline. Each message names
// an email template and carries the fields the template renders; the pipeline
// owns the actual SMTP delivery and retry policy.
package notifier

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"fulfillment/internal/core/domain/model/order"
)

// Template names understood by the email pipeline.
const (
	TemplateOrderConfirmation    = "order-confirmation"
	TemplateShippingNotification = "shipping-notification"
	TemplateReadyForPickup       = "ready-for-pickup"
	TemplateOnTheWay             = "on-the-way"
	TemplateOnHold               = "order-on-hold"
	TemplatePickupConfirmation   = "pickup-confirmation"
	TemplateDeliveredThankYou    = "delivered-thank-you"
	TemplateReprintNotice        = "reprint-notice"
)

// messageWriter abstracts the Kafka writer for testability.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// notificationMessage is the wire format consumed by the email pipeline.
type notificationMessage struct {
	Template      string            `json:"template"`
	OrderID       string            `json:"orderId"`
	OrderNumber   string            `json:"orderNumber"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	Fields        map[string]string `json:"fields,omitempty"`
}

// KafkaNotificationService implements NotificationService by enqueueing
// template messages. Messages are keyed by customer email so retries for one
// recipient stay ordered.
type KafkaNotificationService struct {
	writer messageWriter
}

// NewKafkaNotificationService creates a notification service on the given
// writer. The writer's topic is expected to be preconfigured.
func NewKafkaNotificationService(writer messageWriter) *KafkaNotificationService {
	return &KafkaNotificationService{writer: writer}
}

func (s *KafkaNotificationService) send(ctx context.Context, o *order.Order, template string, fields map[string]string) error {
	value, err := json.Marshal(notificationMessage{
		Template:      template,
		OrderID:       o.ID().String(),
		OrderNumber:   o.OrderNumber(),
		CustomerName:  o.CustomerName(),
		CustomerEmail: o.CustomerEmail(),
		Fields:        fields,
	})
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(o.CustomerEmail()),
		Value: value,
	})
}

// SendOrderConfirmation enqueues the payment confirmation email.
func (s *KafkaNotificationService) SendOrderConfirmation(ctx context.Context, o *order.Order) error {
	return s.send(ctx, o, TemplateOrderConfirmation, nil)
}

// SendShippingNotification enqueues the shipped email with tracking details.
func (s *KafkaNotificationService) SendShippingNotification(ctx context.Context, o *order.Order, tracking, carrier, etaText string) error {
	return s.send(ctx, o, TemplateShippingNotification, map[string]string{
		"trackingNumber":    tracking,
		"carrier":           carrier,
		"estimatedDelivery": etaText,
	})
}

// SendReadyForPickup enqueues the pickup invitation with location details.
func (s *KafkaNotificationService) SendReadyForPickup(ctx context.Context, o *order.Order, location, instructions string) error {
	return s.send(ctx, o, TemplateReadyForPickup, map[string]string{
		"location":     location,
		"instructions": instructions,
	})
}

// SendOnTheWayNotification enqueues the local courier delivery notice.
func (s *KafkaNotificationService) SendOnTheWayNotification(ctx context.Context, o *order.Order) error {
	return s.send(ctx, o, TemplateOnTheWay, nil)
}

// SendOnHoldNotification enqueues the hold notice telling the customer what
// is blocking the order and what action, if any, is expected of them.
func (s *KafkaNotificationService) SendOnHoldNotification(ctx context.Context, o *order.Order, reason, actionRequired string) error {
	return s.send(ctx, o, TemplateOnHold, map[string]string{
		"reason":         reason,
		"actionRequired": actionRequired,
	})
}

// SendPickupConfirmation enqueues the pickup receipt email.
func (s *KafkaNotificationService) SendPickupConfirmation(ctx context.Context, o *order.Order) error {
	return s.send(ctx, o, TemplatePickupConfirmation, nil)
}

// SendDeliveredConfirmation enqueues the delivery thank-you email.
func (s *KafkaNotificationService) SendDeliveredConfirmation(ctx context.Context, o *order.Order) error {
	return s.send(ctx, o, TemplateDeliveredThankYou, nil)
}

// SendReprintNotice enqueues the notice that a replacement print was started.
func (s *KafkaNotificationService) SendReprintNotice(ctx context.Context, o *order.Order) error {
	return s.send(ctx, o, TemplateReprintNotice, nil)
}
