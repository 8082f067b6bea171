// Package events publishes placed orders for fulfillment listeners.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

// OrderPlaced is the event payload for a successfully handed-off order.
type OrderPlaced struct {
	OrderNumber string             `json:"order_number"`
	SessionID   string             `json:"session_id"`
	Items       []models.OrderItem `json:"items"`
	ItemCount   int                `json:"item_count"`
	Total       int64              `json:"total"`
	Customer    models.Customer    `json:"customer"`
	PlacedAt    time.Time          `json:"placed_at"`
}

func NewOrderPlaced(sessionID string, order *models.Order) OrderPlaced {
	return OrderPlaced{
		OrderNumber: order.Number,
		SessionID:   sessionID,
		Items:       order.Items,
		ItemCount:   order.GetItemCount(),
		Total:       order.Total,
		Customer:    order.Customer,
		PlacedAt:    order.PlacedAt,
	}
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlaced) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic keyed by order number.
type KafkaPublisher struct {
	writer kafkaMessageWriter
}

// kafkaMessageWriter abstracts kafka.Writer for testability.
type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}}
}

// NewKafkaPublisherWith is only for tests to inject a fake writer.
func NewKafkaPublisherWith(w kafkaMessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (k *KafkaPublisher) PublishOrderPlaced(ctx context.Context, e OrderPlaced) error {
	b, err := json.Marshal(&e)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.OrderNumber),
		Value: b,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order_placed")},
		},
	})
}

func (k *KafkaPublisher) Close() error {
	if c, ok := k.writer.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }

func (NopPublisher) Close() error { return nil }
