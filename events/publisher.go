package events

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/footloft/footloft-api/models"
	"github.com/segmentio/kafka-go"
)

const (
	TopicOrders = "footloft.orders"

	OrderCreated = "order.created"
	OrderPaid    = "order.paid"
)

var writer *kafka.Writer

// Init wires the order-event publisher. An empty broker leaves
// publishing disabled; every Publish becomes a no-op.
func Init(broker string) {
	if broker == "" {
		log.Println("KAFKA_BROKER not set, order events disabled.")
		return
	}
	writer = &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        TopicOrders,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
}

type envelope struct {
	Type      string       `json:"type"`
	OrderID   uint         `json:"orderId"`
	Timestamp time.Time    `json:"timestamp"`
	Order     models.Order `json:"order"`
}

// PublishOrderEvent emits an order lifecycle event. Failures are logged
// and never propagated; events are strictly best-effort and must not
// block or roll back an order.
func PublishOrderEvent(eventType string, order models.Order) {
	if writer == nil {
		return
	}

	payload, err := json.Marshal(envelope{
		Type:      eventType,
		OrderID:   order.ID,
		Timestamp: time.Now().UTC(),
		Order:     order,
	})
	if err != nil {
		log.Println("Failed to encode order event:", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(order.ID), 10)),
		Value: payload,
	})
	if err != nil {
		log.Println("Failed to publish order event:", err)
	}
}
