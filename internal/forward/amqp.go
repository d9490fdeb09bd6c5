package forward

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrdersExchange = "orders_topic"
	NewOrderKey    = "pizzaria.order.new"
)

// Publisher is the subset of *amqp.Channel used for publishing.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPForwarder publishes finalized orders to the kitchen exchange.
type AMQPForwarder struct {
	pub      Publisher
	exchange string
	key      string
}

func NewAMQPForwarder(pub Publisher) *AMQPForwarder {
	return &AMQPForwarder{pub: pub, exchange: OrdersExchange, key: NewOrderKey}
}

func (a *AMQPForwarder) Name() string {
	return "amqp"
}

func (a *AMQPForwarder) Forward(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("amqp: marshal payload: %w", err)
	}
	err = a.pub.PublishWithContext(ctx, a.exchange, a.key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("amqp: publish: %w", err)
	}
	return nil
}
