// README: RabbitMQ connection and exchange setup for the kitchen order feed.
package infra

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

type AMQP struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// DialAMQP connects and declares the durable topic exchange orders are published to.
func DialAMQP(url, exchange string) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQP{conn: conn, ch: ch}, nil
}

func (a *AMQP) Channel() *amqp.Channel {
	return a.ch
}

func (a *AMQP) Close() {
	if a == nil {
		return
	}
	if a.ch != nil {
		_ = a.ch.Close()
	}
	if a.conn != nil {
		_ = a.conn.Close()
	}
}
