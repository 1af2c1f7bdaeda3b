package tracking

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// publisher is the part of *amqp.Channel the tracker needs.
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQP publishes events as JSON messages on a durable queue.
type AMQP struct {
	conn  *amqp.Connection
	ch    publisher
	queue string
}

// DialAMQP connects to the broker and declares the usage queue.
func DialAMQP(url, queue string) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp: open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp: declare %s: %w", queue, err)
	}

	return &AMQP{conn: conn, ch: ch, queue: queue}, nil
}

func (a *AMQP) Track(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	err = a.ch.Publish("", a.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.Time,
		Type:         ev.Intent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("amqp: publish to %s: %w", a.queue, err)
	}
	return nil
}

func (a *AMQP) Close() error {
	if a.conn == nil {
		return nil
	}
	return a.conn.Close()
}
