// Package export delivers per-unit cart records to downstream consumers.
package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fastbillx/checkout/internal/cart"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue is the queue downstream billing consumers read from.
const DefaultQueue = "checkout.items"

// publishChannel is the slice of amqp.Channel the publisher uses; tests
// substitute a fake.
type publishChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes export records to a RabbitMQ queue, one message
// per unit record.
type AMQPPublisher struct {
	conn  *amqp.Connection
	ch    publishChannel
	queue string
}

// NewAMQPPublisher dials the broker and declares the target queue. An empty
// queue name uses DefaultQueue.
func NewAMQPPublisher(url, queue string) (*AMQPPublisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dialing broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	p := &AMQPPublisher{conn: conn, ch: ch, queue: queue}
	if err := p.declareQueue(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) declareQueue() error {
	if _, err := p.ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declaring queue %s: %w", p.queue, err)
	}
	return nil
}

// Publish sends every record as an individual persistent JSON message.
// Delivery stops at the first failure; already published messages are not
// recalled.
func (p *AMQPPublisher) Publish(ctx context.Context, records []cart.ExportRecord) error {
	for i, rec := range records {
		body, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
		err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
		if err != nil {
			return fmt.Errorf("publishing record %d of %d: %w", i+1, len(records), err)
		}
	}
	return nil
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
