package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher emits domain events. Publishing is best effort: the order is
// already committed by the time an event is emitted, so callers log and
// ignore failures.
type Publisher interface {
	PublishOrderConfirmed(ctx context.Context, event OrderConfirmedEvent) error
}

// AMQPPublisher publishes events to RabbitMQ, dialing per publish so a broker
// outage never pins a dead connection.
type AMQPPublisher struct {
	url string
}

// NewAMQPPublisher creates a publisher for the given broker URL.
func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

// PublishOrderConfirmed publishes an OrderConfirmedEvent to the
// order.confirmed queue. Messages are persistent; errors are logged and
// returned for the caller to ignore.
func (p *AMQPPublisher) PublishOrderConfirmed(ctx context.Context, event OrderConfirmedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("events: dial broker: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("events: open channel: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so confirmations survive broker restarts.
	if _, err := ch.QueueDeclare(OrderConfirmedQueue, true, false, false, false, nil); err != nil {
		log.Printf("events: declare queue: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", OrderConfirmedQueue, false, false, pub); err != nil {
		log.Printf("events: publish: %v", err)
		return err
	}
	return nil
}
