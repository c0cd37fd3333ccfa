package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventPublisher defines the interface for publishing product lifecycle events.
type EventPublisher interface {
	PublishProductPublished(ctx context.Context, event ProductPublishedEvent) error
}

// rabbitMQPublisher implements EventPublisher on top of a RabbitMQ channel.
type rabbitMQPublisher struct {
	channel   *amqp.Channel
	queueName string
}

// NewRabbitMQEventPublisher opens a channel on the given connection and declares
// the queue. The publisher declares the queue itself so the service does not
// depend on consumer start order; queue parameters must match the consumer's.
func NewRabbitMQEventPublisher(conn *amqp.Connection, queueName string) (EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("event publisher: failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("event publisher: failed to declare queue %q: %w", queueName, err)
	}

	return &rabbitMQPublisher{channel: ch, queueName: queueName}, nil
}

func (p *rabbitMQPublisher) PublishProductPublished(ctx context.Context, event ProductPublishedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product published event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(pubCtx,
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish product published event: %w", err)
	}
	return nil
}
