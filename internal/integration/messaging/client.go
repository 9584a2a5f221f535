// Package messaging publishes and consumes transaction events over AMQP.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/manjeet0505/Expense/internal/application/adapter"
)

const publishTimeout = 5 * time.Second

// EventHandler processes one transaction event.
type EventHandler func(ctx context.Context, event adapter.TransactionRecordedEvent) error

// Client is an AMQP connection bound to one exchange and queue.
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

var _ adapter.EventPublisher = (*Client)(nil)

// NewClient dials url and declares a durable direct exchange and queue.
func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set up exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	if err := c.channel.ExchangeDeclare(
		c.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	if _, err := c.channel.QueueDeclare(
		c.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	// Direct exchange: the routing key is the queue name.
	if err := c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	return nil
}

// PublishTransactionRecorded publishes a persistent transaction event.
func (c *Client) PublishTransactionRecorded(ctx context.Context, event adapter.TransactionRecordedEvent) error {
	body, err := NewTransactionRecordedMessage(event).ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName,
		c.queueName,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	slog.DebugContext(ctx, "Published transaction event",
		"user_id", event.UserID,
		"category", event.Category,
		"month", event.Month.Key(),
	)
	return nil
}

// Consume delivers queued events to handler until ctx is cancelled.
// Malformed messages are dropped. A failed message is requeued once.
func (c *Client) Consume(ctx context.Context, handler EventHandler) error {
	msgs, err := c.channel.Consume(
		c.queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming transaction events", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return errors.New("message channel closed")
			}
			settle(delivery, handleDelivery(ctx, delivery.Body, delivery.Redelivered, handler))
		}
	}
}

// Close closes the channel and the connection.
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

type outcome int

const (
	outcomeAck outcome = iota
	outcomeDrop
	outcomeRequeue
)

func handleDelivery(ctx context.Context, body []byte, redelivered bool, handler EventHandler) outcome {
	msg, err := TransactionRecordedMessageFromJSON(body)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to unmarshal message", "error", err)
		return outcomeDrop
	}

	event, err := msg.Event()
	if err != nil {
		slog.ErrorContext(ctx, "Invalid transaction event", "error", err, "user_id", msg.UserID)
		return outcomeDrop
	}

	if err := handler(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to handle transaction event",
			"error", err,
			"user_id", event.UserID,
			"category", event.Category,
			"redelivered", redelivered,
		)
		if redelivered {
			return outcomeDrop
		}
		return outcomeRequeue
	}

	return outcomeAck
}

func settle(delivery amqp091.Delivery, o outcome) {
	var err error
	switch o {
	case outcomeAck:
		err = delivery.Ack(false)
	case outcomeDrop:
		err = delivery.Nack(false, false)
	case outcomeRequeue:
		err = delivery.Nack(false, true)
	}
	if err != nil {
		slog.Error("Failed to settle delivery", "error", err)
	}
}

// NopPublisher discards events. Used when AMQP is not configured.
type NopPublisher struct{}

// PublishTransactionRecorded does nothing.
func (NopPublisher) PublishTransactionRecorded(context.Context, adapter.TransactionRecordedEvent) error {
	return nil
}
