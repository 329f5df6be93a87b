// Package amqp drives queue messages through decode and write with
// explicit acknowledgment semantics: processed messages are acked,
// rejected messages are nacked back to the broker for redelivery.
package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	amqp091 "github.com/rabbitmq/amqp091-go"
	"github.com/sportsmatch/notification-service/internal/modules/event"
	notifService "github.com/sportsmatch/notification-service/internal/modules/notification/service"
	"github.com/sportsmatch/notification-service/pkg/queue"
)

// Result is the three-way outcome of processing one message. The
// consumer translates it into ack/nack instead of inferring intent from
// error values.
type Result int

const (
	// Processed means the notification was persisted; ack.
	Processed Result = iota
	// RejectedRetryable means a transient fault (store write failure);
	// nack with requeue so the broker redelivers.
	RejectedRetryable
	// RejectedPermanently means the message can never succeed
	// (malformed, unknown type, invalid schema). Without a broker-side
	// dead-letter policy it is still requeued.
	RejectedPermanently
)

type Consumer struct {
	client  *queue.Client
	service notifService.NotificationService
	queues  []string
}

func NewConsumer(client *queue.Client, service notifService.NotificationService, queues ...string) *Consumer {
	return &Consumer{
		client:  client,
		service: service,
		queues:  queues,
	}
}

// Run consumes from all configured queues until ctx is canceled or the
// connect retry budget is exhausted. After an established connection
// drops, it transparently reconnects and resumes; unacked in-flight
// messages are redelivered by the broker. On shutdown it closes the
// connection and waits for in-flight messages to settle before
// returning.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		if err := c.client.Connect(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var wg sync.WaitGroup
		for _, queueName := range c.queues {
			deliveries, err := c.client.Consume(queueName)
			if err != nil {
				c.drain(&wg)
				return fmt.Errorf("failed to start consuming %q: %w", queueName, err)
			}
			slog.Info("consuming", "queue", queueName)

			wg.Add(1)
			go func() {
				defer wg.Done()
				c.consumeLoop(ctx, deliveries)
			}()
		}

		closeCh := c.client.NotifyClose()

		select {
		case <-ctx.Done():
			c.drain(&wg)
			return nil
		case amqpErr := <-closeCh:
			if c.client.Closed() {
				wg.Wait()
				return nil
			}
			slog.Warn("RabbitMQ connection lost, reconnecting", "error", amqpErr)
			wg.Wait()
		}
	}
}

// drain closes the broker connection so the delivery channels end, then
// waits for in-flight messages to finish their ack or nack.
func (c *Consumer) drain(wg *sync.WaitGroup) {
	if err := c.client.Close(); err != nil {
		slog.Error("broker close failed", "error", err)
	}
	wg.Wait()
}

func (c *Consumer) consumeLoop(ctx context.Context, deliveries <-chan amqp091.Delivery) {
	for d := range deliveries {
		switch c.process(ctx, d.Body) {
		case Processed:
			if err := d.Ack(false); err != nil {
				slog.Error("failed to ack message", "error", err)
			}
		default:
			// Requeue on rejection; redelivery policy is the broker's.
			if err := d.Nack(false, true); err != nil {
				slog.Error("failed to nack message", "error", err)
			}
		}
	}
}

// process is the decode → write step. It never acks or nacks itself.
func (c *Consumer) process(ctx context.Context, body []byte) Result {
	ev, err := event.Decode(body)
	if err != nil {
		slog.Error("rejecting event", "error", err)
		return RejectedPermanently
	}

	if err := c.service.CreateFromEvent(ctx, ev); err != nil {
		slog.Error("failed to persist notification", "event_type", ev.EventType(), "error", err)
		return RejectedRetryable
	}

	return Processed
}
