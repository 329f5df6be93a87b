// Package queue owns the RabbitMQ connection lifecycle: bounded connect
// retry, durable queue declaration, prefetch-bounded manual-ack
// consumption, and liveness reporting.
package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// dialTimeout bounds a single connection attempt.
const dialTimeout = 10 * time.Second

type Config struct {
	URL            string
	Queues         []string
	PrefetchCount  int
	ReconnectDelay time.Duration
	MaxAttempts    int
}

// Client is the single broker handle shared by all consumers. It is
// created disconnected; Connect must succeed before Consume.
type Client struct {
	cfg Config

	mu        sync.Mutex
	conn      *amqp.Connection
	channel   *amqp.Channel
	connected bool
	closed    bool
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Connect dials the broker with bounded retry: up to MaxAttempts tries
// with a fixed delay between them. On success it opens a channel, applies
// the prefetch cap and declares the configured queues as durable.
// Exhausting the attempts is fatal to the caller.
func (c *Client) Connect(ctx context.Context) error {
	if c.Healthy() {
		return nil
	}

	// A non-positive bound still means one dial attempt.
	maxAttempts := c.cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		slog.Info("connecting to RabbitMQ", "attempt", attempt, "max_attempts", maxAttempts)

		lastErr = c.dial()
		if lastErr == nil {
			slog.Info("RabbitMQ connected", "queues", c.cfg.Queues, "prefetch", c.cfg.PrefetchCount)
			return nil
		}

		slog.Error("RabbitMQ connection failed", "attempt", attempt, "error", lastErr)
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.ReconnectDelay):
		}
	}

	return fmt.Errorf("broker unreachable after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) dial() error {
	conn, err := amqp.DialConfig(c.cfg.URL, amqp.Config{
		Dial: amqp.DefaultDial(dialTimeout),
	})
	if err != nil {
		return err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	// The prefetch cap is the sole backpressure mechanism; it bounds
	// in-flight unacknowledged messages per channel.
	if err := channel.Qos(c.cfg.PrefetchCount, 0, false); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	for _, name := range c.cfg.Queues {
		if _, err := channel.QueueDeclare(name, true, false, false, false, nil); err != nil {
			conn.Close()
			return fmt.Errorf("failed to declare queue %q: %w", name, err)
		}
	}

	c.mu.Lock()
	c.conn = conn
	c.channel = channel
	c.connected = true
	c.mu.Unlock()

	return nil
}

// Consume starts a manual-ack delivery stream for one queue. The channel
// closes when the connection drops.
func (c *Client) Consume(queueName string) (<-chan amqp.Delivery, error) {
	c.mu.Lock()
	channel := c.channel
	c.mu.Unlock()

	if channel == nil {
		return nil, fmt.Errorf("not connected")
	}
	return channel.Consume(queueName, "", false, false, false, false, nil)
}

// NotifyClose reports asynchronous connection loss. The returned channel
// receives once (or closes) when the connection shuts down.
func (c *Client) NotifyClose() <-chan *amqp.Error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		closed := make(chan *amqp.Error)
		close(closed)
		return closed
	}
	return c.conn.NotifyClose(make(chan *amqp.Error, 1))
}

// Healthy reports broker connectivity only; it does not verify that
// consumption is progressing.
func (c *Client) Healthy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected && c.conn != nil && !c.conn.IsClosed()
}

// Closed reports whether Close was called explicitly, distinguishing
// shutdown from an unexpected connection drop.
func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.connected = false
	if c.conn == nil || c.conn.IsClosed() {
		return nil
	}
	return c.conn.Close()
}
