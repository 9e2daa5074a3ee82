package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"localmarket/internal/domain/entity"
	"localmarket/pkg/logger"
)

// Handler processes one delivered event. A returned error rejects the
// message without requeueing it.
type Handler func(ctx context.Context, event entity.Event) error

// AuditLog is the default handler: one log line per event.
func AuditLog(ctx context.Context, event entity.Event) error {
	logger.Info("audit: %s", describe(event))
	return nil
}

// Consumer binds a durable queue to every routing key on the exchange.
type Consumer struct {
	url      string
	exchange string
	queue    string
	handle   Handler
}

func NewConsumer(url, exchange, queue string, handle Handler) *Consumer {
	return &Consumer{
		url:      url,
		exchange: exchange,
		queue:    queue,
		handle:   handle,
	}
}

// Run consumes until ctx is cancelled, reconnecting with backoff.
func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for ctx.Err() == nil {
		conn, err := amqp.DialConfig(c.url, dialConfig(dialTimeout))
		if err != nil {
			logger.Warn("event consumer: dial failed: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		conn.Close()
		if ctx.Err() != nil {
			return
		}
		logger.Warn("event consumer: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(50, 0, false); err != nil {
		logger.Warn("event consumer: set QoS failed: %v", err)
	}
	if err := declareExchange(ch, c.exchange); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err := ch.QueueBind(c.queue, "#", c.exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}

	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.process(ctx, d.Body); err != nil {
				logger.Warn("event consumer: %v", err)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}
}

func (c *Consumer) process(ctx context.Context, body []byte) error {
	var event entity.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}
	if event.Type == "" {
		return errors.New("event without type")
	}
	return c.handle(ctx, event)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
