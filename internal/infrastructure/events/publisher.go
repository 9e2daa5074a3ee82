// Package events delivers domain events. Production uses a RabbitMQ topic
// exchange keyed by event type; LogPublisher stands in when no broker is
// configured.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"localmarket/internal/domain/entity"
	"localmarket/pkg/logger"
)

const (
	dialTimeout       = 3 * time.Second
	maxReconnectDelay = 30 * time.Second
)

// ErrDisconnected is returned by Publish while the broker is unreachable.
var ErrDisconnected = errors.New("rabbitmq: publisher disconnected")

type RabbitPublisher struct {
	url         string
	exchange    string
	dialTimeout time.Duration

	mu           sync.Mutex
	conn         *amqp.Connection
	ch           *amqp.Channel
	reconnecting bool
	closed       bool
	done         chan struct{}
}

// NewRabbitPublisher dials the broker and declares the exchange. If the
// connection drops later, Publish fails fast and a background loop redials.
func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	p := newRabbitPublisher(url, exchange)
	conn, ch, err := p.dial()
	if err != nil {
		return nil, err
	}
	p.conn, p.ch = conn, ch
	return p, nil
}

func newRabbitPublisher(url, exchange string) *RabbitPublisher {
	return &RabbitPublisher{
		url:         url,
		exchange:    exchange,
		dialTimeout: dialTimeout,
		done:        make(chan struct{}),
	}
}

func (p *RabbitPublisher) dial() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(p.url, dialConfig(p.dialTimeout))
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq: channel open: %w", err)
	}
	if err := declareExchange(ch, p.exchange); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// reconnect redials with doubling backoff until it succeeds or the
// publisher is closed.
func (p *RabbitPublisher) reconnect() {
	delay := time.Second
	for {
		conn, ch, err := p.dial()
		if err == nil {
			p.mu.Lock()
			p.reconnecting = false
			if p.closed {
				p.mu.Unlock()
				ch.Close()
				conn.Close()
				return
			}
			p.conn, p.ch = conn, ch
			p.mu.Unlock()
			logger.Info("RabbitMQ publisher reconnected")
			return
		}

		logger.Warn("RabbitMQ reconnect failed, retrying in %s: %v", delay, err)
		select {
		case <-p.done:
			return
		case <-time.After(delay):
		}
		delay = min(delay*2, maxReconnectDelay)
	}
}

func (p *RabbitPublisher) connected() bool {
	return p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed()
}

func (p *RabbitPublisher) Publish(ctx context.Context, event entity.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event: %w", err)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrDisconnected
	}
	if !p.connected() {
		if !p.reconnecting {
			logger.Warn("RabbitMQ connection lost, reconnecting in background")
			p.reconnecting = true
			go p.reconnect()
		}
		p.mu.Unlock()
		return ErrDisconnected
	}
	ch := p.ch
	p.mu.Unlock()

	return ch.PublishWithContext(ctx,
		p.exchange,
		event.Type,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.OccurredAt,
			Type:         event.Type,
			Body:         body,
		},
	)
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.done)
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// dialConfig matches amqp.Dial's defaults with a bounded TCP dial.
func dialConfig(timeout time.Duration) amqp.Config {
	return amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	}
}

func declareExchange(ch *amqp.Channel, exchange string) error {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: exchange declare: %w", err)
	}
	return nil
}

// LogPublisher writes events to the debug log.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, event entity.Event) error {
	logger.Debug("%s", describe(event))
	return nil
}

func describe(event entity.Event) string {
	return fmt.Sprintf("event %s id=%s subject=%s actor=%s at=%s",
		event.Type, event.ID, event.SubjectID, event.ActorID, event.OccurredAt.Format(time.RFC3339))
}
