// Package rabbit is the AMQP 0-9-1 transport of the fulfillment core. The
// client owns the connection and the exchange topology, the publisher frames
// and routes outgoing events, and Consumer runs the delivery loop the inbound
// adapters build on.
//
// A broker that is down at startup does not kill the process: the client
// enters degraded mode, publishes become logged no-ops and consumers report
// unhealthy until a reconnect succeeds.
package rabbit

import (
	"context"
	"fmt"
	"sync"

	"github.com/TienDattttt/shoppi-sub004/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange names. Events flow through topic exchanges; notification channels
// are direct exchanges consumed by the channel workers (push/email/SMS).
const (
	OrdersExchange    = "orders.events"
	ShipmentsExchange = "shipments.events"
	PaymentsExchange  = "payments.events"

	NotificationsPushExchange  = "notifications.push"
	NotificationsEmailExchange = "notifications.email"
	NotificationsSMSExchange   = "notifications.sms"
)

// Client wraps the AMQP connection shared by publishers and consumers.
type Client struct {
	url string
	log logger.Logger

	mu   sync.Mutex
	conn *amqp.Connection
}

// Connect dials the broker. A failed dial returns a degraded client instead
// of an error: the caller decides whether to treat that as fatal.
func Connect(url string, log logger.Logger) *Client {
	c := &Client{url: url, log: log}

	conn, err := amqp.Dial(url)
	if err != nil {
		log.Warnf(context.Background(), "broker unavailable, running degraded: %v", err)
		return c
	}

	c.conn = conn
	return c
}

// IsDegraded reports whether the client has no live broker connection.
func (c *Client) IsDegraded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn == nil || c.conn.IsClosed()
}

// Reconnect attempts to re-establish a dropped connection.
func (c *Client) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil && !c.conn.IsClosed() {
		return nil
	}

	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("reconnect to broker: %w", err)
	}

	c.conn = conn
	return nil
}

// Channel opens a new channel on the shared connection. Each consumer and
// publisher holds its own channel; channels are not safe for concurrent use.
func (c *Client) Channel() (*amqp.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() {
		return nil, amqp.ErrClosed
	}

	return c.conn.Channel()
}

// DeclareTopology declares the exchanges the fulfillment core publishes to
// and consumes from. Idempotent on the broker side. A degraded client skips
// the declaration and reports success so startup can proceed.
func (c *Client) DeclareTopology() error {
	if c.IsDegraded() {
		c.log.Warnf(context.Background(), "skipping topology declaration: broker unavailable")
		return nil
	}

	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	topics := []string{OrdersExchange, ShipmentsExchange, PaymentsExchange}
	for _, name := range topics {
		if err = declareExchange(ch, name, "topic"); err != nil {
			return err
		}
	}

	directs := []string{NotificationsPushExchange, NotificationsEmailExchange, NotificationsSMSExchange}
	for _, name := range directs {
		if err = declareExchange(ch, name, "direct"); err != nil {
			return err
		}
	}

	return nil
}

func declareExchange(ch *amqp.Channel, name, kind string) error {
	err := ch.ExchangeDeclare(
		name,
		kind,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange %s: %w", name, err)
	}
	return nil
}

// Close shuts down the connection. Safe on a degraded client.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() {
		return nil
	}

	return c.conn.Close()
}
