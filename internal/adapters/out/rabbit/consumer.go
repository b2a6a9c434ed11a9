package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/events"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/logger"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/atomic"
)

// HandlerFunc processes one decoded envelope. A nil return acknowledges the
// delivery; a terminal error (errs.IsTerminal) acknowledges and logs; any
// other error rejects the delivery back onto the queue.
type HandlerFunc func(ctx context.Context, env events.Envelope) error

// QueueBinding routes one key of an exchange into the queue.
type QueueBinding struct {
	Exchange string
	Key      string
}

// QueueSpec describes the durable queue a consumer reads and its bindings.
type QueueSpec struct {
	Name     string
	Bindings []QueueBinding
}

// Consumer runs the delivery loop for one queue. Handlers are registered per
// event name before Start; deliveries for unregistered events are
// acknowledged and counted as skipped, never requeued.
type Consumer struct {
	name    string
	client  *Client
	spec    QueueSpec
	log     logger.Logger
	timeout time.Duration

	handlers map[string]HandlerFunc

	mu      sync.Mutex
	ch      *amqp.Channel
	tag     string
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewConsumer creates a consumer for the given queue. handlerTimeout bounds a
// single handler execution; zero means no bound.
func NewConsumer(name string, client *Client, spec QueueSpec, handlerTimeout time.Duration, log logger.Logger) *Consumer {
	return &Consumer{
		name:     name,
		client:   client,
		spec:     spec,
		log:      log.With("consumer", name),
		timeout:  handlerTimeout,
		handlers: make(map[string]HandlerFunc),
	}
}

// Register binds a handler to an event name. Call before Start.
func (c *Consumer) Register(event string, handler HandlerFunc) {
	c.handlers[event] = handler
}

// Name returns the consumer's registered name.
func (c *Consumer) Name() string {
	return c.name
}

// IsRunning reports whether the delivery loop is active.
func (c *Consumer) IsRunning() bool {
	return c.running.Load()
}

// Healthy reports whether the consumer is running against a live broker.
func (c *Consumer) Healthy() bool {
	return c.IsRunning() && !c.client.IsDegraded()
}

// Start declares and binds the queue, then launches the delivery loop.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running.Load() {
		return nil
	}

	ch, err := c.client.Channel()
	if err != nil {
		return fmt.Errorf("consumer %s: %w", c.name, err)
	}

	if err = c.bind(ch); err != nil {
		ch.Close()
		return err
	}

	// One unacked delivery at a time keeps ordering per queue.
	if err = ch.Qos(1, 0, false); err != nil {
		ch.Close()
		return fmt.Errorf("consumer %s qos: %w", c.name, err)
	}

	c.tag = c.name
	deliveries, err := ch.Consume(c.spec.Name, c.tag, false, false, false, false, nil)
	if err != nil {
		ch.Close()
		return fmt.Errorf("consumer %s consume: %w", c.name, err)
	}

	c.ch = ch
	c.running.Store(true)
	c.wg.Add(1)
	go c.loop(deliveries)

	c.log.Infof(ctx, "consumer started on queue %s", c.spec.Name)
	return nil
}

func (c *Consumer) bind(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(c.spec.Name, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", c.spec.Name, err)
	}

	for _, b := range c.spec.Bindings {
		if err = ch.QueueBind(c.spec.Name, b.Key, b.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s to %s with %s: %w", c.spec.Name, b.Exchange, b.Key, err)
		}
	}

	return nil
}

// Stop drains the consumer: cancels intake, waits for the in-flight handler
// and closes the channel.
func (c *Consumer) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running.Load() {
		return nil
	}

	if err := c.ch.Cancel(c.tag, false); err != nil {
		c.log.Warnf(ctx, "cancel failed: %v", err)
	}

	c.wg.Wait()
	err := c.ch.Close()
	c.ch = nil
	c.running.Store(false)

	c.log.Infof(ctx, "consumer stopped")
	return err
}

func (c *Consumer) loop(deliveries <-chan amqp.Delivery) {
	defer c.wg.Done()
	defer c.running.Store(false)

	for d := range deliveries {
		c.handle(d)
	}
}

func (c *Consumer) handle(d amqp.Delivery) {
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var env events.Envelope
	if err := json.Unmarshal(d.Body, &env); err != nil {
		c.log.Warnf(ctx, "undecodable delivery dropped: %v", err)
		metrics.EventsSkippedTotal.WithLabelValues(c.name, "undecodable").Inc()
		_ = d.Ack(false)
		return
	}

	env.Event = events.Normalize(env.Event)
	metrics.EventsConsumedTotal.WithLabelValues(c.name, env.Event).Inc()

	handler, ok := c.handlers[env.Event]
	if !ok {
		c.log.Warnf(ctx, "no handler for %s, acknowledged", env.Event)
		metrics.EventsSkippedTotal.WithLabelValues(c.name, env.Event).Inc()
		_ = d.Ack(false)
		return
	}

	started := time.Now()
	err := handler(ctx, env)
	metrics.EventHandlingDuration.WithLabelValues(c.name, env.Event).
		Observe(time.Since(started).Seconds())

	switch {
	case err == nil:
		_ = d.Ack(false)
	case errs.IsTerminal(err):
		// Business-rule violation: retrying cannot succeed.
		c.log.Warnf(ctx, "%s rejected by domain, acknowledged: %v", env.Event, err)
		metrics.EventsSkippedTotal.WithLabelValues(c.name, env.Event).Inc()
		_ = d.Ack(false)
	default:
		c.log.Errorf(ctx, "%s failed, requeued: %v", env.Event, err)
		metrics.EventsRequeuedTotal.WithLabelValues(c.name, env.Event).Inc()
		_ = d.Nack(false, true)
	}
}
