package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/events"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// route binds an event name to its exchange and routing key.
type route struct {
	exchange   string
	routingKey string
}

func routingTable() map[string]route {
	return map[string]route{
		events.PaymentSuccess:  {PaymentsExchange, "payment.success"},
		events.PaymentFailed:   {PaymentsExchange, "payment.failed"},
		events.PaymentRefunded: {PaymentsExchange, "payment.refunded"},

		events.ShipmentCreateRequest: {ShipmentsExchange, "shipment.create_request"},
		events.ShipmentCreated:       {ShipmentsExchange, "shipment.created"},
		events.ShipmentAssigned:      {ShipmentsExchange, "shipment.assigned"},
		events.ShipmentStatusChanged: {ShipmentsExchange, "shipment.status_changed"},
		events.DeliveryCompleted:     {ShipmentsExchange, "shipment.delivery_completed"},
		events.DeliveryFailed:        {ShipmentsExchange, "shipment.delivery_failed"},
		events.ShipperRejection:      {ShipmentsExchange, "shipper.rejection"},
		events.ShipperOffline:        {ShipmentsExchange, "shipper.offline"},
		events.ShipperNearby:         {ShipmentsExchange, "shipper.nearby"},
	}
}

// Publisher implements ports.EventPublisher over the AMQP client. It frames
// payloads in the shared JSON envelope and routes them by event name.
type Publisher struct {
	client *Client
	log    logger.Logger
	now    func() time.Time

	mu sync.Mutex
	ch *amqp.Channel
}

// NewPublisher creates a publisher on the given client.
func NewPublisher(client *Client, log logger.Logger) *Publisher {
	return &Publisher{
		client: client,
		log:    log,
		now:    time.Now,
	}
}

// Publish frames data in an envelope and sends it to the exchange mapped for
// the event. Unknown event names are a programming error and fail loudly.
// With the broker down the publish degrades to a logged no-op so business
// transactions that already committed are not failed retroactively.
func (p *Publisher) Publish(ctx context.Context, event string, data any) error {
	r, ok := routingTable()[event]
	if !ok {
		return fmt.Errorf("no route for event %s", event)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event, err)
	}

	body, err := json.Marshal(events.NewEnvelope(event, raw, p.now()))
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", event, err)
	}

	if p.client.IsDegraded() {
		p.log.Warnf(ctx, "dropping %s: broker unavailable", event)
		return nil
	}

	// Channels are not safe for concurrent use; serialize publishes.
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		ch, chErr := p.client.Channel()
		if chErr != nil {
			p.log.Warnf(ctx, "dropping %s: %v", event, chErr)
			return nil
		}
		p.ch = ch
	}

	err = p.ch.PublishWithContext(ctx, r.exchange, r.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
		Body:         body,
	})
	if err != nil {
		p.ch = nil
		return fmt.Errorf("publish %s: %w", event, err)
	}

	return nil
}

// Close releases the publisher channel.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		return nil
	}

	return p.ch.Close()
}
