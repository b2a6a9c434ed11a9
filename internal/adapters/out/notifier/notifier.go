// Package notifier fans business events out to people. It builds
// role-specific copy for each notification kind and publishes the channel
// envelope to the direct exchange of the delivery channel. Delivery mechanics
// (push tokens, mail templates, SMS gateways) belong to the channel workers
// downstream.
//
// Notification failures never propagate: the fulfillment transaction already
// committed, so a dead notification channel costs a log line and a metric,
// not a requeue.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/rabbit"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/notification"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/logger"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
)

// channelEnvelope is the frame the channel workers consume.
type channelEnvelope struct {
	Type      string            `json:"type"`
	Payload   map[string]string `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}

// Coordinator implements ports.Notifier over the AMQP direct exchanges.
type Coordinator struct {
	client *rabbit.Client
	log    logger.Logger
	now    func() time.Time

	mu sync.Mutex
	ch *amqp.Channel
}

// NewCoordinator creates the fan-out coordinator.
func NewCoordinator(client *rabbit.Client, log logger.Logger) *Coordinator {
	return &Coordinator{
		client: client,
		log:    log.With("component", "notifier"),
		now:    time.Now,
	}
}

// NotifyCustomer sends push copy for the kind to the customer.
func (c *Coordinator) NotifyCustomer(
	ctx context.Context, customerID kernel.UUID, kind notification.Kind, params notification.Params,
) {
	c.send(ctx, notification.RoleCustomer, rabbit.NotificationsPushExchange, customerID, kind, params)
}

// NotifyPartner sends email copy for the kind to the shop.
func (c *Coordinator) NotifyPartner(
	ctx context.Context, shopID kernel.UUID, kind notification.Kind, params notification.Params,
) {
	c.send(ctx, notification.RolePartner, rabbit.NotificationsEmailExchange, shopID, kind, params)
}

// NotifyShipper sends push copy for the kind to the shipper.
func (c *Coordinator) NotifyShipper(
	ctx context.Context, shipperID kernel.UUID, kind notification.Kind, params notification.Params,
) {
	c.send(ctx, notification.RoleShipper, rabbit.NotificationsPushExchange, shipperID, kind, params)
}

// AlertAdmin raises an operational alert on the email channel.
func (c *Coordinator) AlertAdmin(ctx context.Context, subject string, detail string) {
	payload := map[string]string{
		"subject": subject,
		"detail":  detail,
	}
	c.publish(ctx, notification.RoleAdmin, rabbit.NotificationsEmailExchange, "admin.alert", payload)
}

func (c *Coordinator) send(
	ctx context.Context,
	role notification.Role,
	exchange string,
	recipientID kernel.UUID,
	kind notification.Kind,
	params notification.Params,
) {
	payload := map[string]string{
		"recipient_id": recipientID.String(),
		"title":        titleFor(kind),
		"body":         bodyFor(role, kind, params),
	}
	for k, v := range params {
		payload[k] = v
	}

	c.publish(ctx, role, exchange, string(kind), payload)
}

func (c *Coordinator) publish(
	ctx context.Context,
	role notification.Role,
	exchange string,
	notificationType string,
	payload map[string]string,
) {
	body, err := json.Marshal(channelEnvelope{
		Type:      notificationType,
		Payload:   payload,
		Timestamp: c.now(),
	})
	if err != nil {
		c.fail(ctx, notificationType, err)
		return
	}

	if c.client.IsDegraded() {
		c.fail(ctx, notificationType, fmt.Errorf("broker unavailable"))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ch == nil || c.ch.IsClosed() {
		ch, chErr := c.client.Channel()
		if chErr != nil {
			c.fail(ctx, notificationType, chErr)
			return
		}
		c.ch = ch
	}

	err = c.ch.PublishWithContext(ctx, exchange, string(role), false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   c.now(),
		Body:        body,
	})
	if err != nil {
		c.ch = nil
		c.fail(ctx, notificationType, err)
		return
	}

	metrics.NotificationsSentTotal.WithLabelValues(string(role)).Inc()
}

func (c *Coordinator) fail(ctx context.Context, notificationType string, err error) {
	metrics.NotificationFailuresTotal.Inc()
	c.log.Warnf(ctx, "notification %s not delivered: %v", notificationType, err)
}

// Close releases the coordinator channel.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ch == nil || c.ch.IsClosed() {
		return nil
	}

	return c.ch.Close()
}
