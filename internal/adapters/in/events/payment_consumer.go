package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/rabbit"
	"github.com/TienDattttt/shoppi-sub004/internal/core/application/usecases/commands"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	coreevents "github.com/TienDattttt/shoppi-sub004/internal/core/events"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/logger"
)

// PaymentQueue is the durable queue of the payment reconciliation consumer.
const PaymentQueue = "fulfillment.payments"

// PaymentHandlers groups the command handlers the payment consumer
// dispatches to.
type PaymentHandlers struct {
	ConfirmPayment commands.ConfirmPaymentCommandHandler
	FailPayment    commands.FailPaymentCommandHandler
	RefundPayment  commands.RefundPaymentCommandHandler
}

type paymentConsumer struct {
	handlers PaymentHandlers
}

// NewPaymentConsumer builds the consumer for the payment queue. Besides the
// canonical payment keys it stays bound to the legacy order.payment_* keys
// the old order service still emits; the envelope decoder normalizes those to
// the canonical names before dispatch.
func NewPaymentConsumer(
	client *rabbit.Client,
	handlers PaymentHandlers,
	handlerTimeout time.Duration,
	log logger.Logger,
) *rabbit.Consumer {
	pc := &paymentConsumer{handlers: handlers}

	spec := rabbit.QueueSpec{
		Name: PaymentQueue,
		Bindings: []rabbit.QueueBinding{
			{Exchange: rabbit.PaymentsExchange, Key: "payment.success"},
			{Exchange: rabbit.PaymentsExchange, Key: "payment.failed"},
			{Exchange: rabbit.PaymentsExchange, Key: "payment.refunded"},
			{Exchange: rabbit.OrdersExchange, Key: coreevents.LegacyOrderPaymentSuccess},
			{Exchange: rabbit.OrdersExchange, Key: coreevents.LegacyOrderPaymentFailed},
		},
	}

	consumer := rabbit.NewConsumer("payments", client, spec, handlerTimeout, log)
	consumer.Register(coreevents.PaymentSuccess, pc.onSuccess)
	consumer.Register(coreevents.PaymentFailed, pc.onFailed)
	consumer.Register(coreevents.PaymentRefunded, pc.onRefunded)
	return consumer
}

func (pc *paymentConsumer) decode(env coreevents.Envelope) (coreevents.PaymentPayload, kernel.UUID, error) {
	var payload coreevents.PaymentPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return payload, kernel.UUID{}, fmt.Errorf("decode %s: %w", env.Event, err)
	}

	orderID, err := kernel.UUIDFromString(payload.OrderID)
	if err != nil {
		return payload, kernel.UUID{}, err
	}

	return payload, orderID, nil
}

func (pc *paymentConsumer) onSuccess(ctx context.Context, env coreevents.Envelope) error {
	_, orderID, err := pc.decode(env)
	if err != nil {
		return err
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID)
	if err != nil {
		return err
	}

	return pc.handlers.ConfirmPayment.Handle(ctx, cmd)
}

func (pc *paymentConsumer) onFailed(ctx context.Context, env coreevents.Envelope) error {
	payload, orderID, err := pc.decode(env)
	if err != nil {
		return err
	}

	reason := payload.Reason
	if reason == "" {
		reason = "payment declined"
	}

	cmd, err := commands.NewFailPaymentCommand(orderID, reason)
	if err != nil {
		return err
	}

	return pc.handlers.FailPayment.Handle(ctx, cmd)
}

func (pc *paymentConsumer) onRefunded(ctx context.Context, env coreevents.Envelope) error {
	_, orderID, err := pc.decode(env)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRefundPaymentCommand(orderID)
	if err != nil {
		return err
	}

	return pc.handlers.RefundPayment.Handle(ctx, cmd)
}
