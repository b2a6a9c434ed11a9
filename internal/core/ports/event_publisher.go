package ports

import "context"

// EventPublisher publishes domain events to the message broker for other
// marketplace services to consume. The event name selects the exchange and
// routing key; data is serialized into the message body.
type EventPublisher interface {
	Publish(ctx context.Context, event string, data any) error
}
