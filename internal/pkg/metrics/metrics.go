// Package metrics declares the Prometheus collectors for the fulfillment core.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EventsConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_events_consumed_total",
			Help: "Total number of events consumed, by consumer and event type",
		},
		[]string{"consumer", "event"},
	)

	EventsRequeuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_events_requeued_total",
			Help: "Total number of events rejected and requeued after a retryable failure",
		},
		[]string{"consumer", "event"},
	)

	EventsSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_events_skipped_total",
			Help: "Total number of events acknowledged without effect (unknown or terminal)",
		},
		[]string{"consumer", "event"},
	)

	EventHandlingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fulfillment_event_handling_duration_seconds",
			Help:    "Duration of event handler execution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"consumer", "event"},
	)

	NotificationsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_notifications_sent_total",
			Help: "Total number of notifications fanned out, by audience role",
		},
		[]string{"role"},
	)

	NotificationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fulfillment_notification_failures_total",
			Help: "Total number of notification publishes that failed (swallowed)",
		},
	)
)

// Register registers all collectors with the default registry.
// Call once at process startup.
func Register() {
	prometheus.MustRegister(EventsConsumedTotal)
	prometheus.MustRegister(EventsRequeuedTotal)
	prometheus.MustRegister(EventsSkippedTotal)
	prometheus.MustRegister(EventHandlingDuration)
	prometheus.MustRegister(NotificationsSentTotal)
	prometheus.MustRegister(NotificationFailuresTotal)
}
