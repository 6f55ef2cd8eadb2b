package hub

import "github.com/prometheus/client_golang/prometheus"

var (
	subscribersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "keywave",
			Subsystem: "hub",
			Name:      "subscribers",
			Help:      "Currently connected subscribers",
		},
	)

	broadcastsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "keywave",
			Subsystem: "hub",
			Name:      "broadcasts_total",
			Help:      "Messages broadcast to the subscriber set",
		},
	)

	messagesSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "keywave",
			Subsystem: "hub",
			Name:      "messages_sent_total",
			Help:      "Per-subscriber message deliveries queued",
		},
	)

	subscriberDropsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "keywave",
			Subsystem: "hub",
			Name:      "subscriber_drops_total",
			Help:      "Subscribers dropped for stalling",
		},
	)
)

func init() {
	prometheus.MustRegister(subscribersGauge, broadcastsTotal, messagesSentTotal, subscriberDropsTotal)
}
