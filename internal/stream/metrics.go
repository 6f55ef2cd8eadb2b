package stream

import "github.com/prometheus/client_golang/prometheus"

var eventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "keywave",
		Subsystem: "stream",
		Name:      "events_total",
		Help:      "Raw capture events processed, by classification outcome",
	},
	[]string{"kind"},
)

func init() {
	prometheus.MustRegister(eventsTotal)
}
