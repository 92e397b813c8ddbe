package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Request metrics, labeled by route pattern rather than raw path
	// so cardinality stays bounded
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestErrors   *prometheus.CounterVec
	UnroutedTotal   prometheus.Counter

	// Outbound queue metrics
	OutboundEnqueued  prometheus.Counter
	OutboundSent      prometheus.Counter
	OutboundFailed    prometheus.Counter
	OutboundQueueSize prometheus.Gauge

	// Durable overlay metrics
	OverlayOperations *prometheus.CounterVec
	OverlayLatency    *prometheus.HistogramVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "Total number of dispatched requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Time spent handling requests",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		RequestErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_errors_total",
			Help:      "Total number of failed requests",
		}, []string{"method", "route", "code"}),
		UnroutedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "unrouted_requests_total",
			Help:      "Requests no route pattern matched",
		}),

		OutboundEnqueued: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "outbound_enqueued_total",
			Help:      "Messages added to the outbound queue",
		}),
		OutboundSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "outbound_sent_total",
			Help:      "Messages successfully delivered",
		}),
		OutboundFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "outbound_failed_total",
			Help:      "Messages that failed delivery",
		}),
		OutboundQueueSize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "outbound_queue_size",
			Help:      "Current number of pending outbound messages",
		}),

		OverlayOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "overlay_operations_total",
			Help:      "Total number of durable overlay operations",
		}, []string{"operation", "status"}),
		OverlayLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "overlay_operation_duration_seconds",
			Help:      "Time spent on durable overlay operations",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25},
		}, []string{"operation"}),
	}
}
