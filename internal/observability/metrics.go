// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the ledger.
type Metrics struct {
	// Execute metrics
	MessagesExecuted *prometheus.CounterVec // by message kind
	MessagesFailed   *prometheus.CounterVec // by message kind and error class
	ExecuteLatency   prometheus.Histogram
	HooksEmitted     prometheus.Counter

	// State metrics
	TokenSupply prometheus.Gauge

	// Archive metrics
	EventsArchived prometheus.Counter
	ArchiveErrors  prometheus.Counter

	// Gateway metrics
	ConnectionsActive prometheus.Gauge
	QueriesServed     *prometheus.CounterVec // by query kind
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "nft_ledger"
	}

	return &Metrics{
		MessagesExecuted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "execute",
			Name:      "messages_total",
			Help:      "Total number of successfully executed messages by kind",
		}, []string{"kind"}),
		MessagesFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "execute",
			Name:      "failures_total",
			Help:      "Total number of failed messages by kind and error class",
		}, []string{"kind", "error"}),
		ExecuteLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "execute",
			Name:      "latency_seconds",
			Help:      "Message execution latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		HooksEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "execute",
			Name:      "receive_hooks_total",
			Help:      "Total number of outbound receiver-hook messages emitted",
		}),
		TokenSupply: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "state",
			Name:      "token_supply",
			Help:      "Current number of minted, non-burned tokens",
		}),
		EventsArchived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "events_total",
			Help:      "Total number of events written to the ledger archive",
		}),
		ArchiveErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "errors_total",
			Help:      "Total number of archive write failures",
		}),
		ConnectionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "connections_active",
			Help:      "Current number of open gateway connections",
		}),
		QueriesServed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "queries_total",
			Help:      "Total number of queries served by kind",
		}, []string{"kind"}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
