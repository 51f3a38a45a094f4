// Package metrics exposes Prometheus counters for RPCs, the bill lifecycle
// and exports. Observers are no-ops until Init has been called.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "roomie_"

	ResultSuccess = "success"
	ResultError   = "error"
)

// Bill lifecycle events.
const (
	BillCreated   = "created"
	BillSettled   = "settled"
	BillReopened  = "reopened"
	BillDeleted   = "deleted"
	BillCommented = "commented"
)

var (
	registerOnce sync.Once

	rpcRequests *prometheus.CounterVec
	rpcLatency  *prometheus.HistogramVec

	billEvents *prometheus.CounterVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	notificationRelays *prometheus.CounterVec
)

// Init registers the metrics with the default Prometheus registry.
func Init() {
	registerOnce.Do(func() {
		rpcRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "rpc_requests_total",
				Help: "Total RPC calls by procedure and code",
			},
			[]string{"procedure", "code"},
		)
		rpcLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "rpc_latency_seconds",
				Help:    "RPC latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"procedure"},
		)
		billEvents = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "bill_events_total",
				Help: "Total bill lifecycle events by type",
			},
			[]string{"event"},
		)
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		)
		notificationRelays = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "notification_relays_total",
				Help: "Total notification relay attempts by notifier and result",
			},
			[]string{"notifier", "result"},
		)

		prometheus.MustRegister(
			rpcRequests,
			rpcLatency,
			billEvents,
			exportTotal,
			exportLatency,
			notificationRelays,
		)
	})
}

// ObserveRPC records an RPC outcome. code is "ok" or a Connect code name.
func ObserveRPC(procedure, code string, duration time.Duration) {
	if code == "" {
		code = "ok"
	}
	if rpcRequests != nil {
		rpcRequests.WithLabelValues(procedure, code).Inc()
	}
	if rpcLatency != nil {
		rpcLatency.WithLabelValues(procedure).Observe(duration.Seconds())
	}
}

// IncBillEvent counts a bill lifecycle event.
func IncBillEvent(event string) {
	if billEvents != nil {
		billEvents.WithLabelValues(event).Inc()
	}
}

// ObserveExport records an export by format ("xlsx", "pdf").
func ObserveExport(format, result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format).Observe(duration.Seconds())
	}
}

// IncNotificationRelay counts a relay attempt to an external notifier.
func IncNotificationRelay(notifier, result string) {
	if notificationRelays != nil {
		notificationRelays.WithLabelValues(notifier, result).Inc()
	}
}
