package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "turducken",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"app", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "turducken",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"app", "method", "path", "status"},
	)
	tunnelPackets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "turducken",
			Subsystem: "tunnel",
			Name:      "packets_total",
			Help:      "Tunnel packets processed, by direction and outcome.",
		},
		[]string{"app", "mode", "direction", "outcome"},
	)
	tunnelBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "turducken",
			Subsystem: "tunnel",
			Name:      "bytes_total",
			Help:      "Tunnel bytes on the wire, by direction.",
		},
		[]string{"app", "mode", "direction"},
	)
	tunnelOverhead = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "turducken",
			Subsystem: "tunnel",
			Name:      "overhead_bytes_total",
			Help:      "Bytes spent on layer headers rather than payload.",
		},
		[]string{"app", "mode"},
	)
	tunnelDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "turducken",
			Subsystem: "tunnel",
			Name:      "exchange_duration_seconds",
			Help:      "Duration of one decapsulate/handle/encapsulate exchange.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"app", "mode", "outcome"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, tunnelPackets, tunnelBytes, tunnelOverhead, tunnelDuration)
	})
}

func RecordHTTPRequest(app, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(app, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(app, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordTunnelExchange(app, mode string, packetBytes, payloadBytes int, duration time.Duration, ok bool) {
	RegisterMetrics()
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	tunnelPackets.WithLabelValues(app, mode, "rx", outcome).Inc()
	tunnelBytes.WithLabelValues(app, mode, "rx").Add(float64(packetBytes))
	if ok {
		tunnelOverhead.WithLabelValues(app, mode).Add(float64(packetBytes - payloadBytes))
	}
	tunnelDuration.WithLabelValues(app, mode, outcome).Observe(duration.Seconds())
}

func RecordTunnelReply(app, mode string, packetBytes int) {
	RegisterMetrics()
	tunnelPackets.WithLabelValues(app, mode, "tx", "ok").Inc()
	tunnelBytes.WithLabelValues(app, mode, "tx").Add(float64(packetBytes))
}
