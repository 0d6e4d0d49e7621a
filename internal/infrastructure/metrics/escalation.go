// Package metrics exposes escalation scheduler counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace           = "civicpulse"
	escalationSubsystem = "escalation"
)

// EscalationMetrics records scan cycle and call outcomes against its own registry.
type EscalationMetrics struct {
	registry *prometheus.Registry

	CallsTotal    *prometheus.CounterVec
	CycleDuration prometheus.Histogram
	CycleFailures prometheus.Counter
	LastCycleUnix prometheus.Gauge
}

func NewEscalationMetrics() *EscalationMetrics {
	reg := prometheus.NewRegistry()

	m := &EscalationMetrics{
		registry: reg,
		CallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: escalationSubsystem,
			Name:      "calls_total",
			Help:      "Escalation candidates processed, by outcome",
		}, []string{"outcome"}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: escalationSubsystem,
			Name:      "cycle_duration_seconds",
			Help:      "Scan cycle wall time in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		CycleFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: escalationSubsystem,
			Name:      "cycle_failures_total",
			Help:      "Scan cycles that aborted before processing candidates",
		}),
		LastCycleUnix: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: escalationSubsystem,
			Name:      "last_cycle_timestamp_seconds",
			Help:      "Unix time of the last completed scan cycle",
		}),
	}

	reg.MustRegister(
		m.CallsTotal,
		m.CycleDuration,
		m.CycleFailures,
		m.LastCycleUnix,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *EscalationMetrics) RecordCall(outcome string) {
	m.CallsTotal.WithLabelValues(outcome).Inc()
}

func (m *EscalationMetrics) RecordCycle(duration time.Duration, err error) {
	m.CycleDuration.Observe(duration.Seconds())
	if err != nil {
		m.CycleFailures.Inc()
		return
	}
	m.LastCycleUnix.SetToCurrentTime()
}

// Handler serves the registry for scraping.
func (m *EscalationMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
