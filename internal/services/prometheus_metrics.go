package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	accountsOpened     *prometheus.CounterVec
	depositsTotal      prometheus.Counter
	withdrawalsTotal   prometheus.Counter
	transfersTotal     *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec
	transferAmount     prometheus.Histogram
	registeredAccounts prometheus.Gauge
	authEventsTotal    *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		accountsOpened: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_opened_total",
				Help: "Total number of accounts opened by kind",
			},
			[]string{"kind"},
		),
		depositsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "deposits_total",
				Help: "Total number of deposits processed",
			},
		),
		withdrawalsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "withdrawals_total",
				Help: "Total number of withdrawals processed",
			},
		),
		transfersTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfers_total",
				Help: "Total number of transfers by outcome",
			},
			[]string{"status"},
		),
		operationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_duration_milliseconds",
				Help:    "Ledger operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"operation"},
		),
		transferAmount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transfer_amount",
				Help:    "Transfer amount in base currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		registeredAccounts: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "registered_accounts_total",
				Help: "Current number of registered accounts",
			},
		),
		authEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "accounts_opened":
		m.accountsOpened.WithLabelValues(tags["kind"]).Inc()
	case "deposits":
		m.depositsTotal.Inc()
	case "withdrawals":
		m.withdrawalsTotal.Inc()
	case "transfers":
		if status := tags["status"]; status != "" {
			m.transfersTotal.WithLabelValues(status).Inc()
		}
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "deposit", "withdrawal", "transfer":
		m.operationDuration.WithLabelValues(name).Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "transfer_amount":
		m.transferAmount.Observe(value)
	case "registered_accounts":
		m.registeredAccounts.Set(value)
	}
}
