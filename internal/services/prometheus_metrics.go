package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionsCreated *prometheus.CounterVec
	transactionsDeleted prometheus.Counter
	transactionDuration prometheus.Histogram
	accountsCreated     *prometheus.CounterVec
	accountsDeleted     prometheus.Counter
	holdingsCreated     *prometheus.CounterVec
	holdingsDeleted     prometheus.Counter
	registrations       *prometheus.CounterVec
	logins              *prometheus.CounterVec
	notifications       *prometheus.CounterVec
	dbConnectionsInUse  prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		transactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_created_total",
				Help: "Total number of ledger transactions created",
			},
			[]string{"txn_type"},
		),
		transactionsDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ledger_transactions_deleted_total",
				Help: "Total number of ledger transactions deleted",
			},
		),
		transactionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_transaction_create_duration_milliseconds",
				Help:    "Transaction creation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		accountsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_accounts_created_total",
				Help: "Total number of accounts created",
			},
			[]string{"account_type"},
		),
		accountsDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ledger_accounts_deleted_total",
				Help: "Total number of accounts deleted",
			},
		),
		holdingsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_holdings_created_total",
				Help: "Total number of holdings created",
			},
			[]string{"asset_type"},
		),
		holdingsDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ledger_holdings_deleted_total",
				Help: "Total number of holdings deleted",
			},
		),
		registrations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_registrations_total",
				Help: "Total number of registration attempts by outcome",
			},
			[]string{"outcome"},
		),
		logins: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_logins_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
		notifications: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_notifications_total",
				Help: "Total number of notification sends by outcome",
			},
			[]string{"outcome"},
		),
		dbConnectionsInUse: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_db_connections_in_use",
				Help: "Current number of database connections in use",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(metric string, labels ...string) {
	label := ""
	if len(labels) > 0 {
		label = labels[0]
	}

	switch metric {
	case "transactions_created":
		m.transactionsCreated.WithLabelValues(label).Inc()
	case "transactions_deleted":
		m.transactionsDeleted.Inc()
	case "accounts_created":
		m.accountsCreated.WithLabelValues(label).Inc()
	case "accounts_deleted":
		m.accountsDeleted.Inc()
	case "holdings_created":
		m.holdingsCreated.WithLabelValues(label).Inc()
	case "holdings_deleted":
		m.holdingsDeleted.Inc()
	case "registrations_succeeded":
		m.registrations.WithLabelValues("success").Inc()
	case "registrations_failed":
		m.registrations.WithLabelValues("failed_" + label).Inc()
	case "logins_succeeded":
		m.logins.WithLabelValues("success").Inc()
	case "logins_failed":
		m.logins.WithLabelValues("failed_" + label).Inc()
	case "notifications_sent":
		m.notifications.WithLabelValues("success").Inc()
	case "notifications_failed":
		m.notifications.WithLabelValues("failed").Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(metric string, duration time.Duration, labels ...string) {
	switch metric {
	case "transaction_create":
		m.transactionDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(metric string, value float64, labels ...string) {
	switch metric {
	case "db_connections_in_use":
		m.dbConnectionsInUse.Set(value)
	}
}
