package sdk

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "donations_runtime_transactions_total",
			Help: "Total number of transactions submitted to the runtime",
		},
		[]string{"status"},
	)

	TransactionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "donations_runtime_transaction_duration_seconds",
			Help:    "Duration of transaction execution including commit",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
		},
	)

	LamportsTransferredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "donations_runtime_lamports_transferred_total",
			Help: "Total lamports moved by committed transfers",
		},
	)

	AccountsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "donations_runtime_accounts_created_total",
			Help: "Total accounts allocated by committed transactions",
		},
	)
)
