// Package metrics declares the Prometheus collectors shared across the
// service. Registration is implicit through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sellx_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sellx_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	SalesFinalized = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sellx_sales_finalized_total",
		Help: "Sales committed, by status.",
	}, []string{"status"})

	SaleNumberConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sellx_sale_number_conflicts_total",
		Help: "Sequence-number collisions retried during finalize.",
	})

	StockGuardBlocks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sellx_stock_guard_blocks_total",
		Help: "Adds rejected by the stock guard.",
	})

	StockLedgerFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sellx_stock_ledger_failures_total",
		Help: "Best-effort stock decrement or ledger writes that failed after a sale commit.",
	})
)
