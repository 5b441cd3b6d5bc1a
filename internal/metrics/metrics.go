// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger operation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

var (
	// RPCRequests counts RPCs by procedure and connect code.
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fintrack_rpc_requests_total",
		Help: "RPC requests by procedure and result code.",
	}, []string{"procedure", "code"})

	// RPCDuration observes RPC latency by procedure.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fintrack_rpc_duration_seconds",
		Help:    "RPC latency by procedure.",
		Buckets: prometheus.DefBuckets,
	}, []string{"procedure"})

	// LedgerOperations counts ledger posts, retracts and reconciles by outcome.
	LedgerOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fintrack_ledger_operations_total",
		Help: "Ledger operations by kind and outcome.",
	}, []string{"op", "outcome"})

	// ActiveWatches tracks open streaming watch RPCs.
	ActiveWatches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fintrack_active_watches",
		Help: "Open watch streams.",
	})
)
