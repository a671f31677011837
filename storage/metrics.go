package storage

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for store traffic.
type Metrics struct {
	Registry   *prometheus.Registry
	OpsTotal   *prometheus.CounterVec
	BytesTotal *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	ops := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_store_operations_total",
			Help: "Store operations by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	bytesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_store_bytes_total",
			Help: "Bytes moved to and from the object store.",
		},
		[]string{"operation"},
	)

	registry.MustRegister(ops, bytesTotal)

	return &Metrics{
		Registry:   registry,
		OpsTotal:   ops,
		BytesTotal: bytesTotal,
	}
}

// IncOp increments the operation counter for an operation/outcome pair.
func (m *Metrics) IncOp(operation, outcome string) {
	if m == nil {
		return
	}
	m.OpsTotal.WithLabelValues(operation, outcome).Inc()
}

// AddBytes adds to the transferred bytes counter for an operation.
func (m *Metrics) AddBytes(operation string, n int) {
	if m == nil {
		return
	}
	m.BytesTotal.WithLabelValues(operation).Add(float64(n))
}
