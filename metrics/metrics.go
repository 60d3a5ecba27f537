// Package metrics exposes Prometheus metrics for notification settings operations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operations that are counted.
const (
	OperationLoad   = "load"
	OperationSave   = "save"
	OperationReset  = "reset"
	OperationIntent = "intent"
)

// Outcomes of counted operations.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailure  = "failure"
)

// Collector records the metrics for the service.
type Collector struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry.
func NewCollector(serviceName string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "notification_preferences",
				Name:        "operations_total",
				Help:        "Total number of notification settings operations by outcome.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"operation", "outcome"},
		),
	}

	c.registry.MustRegister(c.operations)
	c.registry.MustRegister(collectors.NewGoCollector())
	return c
}

// Observe counts a single operation.
func (c *Collector) Observe(operation, outcome string) {
	c.operations.WithLabelValues(operation, outcome).Inc()
}

// Count returns the counter for an operation and outcome.
func (c *Collector) Count(operation, outcome string) prometheus.Counter {
	return c.operations.WithLabelValues(operation, outcome)
}

// Handler returns an HTTP handler that serves the collected metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
