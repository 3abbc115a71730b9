// Package metrics exposes storefront GraphQL traffic as Prometheus metrics.
// Collector.RequestLogger plugs into gql.Config.RequestLogger or
// storefront.Config.RequestLogger.
package metrics

import (
	"strconv"
	"time"

	gql "github.com/lukaszraczylo/go-storefront-graphql"
	"github.com/prometheus/client_golang/prometheus"
)

const complexityHeader = "X-Bc-Graphql-Complexity"

// Collector holds the request metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	complexity      *prometheus.HistogramVec
}

// NewCollector creates a collector. An empty namespace defaults to "storefront".
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "storefront"
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
	}

	c.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "request_duration_seconds",
			Help:      "Time from request build until the response body was read",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"type", "name", "status"},
	)

	c.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "requests_total",
			Help:      "Completed GraphQL requests",
		},
		[]string{"type", "name", "status"},
	)

	c.complexity = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "complexity",
			Help:      "Query complexity reported by the API",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"type", "name"},
	)

	c.registry.MustRegister(c.requestDuration, c.requestsTotal, c.complexity)
	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordRequest records one completed request. complexity is ignored when negative.
func (c *Collector) RecordRequest(opType, name string, status int, duration time.Duration, complexity float64) {
	if name == "" {
		name = "anonymous"
	}
	statusLabel := strconv.Itoa(status)
	c.requestDuration.WithLabelValues(opType, name, statusLabel).Observe(duration.Seconds())
	c.requestsTotal.WithLabelValues(opType, name, statusLabel).Inc()
	if complexity >= 0 {
		c.complexity.WithLabelValues(opType, name).Observe(complexity)
	}
}

// RequestLogger adapts the collector to the client's logging hook.
func (c *Collector) RequestLogger() gql.RequestLogger {
	return func(l gql.RequestLog) {
		complexity := -1.0
		if raw := l.Header.Get(complexityHeader); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				complexity = v
			}
		}
		c.RecordRequest(string(l.Type), l.Name, l.StatusCode, l.Duration, complexity)
	}
}

func (c *Collector) Reset() {
	c.requestDuration.Reset()
	c.requestsTotal.Reset()
	c.complexity.Reset()
}
