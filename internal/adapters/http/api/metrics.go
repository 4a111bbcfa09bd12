package api

import (
	"net/http"

	"github.com/rhythmlab/tactus/pkg/metrics"
)

// MetricsHandler exposes the Prometheus scrape endpoint.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// Handler serves GET /metrics from the custom registry.
func (h *MetricsHandler) Handler() http.Handler {
	return metrics.Handler()
}
