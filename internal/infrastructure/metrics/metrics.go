// Package metrics provides Prometheus metrics for the where2buy backend.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream labels
const (
	UpstreamGemini = "gemini"
	UpstreamPlaces = "places"
)

var (
	// UpstreamRequestsTotal counts outbound API calls by upstream and outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "where2buy",
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream API requests",
		},
		[]string{"upstream", "outcome"},
	)

	// UpstreamDuration measures outbound API call latency.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "where2buy",
			Name:      "upstream_duration_seconds",
			Help:      "Duration of upstream API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"upstream"},
	)

	// ExtractedItems observes how many items each search extracted.
	ExtractedItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "where2buy",
			Name:      "extracted_items",
			Help:      "Distribution of items extracted per search",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		},
	)

	// SearchErrorsTotal counts failed searches by error kind.
	SearchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "where2buy",
			Name:      "search_errors_total",
			Help:      "Total number of failed searches",
		},
		[]string{"kind"},
	)
)

// ObserveUpstream records one upstream call.
func ObserveUpstream(upstream, outcome string, start time.Time) {
	UpstreamRequestsTotal.WithLabelValues(upstream, outcome).Inc()
	UpstreamDuration.WithLabelValues(upstream).Observe(time.Since(start).Seconds())
}
