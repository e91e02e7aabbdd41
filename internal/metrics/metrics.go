// Package metrics exposes Prometheus counters for TMDb traffic and
// recommendation outcomes. The server binary serves them at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TMDbRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_requests_total",
			Help: "Total number of TMDb API requests",
		},
		[]string{"endpoint", "status"}, // status: HTTP code or "error" for transport failures
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation cycles by outcome",
		},
		[]string{"outcome"}, // "picked", "all_seen", "no_results", "error"
	)

	CandidatesFiltered = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates",
			Help:    "Number of candidates left after filtering, per cycle",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)
)
