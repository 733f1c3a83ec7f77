package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for ScrapeRequestsTotal.
const (
	OutcomeResults   = "results"
	OutcomeNoResults = "no_results"
	OutcomeFailed    = "failed"
	OutcomeError     = "error"
)

var (
	ScrapeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gassafe_scrape_requests_total",
			Help: "Total number of scrape requests by strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)

	ScrapeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gassafe_scrape_duration_seconds",
			Help:    "Duration of scrape requests in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"strategy"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gassafe_browser_sessions_active",
			Help: "Number of browser sessions currently open",
		},
	)

	SessionWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gassafe_browser_session_wait_seconds",
			Help:    "Time spent queueing for a free browser session",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 10},
		},
	)
)

// RecordScrape updates the request counter and duration histogram.
func RecordScrape(strategy, outcome string, seconds float64) {
	ScrapeRequestsTotal.WithLabelValues(strategy, outcome).Inc()
	ScrapeDuration.WithLabelValues(strategy).Observe(seconds)
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
