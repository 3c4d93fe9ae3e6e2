/* metrics.go
 * Contains the prometheus metrics exported on /metrics
 * Authors: Zachary Bower
 */

package web

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	resultsRecorded prometheus.Counter
	leaderboardRuns prometheus.Counter
}

// NewMetrics creates the server metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "madness_pool",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "madness_pool",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		resultsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "madness_pool",
			Name:      "results_recorded_total",
			Help:      "Game results recorded through the admin api.",
		}),
		leaderboardRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "madness_pool",
			Name:      "leaderboard_runs_total",
			Help:      "Leaderboard recalculations triggered through the admin api.",
		}),
	}
	reg.MustRegister(m.requests, m.requestDuration, m.resultsRecorded, m.leaderboardRuns)
	return m
}

func (m *Metrics) observeRequest(route string, method string, code int, seconds float64) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(seconds)
}
